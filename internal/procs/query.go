package procs

import (
	"context"
	"fmt"
	"strings"

	"github.com/oakwood-commons/psfit/pkg/logger"
)

// queryArgs lists every process with its PID and full command line.
var queryArgs = []string{"-e", "-o", "pid,args", "--no-headers"}

// FindPIDs returns the PIDs of processes whose "PID ARGS" line contains
// needle. Matching is plain substring containment; the PID is the first
// whitespace-delimited token of a matching line.
func FindPIDs(ctx context.Context, r Runner, needle string) ([]string, error) {
	out, err := r.Run(ctx, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", needle, err)
	}

	var pids []string
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, needle) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		pids = append(pids, fields[0])
	}

	logger.FromContext(ctx).V(1).Info("query matched", "needle", needle, "pids", pids)
	return pids, nil
}

// Collect runs every needle and adds the matches to set. ps is invoked once
// per needle. The returned set is the one passed in.
func Collect(ctx context.Context, r Runner, set *PIDSet, needles []string) (*PIDSet, error) {
	if set == nil {
		set = NewPIDSet()
	}
	for _, needle := range needles {
		pids, err := FindPIDs(ctx, r, needle)
		if err != nil {
			return set, err
		}
		set.Add(pids...)
	}
	return set, nil
}
