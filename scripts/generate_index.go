// Command generate_index builds the release download page: README.md
// rendered to HTML, with its Installation section replaced by links to the
// archives found in a goreleaser dist directory.
//
//	go run ./scripts/generate_index.go dist
package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func main() {
	if err := run(os.Args[1:], "README.md"); err != nil {
		fmt.Fprintf(os.Stderr, "generate_index: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, readmePath string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: generate_index <dist-dir>")
	}
	distDir := args[0]

	readme, err := os.ReadFile(readmePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", readmePath, err)
	}
	rel, err := scanDist(distDir)
	if err != nil {
		return err
	}

	var page bytes.Buffer
	if err := writePage(&page, readme, rel); err != nil {
		return err
	}

	indexPath := filepath.Join(distDir, "index.html")
	if err := os.WriteFile(indexPath, page.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", indexPath, err)
	}
	fmt.Fprintf(os.Stderr, "Generated %s\n", indexPath)
	return nil
}

// archivePattern matches goreleaser archive names like
// psfit_1.2.0_Linux_x86_64.tar.gz.
var archivePattern = regexp.MustCompile(`^psfit_(.+)_(Linux|Darwin)_(x86_64|arm64)\.tar\.gz$`)

var platformNames = map[string]string{
	"Darwin_arm64":  "macOS (Apple Silicon)",
	"Darwin_x86_64": "macOS (Intel)",
	"Linux_arm64":   "Linux (ARM64)",
	"Linux_x86_64":  "Linux (x86_64)",
}

type archive struct {
	Platform string
	File     string
}

type release struct {
	Version  string
	Archives []archive
}

// scanDist collects one archive per platform. Version is "unknown" when no
// archive matches.
func scanDist(distDir string) (release, error) {
	rel := release{Version: "unknown"}
	entries, err := os.ReadDir(distDir)
	if err != nil {
		return rel, fmt.Errorf("read dist: %w", err)
	}

	seen := map[string]bool{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := archivePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		key := m[2] + "_" + m[3]
		if seen[key] {
			continue
		}
		seen[key] = true
		rel.Version = m[1]
		rel.Archives = append(rel.Archives, archive{Platform: platformNames[key], File: e.Name()})
	}
	sort.Slice(rel.Archives, func(i, j int) bool {
		return rel.Archives[i].Platform < rel.Archives[j].Platform
	})
	return rel, nil
}

func markdownToHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return markdown.Render(p.Parse(md), r)
}

var installTmpl = template.Must(template.New("install").Parse(`<h2 id="installation">Installation</h2>
<div class="downloads">
  <h3>{{.Version}}</h3>
  <table>
{{- range .Archives}}
    <tr><td class="platform">{{.Platform}}</td><td><a href="{{.File}}">download</a></td></tr>
{{- end}}
  </table>
</div>
<pre><code class="language-bash">tar -xzf psfit_*.tar.gz
sudo mv psfit /usr/local/bin/
</code></pre>
`))

// spliceInstall replaces the README's Installation section, up to the next
// second-level heading, with the download table. Content without such a
// section is returned unchanged.
func spliceInstall(body []byte, rel release) ([]byte, error) {
	s := string(body)
	start := strings.Index(s, `<h2 id="installation">`)
	if start < 0 {
		return body, nil
	}
	rest := s[start+len(`<h2 id="installation">`):]
	next := strings.Index(rest, `<h2 id="`)
	if next < 0 {
		next = len(rest)
	}
	end := len(s) - len(rest) + next

	var section bytes.Buffer
	if err := installTmpl.Execute(&section, rel); err != nil {
		return nil, fmt.Errorf("render downloads: %w", err)
	}
	return []byte(s[:start] + section.String() + "\n" + s[end:]), nil
}

const pageHead = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>psfit</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 860px; margin: 40px auto; padding: 0 20px; line-height: 1.6; }
    pre { background: #1e293b; color: #e2e8f0; padding: 16px; border-radius: 6px; overflow-x: auto; }
    .downloads { background: #f1f5f9; padding: 16px; border-radius: 6px; }
    .platform { width: 220px; }
  </style>
</head>
<body>
`

const pageFoot = `</body>
</html>
`

func writePage(w io.Writer, readme []byte, rel release) error {
	body, err := spliceInstall(markdownToHTML(readme), rel)
	if err != nil {
		return err
	}
	for _, chunk := range [][]byte{[]byte(pageHead), body, []byte(pageFoot)} {
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}
