package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/vulnsweep/vulnsweep/internal/types"
)

const htmlReport = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>vulnsweep report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2em; }
th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #ddd; }
.sev-CRITICAL { color: #b4009e; font-weight: bold; }
.sev-HIGH { color: #d13438; }
.sev-MEDIUM { color: #ca5010; }
.sev-LOW { color: #737373; }
.finding { margin-bottom: 1.5em; border: 1px solid #e0e0e0; border-radius: 4px; padding: 10px 14px; }
.finding pre { overflow-x: auto; padding: 8px; background: #f7f7f7; }
.meta { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>vulnsweep scan report</h1>
<p class="meta">Root: {{.Res.Root}} &middot; Files: {{.Res.FilesScanned}} &middot; Findings: {{.Res.TotalVulnerabilities}} &middot; Duration: {{printf "%.2fs" .Res.Duration.Seconds}}</p>
<table>
<tr><th>Severity</th><th>Count</th></tr>
{{range .Severities}}<tr><td class="sev-{{.}}">{{.}}</td><td>{{index $.Res.BySeverity .}}</td></tr>
{{end}}
</table>
{{range .Findings}}
<div class="finding">
<h3><span class="sev-{{.Severity}}">{{.Severity}}</span> {{.Category}} <span class="meta">{{.Path}}:{{.Line}} ({{.CWE}})</span></h3>
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{if .Recommendation}}<p><em>{{.Recommendation}}</em></p>{{end}}
{{.ContextHTML}}
</div>
{{end}}
</body>
</html>
`

type htmlFinding struct {
	types.Finding
	ContextHTML template.HTML
}

var reportTmpl = template.Must(template.New("report").Parse(htmlReport))

// WriteHTML renders a standalone HTML report with syntax-highlighted context
// blocks.
func WriteHTML(w io.Writer, res *types.ScanResult) error {
	findings := make([]htmlFinding, 0, len(res.Findings))
	for _, f := range res.Findings {
		findings = append(findings, htmlFinding{
			Finding:     f,
			ContextHTML: highlightContext(f.Context, f.Language),
		})
	}
	return reportTmpl.Execute(w, struct {
		Res        *types.ScanResult
		Severities []types.Severity
		Findings   []htmlFinding
	}{res, types.Severities(), findings})
}

// highlightContext runs the context block through chroma. Falls back to an
// escaped <pre> when no lexer matches or highlighting fails.
func highlightContext(ctx, lang string) template.HTML {
	if ctx == "" {
		return ""
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	iterator, err := lexer.Tokenise(nil, ctx)
	if err != nil {
		return escapedPre(ctx)
	}
	var b strings.Builder
	formatter := html.New(html.WithClasses(false), html.Standalone(false))
	if err := formatter.Format(&b, style, iterator); err != nil {
		return escapedPre(ctx)
	}
	return template.HTML(b.String())
}

func escapedPre(ctx string) template.HTML {
	return template.HTML(fmt.Sprintf("<pre>%s</pre>", template.HTMLEscapeString(ctx)))
}
