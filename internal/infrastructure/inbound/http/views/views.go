package views

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates
var files embed.FS

var funcs = template.FuncMap{
	"paragraphs": paragraphs,
}

// Parse builds the page set. Every page is defined by name ("posts/index", "errors/error")
// and wraps itself in the shared "header" and "footer" blocks.
func Parse() (*template.Template, error) {
	return template.New("views").Funcs(funcs).ParseFS(files,
		"templates/*.html",
		"templates/posts/*.html",
		"templates/errors/*.html",
	)
}

func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
