// Package web holds the embedded HTML templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed public
var publicFS embed.FS

// FuncMap returns the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		// stored marks text that was escaped before it was persisted, so it
		// is written out as-is instead of being escaped a second time.
		"stored": func(s string) template.HTML {
			return template.HTML(s) //nolint:gosec
		},
	}
}

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.tmpl")
}

// Public serves the static asset tree.
func Public() http.FileSystem {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
