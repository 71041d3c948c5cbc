// Package web embeds the browser presentation: one page, its script and
// stylesheet.
package web

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl static/*
var files embed.FS

var pages = template.Must(template.ParseFS(files, "templates/*.tmpl"))

// PageData fills the index template.
type PageData struct {
	Title string
}

// Static serves the embedded /static assets.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return http.FileServerFS(sub)
}

// RenderIndex writes the participant page.
func RenderIndex(w io.Writer, d PageData) error {
	return pages.ExecuteTemplate(w, "index.tmpl", d)
}
