// Package web embeds the templates, static assets and markdown pages.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static
var static embed.FS

//go:embed docs/*.md
var docs embed.FS

// TemplatesFS returns the HTML templates
func TemplatesFS() fs.FS {
	return mustSub(templates, "templates")
}

// StaticFS returns the files served under /static/
func StaticFS() fs.FS {
	return mustSub(static, "static")
}

// DocsFS returns the markdown pages served under /docs/
func DocsFS() fs.FS {
	return mustSub(docs, "docs")
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
