package handlers

import (
	"html/template"
	"io/fs"
	"net/url"
)

const dayTitleLayout = "2006年1月2日"

// templateFuncs are available to every page template
var templateFuncs = template.FuncMap{
	"watchURL": func(contentID string) string {
		return "https://www.nicovideo.jp/watch/" + url.PathEscape(contentID)
	},
	"tagURL": func(tag string) string {
		return "https://www.nicovideo.jp/tag/" + url.PathEscape(tag)
	},
}

// LoadTemplates parses every page template in fsys
func LoadTemplates(fsys fs.FS) (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(fsys, "*.html")
}
