package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templates embed.FS

// Templates 解析页面模板
func Templates() (*template.Template, error) {
	return template.ParseFS(templates, "templates/*.html")
}
