// Package web 资料页等整页 HTML 模板
package web

import (
	"embed"
	"fmt"
	"html/template"
)

const (
	ProfileTemplate  = "profile.html"
	NotFoundTemplate = "not_found.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// ProfilePage 资料页模板数据
type ProfilePage struct {
	UserID      int64
	Username    string
	Block       template.HTML
	Stylesheets []string
}

// Templates 解析内嵌页面模板，供 gin 的 SetHTMLTemplate 使用
func Templates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return tmpl, nil
}
