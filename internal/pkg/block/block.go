// Package block 渲染用户资料页上的评论统计区块
package block

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/qs3c/commentblock/config"
	"github.com/qs3c/commentblock/internal/model/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Library 区块依赖的样式库
type Library struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// Attached 随区块一起交给页面的附加资源
type Attached struct {
	Library []Library `json:"library"`
}

// Markup 区块渲染结果
type Markup struct {
	HTML     template.HTML `json:"markup"`
	Attached Attached      `json:"attached"`
}

// Renderer 区块渲染器，创建后只读，可并发使用
type Renderer struct {
	tmpl   *template.Template
	labels config.BlockLabels
	lib    Library
}

// NewRenderer 解析内嵌模板
func NewRenderer(cfg config.BlockConfig) (*Renderer, error) {
	cfg = cfg.WithDefaults()

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing block templates: %w", err)
	}

	labels := cfg.Labels
	if strings.Contains(labels.RecentComments, "%d") {
		labels.RecentComments = fmt.Sprintf(labels.RecentComments, cfg.RecentLimit)
	}

	return &Renderer{
		tmpl:   tmpl,
		labels: labels,
		lib:    Library{Name: cfg.Library, Href: cfg.Stylesheet},
	}, nil
}

// Render 把区块数据渲染成 HTML 表格
func (r *Renderer) Render(b *dto.CommentBlock) (*Markup, error) {
	if b == nil {
		return nil, fmt.Errorf("render comment block: nil block")
	}

	var buf bytes.Buffer
	err := r.tmpl.ExecuteTemplate(&buf, "comment_block", struct {
		Labels config.BlockLabels
		Block  *dto.CommentBlock
	}{
		Labels: r.labels,
		Block:  b,
	})
	if err != nil {
		return nil, fmt.Errorf("render comment block: %w", err)
	}

	return &Markup{
		HTML:     template.HTML(buf.String()),
		Attached: Attached{Library: []Library{r.lib}},
	}, nil
}

// Assets 区块样式文件，根目录即 static/
func Assets() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("block assets: %w", err)
	}
	return sub, nil
}
