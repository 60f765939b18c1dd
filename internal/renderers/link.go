package renderers

import (
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// LinkRenderer opens external links in a new tab and leaves links to
// this site alone.
type LinkRenderer struct {
	goldmarkhtml.Config
}

func NewLinkRenderer(opts ...goldmarkhtml.Option) renderer.NodeRenderer {
	r := &LinkRenderer{
		Config: goldmarkhtml.NewConfig(),
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *LinkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
}

func isExternal(destination string) bool {
	return strings.HasPrefix(destination, "http://") || strings.HasPrefix(destination, "https://")
}

func openTag(w util.BufWriter, destination string, title []byte) error {
	attrs := fmt.Sprintf(`href="%s"`, html.EscapeString(destination))
	if len(title) > 0 {
		attrs += fmt.Sprintf(` title="%s"`, html.EscapeString(string(title)))
	}
	if isExternal(destination) {
		attrs += ` target="_blank" rel="noreferrer noopener"`
	}
	_, err := fmt.Fprintf(w, "<a %s>", attrs)
	return err
}

func (r *LinkRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if entering {
		return ast.WalkContinue, openTag(w, string(n.Destination), n.Title)
	}
	_, err := w.WriteString("</a>")
	return ast.WalkContinue, err
}

func (r *LinkRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	url := string(n.URL(source))
	label := string(n.Label(source))
	if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		url = "mailto:" + url
	}
	if err := openTag(w, url, nil); err != nil {
		return ast.WalkStop, err
	}
	_, err := fmt.Fprintf(w, "%s</a>", html.EscapeString(label))
	return ast.WalkContinue, err
}

// NewMarkdown returns the converter used for admin-written help text.
func NewMarkdown() goldmark.Markdown {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			emoji.New(emoji.WithRenderingMethod(emoji.Unicode)),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)
	md.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewLinkRenderer(), 100),
	))
	return md
}
