package web

import (
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/mchmarny/sidenav/pkg/collapse"
	"github.com/mchmarny/sidenav/pkg/menu"
)

// layoutCSS sizes the panel from the root marker alone, so the first paint
// already has the right width.
const layoutCSS = `
aside[data-sidebar]{position:fixed;top:0;left:0;height:100vh;width:16rem}
.sidebar-offset{width:16rem}
html[` + collapse.MarkerAttr + `] aside[data-sidebar],
html[` + collapse.MarkerAttr + `] .sidebar-offset{width:4rem}
`

// Page renders a full document. The attributes of root, including the
// collapse marker, become the attributes of the <html> element. content is
// placed in <main>, which also carries the collapse state; it may be nil.
func Page(res menu.Resolved, root *collapse.RootElement, collapsed bool, returnTo string, content g.Node) g.Node {
	attrs := root.Attrs()
	nodes := make([]g.Node, 0, len(attrs)+2)
	for _, a := range attrs {
		nodes = append(nodes, g.Attr(a.Name, a.Value))
	}

	nodes = append(nodes,
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.TitleEl(g.Text(res.Title)),
			html.StyleEl(g.Raw(layoutCSS)),
		),
		html.Body(
			Sidebar(res, collapsed, returnTo),
			html.Div(html.Class("sidebar-offset")),
			html.Main(
				g.Attr("data-active-path", res.ActivePath),
				g.Attr("data-collapsed", strconv.FormatBool(collapsed)),
				content,
			),
		),
	)

	return html.Doctype(html.HTML(nodes...))
}

// Sidebar renders the panel: the toggle form, the fixed entries and the
// menu list.
func Sidebar(res menu.Resolved, collapsed bool, returnTo string) g.Node {
	return html.Aside(
		g.Attr("data-sidebar", ""),
		g.Attr("data-collapsed", strconv.FormatBool(collapsed)),
		html.Div(
			html.Class("sidebar-header"),
			g.If(!collapsed, html.A(html.Href("/"), html.Class("logo"), g.Text(res.Title))),
			html.Form(
				html.Method("post"),
				html.Action(TogglePath),
				html.Input(html.Type("hidden"), html.Name("collapsed"), html.Value(strconv.FormatBool(collapsed))),
				html.Input(html.Type("hidden"), html.Name("return"), html.Value(returnTo)),
				html.Button(html.Type("submit"), html.Class("sidebar-toggle"), g.Text("☰")),
			),
		),
		html.Nav(
			html.Class("sidebar-fixed"),
			g.Map(res.Fixed, func(e menu.ResolvedEntry) g.Node { return entryLink(e, collapsed) }),
		),
		html.Div(
			html.Class("sidebar-menu"),
			g.Map(res.Items, func(e menu.ResolvedEntry) g.Node { return entryLink(e, collapsed) }),
		),
	)
}

func entryLink(e menu.ResolvedEntry, collapsed bool) g.Node {
	return html.A(
		html.Href(e.Href),
		g.Attr("data-entry", e.ID),
		g.Attr("data-active", strconv.FormatBool(e.Active)),
		g.Attr("data-theme", e.Theme.Name),
		html.Span(html.Class("icon icon-"+e.Icon)),
		g.If(!collapsed, html.Span(html.Class("label"), g.Text(e.Label))),
	)
}
