// Package svgmap renders a built mind-map scene into an SVG document. Equal
// scenes render to byte-identical documents; all interactivity is expressed
// as plain links produced by the caller's Linker.
package svgmap

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/dklevakin/ai-map/internal/mindmap"
)

// Linker turns a node intent into the href of the next UI state. A nil
// linker renders a static, non-interactive document.
type Linker func(intent mindmap.Intent) string

// Options tune the rendered document.
type Options struct {
	Linker Linker
	// InlineStyle embeds the node text styles so the document renders
	// standalone; the server page disables it and styles via its own CSS.
	InlineStyle bool
	// PlaceholderHref overrides the fallback icon reference. Empty keeps
	// the server asset path; standalone documents pass a data URI.
	PlaceholderHref string
}

func (o Options) placeholder() string {
	if o.PlaceholderHref != "" {
		return o.PlaceholderHref
	}
	return PlaceholderIcon
}

const inlineStyle = `text { fill: inherit; font-family: system-ui, sans-serif; dominant-baseline: middle; }
text.large { font-size: 20px; font-weight: 600; }
text.normal { font-size: 15px; }
text.small { font-size: 13px; }
.search-hit ellipse { stroke-width: 3; filter: drop-shadow(0 0 6px currentColor); }
.selected ellipse { stroke-width: 3.2; }
a { cursor: pointer; }`

// Render writes the scene as a complete SVG document.
func Render(scene mindmap.Scene, opts Options) []byte {
	var b strings.Builder
	b.Grow(4096 + len(scene.Nodes)*512)

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %s %s" width="%s" height="%s" role="presentation">`,
		num(scene.Width), num(scene.Height), num(scene.Width), num(scene.Height))
	b.WriteByte('\n')

	if opts.InlineStyle {
		b.WriteString("<style>")
		b.WriteString(inlineStyle)
		b.WriteString("</style>\n")
	}

	writeDefs(&b, scene)
	writeEdges(&b, scene)

	// Branch pills first, leaves on top, matching the visual stacking of
	// the canvas layers.
	b.WriteString(`<g class="branches">` + "\n")
	for _, node := range scene.Nodes {
		if node.Kind != mindmap.NodeService {
			writeNode(&b, node, opts)
		}
	}
	b.WriteString("</g>\n")

	b.WriteString(`<g class="leaves">` + "\n")
	for _, node := range scene.Nodes {
		if node.Kind == mindmap.NodeService {
			writeNode(&b, node, opts)
		}
	}
	b.WriteString("</g>\n")

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func writeDefs(b *strings.Builder, scene mindmap.Scene) {
	b.WriteString("<defs>\n")
	for _, node := range scene.Nodes {
		if node.Kind != mindmap.NodeService {
			continue
		}
		iconCenterX := -node.ContentWidth()/2 + iconSize()/2
		fmt.Fprintf(b, `<clipPath id="clip-%s"><circle cx="%s" cy="0" r="%s"/></clipPath>`,
			html.EscapeString(node.Key), num(iconCenterX), num(iconSize()/2))
		b.WriteByte('\n')
	}
	b.WriteString("</defs>\n")
}

func writeEdges(b *strings.Builder, scene mindmap.Scene) {
	b.WriteString(`<g class="connectors" fill="none">` + "\n")
	for _, e := range scene.Edges {
		fmt.Fprintf(b, `<path d="M %s %s C %s %s, %s %s, %s %s" stroke="%s" stroke-width="%s" stroke-opacity="%s"/>`,
			num(e.X1), num(e.Y1), num(e.C1X), num(e.C1Y), num(e.C2X), num(e.C2Y), num(e.X2), num(e.Y2),
			html.EscapeString(e.Color), num(e.Width), num(e.Opacity))
		b.WriteByte('\n')
	}
	b.WriteString("</g>\n")
}

func writeNode(b *strings.Builder, node mindmap.Node, opts Options) {
	href := ""
	if opts.Linker != nil && node.Intent != nil {
		href = opts.Linker(node.Intent)
	}
	if href != "" {
		fmt.Fprintf(b, `<a href="%s">`, html.EscapeString(href))
	}

	classes := nodeClasses(node)
	fmt.Fprintf(b, `<g transform="translate(%s,%s)"`, num(node.X), num(node.Y))
	if classes != "" {
		fmt.Fprintf(b, ` class="%s"`, classes)
	}
	if node.Intent != nil {
		b.WriteString(` role="button" tabindex="0"`)
	}
	if node.Key != "" {
		fmt.Fprintf(b, ` data-service-key="%s"`, html.EscapeString(node.Key))
	}
	if len(node.Tags) > 0 {
		fmt.Fprintf(b, ` data-tags="%s"`, html.EscapeString(strings.Join(node.Tags, ",")))
	}
	b.WriteString(">")

	fmt.Fprintf(b, `<ellipse cx="0" cy="0" rx="%s" ry="%s" fill="%s"`, num(node.RX), num(node.RY), html.EscapeString(node.Fill))
	if node.FillOpacity > 0 {
		fmt.Fprintf(b, ` fill-opacity="%s"`, num(node.FillOpacity))
	}
	fmt.Fprintf(b, ` stroke="%s" stroke-width="%s"/>`, html.EscapeString(node.Stroke), num(node.StrokeWidth))

	if node.Kind == mindmap.NodeService {
		writeServiceContent(b, node, opts)
	} else {
		fmt.Fprintf(b, `<text text-anchor="middle" class="%s" fill="%s">%s</text>`,
			textClass(node.Kind), html.EscapeString(node.TextColor), html.EscapeString(node.Label))
	}

	b.WriteString("</g>")
	if href != "" {
		b.WriteString("</a>")
	}
	b.WriteByte('\n')
}

func writeServiceContent(b *strings.Builder, node mindmap.Node, opts Options) {
	contentW := node.ContentWidth()
	iconX := -contentW / 2
	iconCenterX := iconX + iconSize()/2

	fmt.Fprintf(b, `<circle cx="%s" cy="0" r="%s" fill="rgba(15, 23, 42, 0.65)"/>`,
		num(iconCenterX), num(iconSize()/2+2))

	placeholder := opts.placeholder()
	iconHref := placeholder
	if node.Service != nil {
		if u := IconURL(node.Service.Href); u != PlaceholderIcon {
			iconHref = u
		}
	}
	fmt.Fprintf(b, `<image x="%s" y="%s" width="%s" height="%s" href="%s" clip-path="url(#clip-%s)" onerror="this.setAttribute('href', '%s')"/>`,
		num(iconX), num(-iconSize()/2), num(iconSize()), num(iconSize()),
		html.EscapeString(iconHref), html.EscapeString(node.Key), html.EscapeString(placeholder))

	fmt.Fprintf(b, `<text x="%s" y="0" text-anchor="start" class="small" fill="%s">%s</text>`,
		num(iconX+iconSize()+iconGap()), html.EscapeString(node.TextColor), html.EscapeString(node.Label))
}

func nodeClasses(node mindmap.Node) string {
	var classes []string
	if node.Kind == mindmap.NodeService {
		classes = append(classes, "service-node")
	}
	if node.SearchHit {
		classes = append(classes, "search-hit")
	}
	if node.Selected {
		classes = append(classes, "selected")
	}
	return strings.Join(classes, " ")
}

func textClass(kind mindmap.NodeKind) string {
	if kind == mindmap.NodeRoot {
		return "large"
	}
	return "normal"
}

// num formats coordinates compactly and deterministically.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func iconSize() float64 { return mindmap.IconSize }
func iconGap() float64  { return mindmap.IconGap }
