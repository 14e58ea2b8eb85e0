package server

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/dklevakin/ai-map/internal/i18n"
)

var funcMap = template.FuncMap{
	"text": func(t i18n.Text, lang i18n.Lang) string { return t.For(lang) },
}

func render(w http.ResponseWriter, tmplStr string, data any) {
	t, err := template.New("page").Funcs(funcMap).Parse(tmplBase + tmplStr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		fmt.Fprintf(w, "<pre>template error: %v</pre>", err)
	}
}

// ── Base layout ───────────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>AI Compass</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'Inter',system-ui,sans-serif;background:{{.Palette.Surface}};color:{{.Palette.NodeText}};font-size:14px;line-height:1.5}
a{color:{{.Palette.LinkText}};text-decoration:none}
a:hover{text-decoration:underline}
nav{background:rgba(2,6,23,.55);border-bottom:1px solid {{.Palette.SurfaceBorder}};padding:10px 20px;display:flex;gap:16px;align-items:center;flex-wrap:wrap}
nav .brand{color:{{.Palette.NodeText}};font-weight:700;font-size:16px;margin-right:8px}
nav form{display:flex;gap:6px;align-items:center}
nav input[type=search]{background:{{.Palette.TooltipBg}};border:1px solid {{.Palette.SurfaceBorder}};color:{{.Palette.NodeText}};border-radius:999px;padding:6px 14px;font-size:13px;min-width:220px}
.switch{display:flex;gap:4px;margin-left:auto}
.switch a{font-size:12px;padding:3px 10px;border:1px solid {{.Palette.SurfaceBorder}};border-radius:999px;color:{{.Palette.NodeText}};opacity:.7}
.switch a.active{background:{{.Palette.LinkText}};border-color:{{.Palette.LinkText}};color:{{.Palette.TooltipBg}};opacity:1}
main{padding:20px;max-width:1320px;margin:0 auto}
h1{font-size:18px;font-weight:700;margin-bottom:4px}
.subtitle{color:{{.Palette.NodeText}};opacity:.65;font-size:13px;margin-bottom:16px}
.map-wrap{border:1px solid {{.Palette.SurfaceBorder}};border-radius:12px;overflow-x:auto;background:radial-gradient(circle at 50% 0,rgba(96,165,250,.08),transparent 60%)}
svg text{fill:currentColor;font-family:inherit;dominant-baseline:middle}
svg text.large{font-size:20px;font-weight:600}
svg text.normal{font-size:15px}
svg text.small{font-size:13px}
svg .search-hit ellipse{stroke-width:3}
svg .selected ellipse{stroke-width:3.2}
svg a{cursor:pointer}
.details{margin-top:16px;border:1px solid {{.Palette.SurfaceBorder}};border-radius:12px;padding:16px 20px;background:{{.Palette.TooltipBg}};color:{{.Palette.TooltipText}}}
.details h2{font-size:15px;margin-bottom:6px}
.details .desc{font-size:13px;opacity:.8;margin-bottom:10px}
.details .row{font-size:12px;margin-top:8px}
.details .row .lbl{text-transform:uppercase;letter-spacing:.05em;font-size:10px;opacity:.6;display:block;margin-bottom:3px}
.tag{display:inline-block;padding:1px 8px;border-radius:999px;font-size:11px;background:rgba(96,165,250,.12);color:{{.Palette.LinkText}};border:1px solid {{.Palette.SurfaceBorder}};margin-right:4px}
.links a{margin-right:12px;font-size:12px}
.empty{padding:24px;text-align:center;opacity:.6;font-size:13px}
.err{color:{{.Palette.ErrorText}};padding:24px;text-align:center}
.cat{border:1px solid {{.Palette.SurfaceBorder}};border-radius:12px;margin-bottom:12px;overflow:hidden}
.cat-hdr{display:flex;align-items:center;gap:10px;padding:10px 16px}
.cat-hdr .dot{width:10px;height:10px;border-radius:50%;flex-shrink:0}
.cat-hdr a{color:{{.Palette.NodeText}};font-weight:600;font-size:14px}
.cat-body{border-top:1px solid {{.Palette.SurfaceBorder}}}
.svc{display:flex;gap:10px;padding:8px 16px 8px 32px;border-bottom:1px solid rgba(148,163,184,.08);align-items:baseline}
.svc:last-child{border-bottom:none}
.svc.hit a.name{color:{{.Palette.LinkText}}}
.svc.sel{background:rgba(96,165,250,.1)}
.svc a.name{color:{{.Palette.NodeText}};font-weight:500;font-size:13px;flex-shrink:0}
.svc .desc{font-size:12px;opacity:.6}
.grp{padding:6px 16px 6px 24px;border-bottom:1px solid rgba(148,163,184,.08)}
.grp>a{font-size:12px;text-transform:uppercase;letter-spacing:.05em;color:{{.Palette.NodeText}};opacity:.75;font-weight:600}
footer{padding:24px 20px;text-align:center;font-size:12px;opacity:.45}
</style>
</head>
<body>
<nav>
<span class="brand">AI Compass</span>
<form method="get" action="/">
<input type="hidden" name="lang" value="{{.Lang}}">
{{if .IsList}}<input type="hidden" name="view" value="list">{{end}}
<input type="search" name="q" value="{{.Query}}" placeholder="{{text .Copy.SearchPlaceholder .Lang}}" aria-label="{{text .Copy.SearchPlaceholder .Lang}}">
</form>
<div class="switch">
<a href="{{.MapURL}}" {{if not .IsList}}class="active"{{end}}>{{text .Copy.ViewMap .Lang}}</a>
<a href="{{.ListURL}}" {{if .IsList}}class="active"{{end}}>{{text .Copy.ViewList .Lang}}</a>
<a href="{{.OtherLangURL}}">{{.OtherLangLabel}}</a>
</div>
</nav>
<main>
{{template "content" .}}
</main>
<footer>{{text .Copy.FooterRights .Lang}}</footer>
</body>
</html>{{end}}`

// ── Map view ──────────────────────────────────────────────────────────────────

const tmplMap = `
{{define "content"}}
<h1>{{text .Copy.MapHeading .Lang}}</h1>
<div class="subtitle">{{text .Copy.InfoNote .Lang}}</div>
<div class="map-wrap">{{.SVG}}</div>
{{if .Details}}
<div class="details">
<h2>{{.Details.Name}}</h2>
<div class="desc">{{.Details.Desc}}</div>
<a href="{{.Details.Href}}" rel="noreferrer noopener" target="_blank">{{text .Copy.DetailsPrimary .Lang}} ↗</a>
{{if .Details.Tags}}
<div class="row"><span class="lbl">{{text .Copy.DetailsTagsLabel .Lang}}</span>
{{range .Details.Tags}}<span class="tag">{{.}}</span>{{end}}
</div>
{{end}}
{{if .Details.Links}}
<div class="row links"><span class="lbl">{{text .Copy.DetailsLinksLabel .Lang}}</span>
{{range .Details.Links}}<a href="{{.Href}}" rel="noreferrer noopener" target="_blank">{{.Label}}</a>{{end}}
</div>
{{end}}
<div class="row"><a href="{{.Details.CloseURL}}">{{text .Copy.DetailsClose .Lang}}</a></div>
</div>
{{else}}
<div class="details"><div class="empty">{{text .Copy.DetailsEmpty .Lang}}</div></div>
{{end}}
{{end}}`

// ── List view ─────────────────────────────────────────────────────────────────

const tmplList = `
{{define "content"}}
<h1>{{text .Copy.ListHeading .Lang}}</h1>
<div class="subtitle">{{text .Copy.Banner .Lang}}</div>
{{if .Empty}}
<div class="empty">{{text .Copy.NoResults .Lang}}{{if .Query}} «{{.Query}}»{{end}}</div>
{{end}}
{{range .Categories}}
<div class="cat">
<div class="cat-hdr"><span class="dot" style="background:{{.Color}}"></span><a href="{{.ToggleURL}}">{{.Name}}</a></div>
{{if .Rows}}
<div class="cat-body">
{{range .Rows}}
{{if .IsGroup}}
<div class="grp"><a href="{{.ToggleURL}}">{{.Name}}</a></div>
{{else}}
<div class="svc{{if .Hit}} hit{{end}}{{if .Selected}} sel{{end}}"><a class="name" href="{{.SelectURL}}">{{.Name}}</a><span class="desc">{{.Desc}}</span></div>
{{end}}
{{end}}
</div>
{{end}}
</div>
{{end}}
{{end}}`
