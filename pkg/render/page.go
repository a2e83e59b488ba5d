package render

import (
	"fmt"
	"io"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root of the page content.
	Body dom.Node

	// Title is the page title.
	Title string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// Links contains link tags (stylesheets, favicon, etc.).
	Links []LinkTag

	// Scripts contains script tags to include at the end of the body.
	Scripts []ScriptTag

	// Styles contains inline CSS blocks.
	Styles []string

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Lang is the language attribute for the html element.
	// Defaults to "en".
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string
	Content   string
	Property  string
	HTTPEquiv string
	Charset   string
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel         string
	Href        string
	Type        string
	Sizes       string
	CrossOrigin string
	Media       string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Type   string
	Defer  bool
	Async  bool
	Module bool
	Inline string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := w.Write([]byte("<!DOCTYPE html>\n")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}

	if err := r.renderHead(w, page); err != nil {
		return err
	}

	if _, err := w.Write([]byte("<body>\n")); err != nil {
		return err
	}
	if page.Body != nil {
		if err := r.RenderToWriter(w, page.Body); err != nil {
			return err
		}
	}
	if err := r.renderScripts(w, page.Scripts); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n</body>\n</html>\n"))
	return err
}

func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := w.Write([]byte("<head>\n<meta charset=\"utf-8\">\n")); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}

	for _, m := range page.Meta {
		if err := renderMetaTag(w, m); err != nil {
			return err
		}
	}
	for _, l := range page.Links {
		if err := renderLinkTag(w, l); err != nil {
			return err
		}
	}
	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, `<link rel="stylesheet" href="%s">`+"\n", escapeAttr(href)); err != nil {
			return err
		}
	}
	for _, css := range page.Styles {
		if _, err := fmt.Fprintf(w, "<style>%s</style>\n", css); err != nil {
			return err
		}
	}

	_, err := w.Write([]byte("</head>\n"))
	return err
}

func renderMetaTag(w io.Writer, m MetaTag) error {
	out := "<meta"
	if m.Charset != "" {
		out += fmt.Sprintf(` charset="%s"`, escapeAttr(m.Charset))
	}
	if m.Name != "" {
		out += fmt.Sprintf(` name="%s"`, escapeAttr(m.Name))
	}
	if m.Property != "" {
		out += fmt.Sprintf(` property="%s"`, escapeAttr(m.Property))
	}
	if m.HTTPEquiv != "" {
		out += fmt.Sprintf(` http-equiv="%s"`, escapeAttr(m.HTTPEquiv))
	}
	if m.Content != "" {
		out += fmt.Sprintf(` content="%s"`, escapeAttr(m.Content))
	}
	_, err := io.WriteString(w, out+">\n")
	return err
}

func renderLinkTag(w io.Writer, l LinkTag) error {
	out := "<link"
	if l.Rel != "" {
		out += fmt.Sprintf(` rel="%s"`, escapeAttr(l.Rel))
	}
	if l.Href != "" {
		out += fmt.Sprintf(` href="%s"`, escapeAttr(l.Href))
	}
	if l.Type != "" {
		out += fmt.Sprintf(` type="%s"`, escapeAttr(l.Type))
	}
	if l.Sizes != "" {
		out += fmt.Sprintf(` sizes="%s"`, escapeAttr(l.Sizes))
	}
	if l.CrossOrigin != "" {
		out += fmt.Sprintf(` crossorigin="%s"`, escapeAttr(l.CrossOrigin))
	}
	if l.Media != "" {
		out += fmt.Sprintf(` media="%s"`, escapeAttr(l.Media))
	}
	_, err := io.WriteString(w, out+">\n")
	return err
}

func (r *Renderer) renderScripts(w io.Writer, scripts []ScriptTag) error {
	for _, s := range scripts {
		out := "<script"
		switch {
		case s.Module:
			out += ` type="module"`
		case s.Type != "":
			out += fmt.Sprintf(` type="%s"`, escapeAttr(s.Type))
		}
		if s.Src != "" {
			out += fmt.Sprintf(` src="%s"`, escapeAttr(s.Src))
		}
		if s.Defer {
			out += " defer"
		}
		if s.Async {
			out += " async"
		}
		out += ">"
		if s.Inline != "" {
			out += s.Inline
		}
		out += "</script>\n"
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return nil
}
