package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed output with indentation. Should
	// only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used per indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer serializes live document trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a node tree to an HTML string.
func (r *Renderer) RenderToString(node dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a node tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node dom.Node) error {
	return r.renderNode(w, node, 0, false)
}

func (r *Renderer) renderNode(w io.Writer, node dom.Node, depth int, raw bool) error {
	switch n := node.(type) {
	case nil:
		return nil
	case *dom.Element:
		return r.renderElement(w, n, depth)
	case *dom.Text:
		return r.renderText(w, n, raw)
	default:
		return fmt.Errorf("render: unknown node type %T", node)
	}
}

func (r *Renderer) renderElement(w io.Writer, el *dom.Element, depth int) error {
	tag := el.Tag()

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, el); err != nil {
		return err
	}

	if isVoidElement(tag) {
		if _, err := w.Write([]byte{'>'}); err != nil {
			return err
		}
		if r.config.Pretty {
			w.Write([]byte{'\n'})
		}
		return nil
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	pretty := r.config.Pretty && r.hasElementChildren(el)
	if pretty {
		w.Write([]byte{'\n'})
	}

	if sh := el.Shadow(); sh != nil {
		if _, err := io.WriteString(w, `<template shadowrootmode="open">`); err != nil {
			return err
		}
		for _, child := range sh.Children() {
			if err := r.renderNode(w, child, depth+1, false); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</template>"); err != nil {
			return err
		}
	}

	raw := isRawTextElement(tag)
	for _, child := range el.Children() {
		if err := r.renderNode(w, child, depth+1, raw); err != nil {
			return err
		}
	}

	if pretty {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}
	return nil
}

// renderText emits a text node. Marks produce no output.
func (r *Renderer) renderText(w io.Writer, t *dom.Text, raw bool) error {
	if t.IsMark() {
		return nil
	}
	data := t.Data()
	if !raw {
		data = escapeHTML(data)
	}
	_, err := io.WriteString(w, data)
	return err
}

// renderAttributes emits attributes, the merged style declaration, and
// the customized built-in marker in sorted order.
func (r *Renderer) renderAttributes(w io.Writer, el *dom.Element) error {
	attrs := el.Attributes()

	if is := el.Is(); is != "" {
		attrs["is"] = is
	}
	// Elements with listeners carry their node identity and event
	// types so the client can route interactions back.
	if types := el.ListenerTypes(); len(types) > 0 {
		sort.Strings(types)
		attrs["data-aid"] = el.ID()
		attrs["data-on"] = strings.Join(types, " ")
	}
	if styles := el.Styles(); len(styles) > 0 {
		props := make([]string, 0, len(styles))
		for p := range styles {
			props = append(props, p)
		}
		sort.Strings(props)
		style := ""
		for _, p := range props {
			style += p + ": " + styles[p] + "; "
		}
		attrs["style"] = style[:len(style)-1]
	}

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(attrs[key])); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) hasElementChildren(el *dom.Element) bool {
	for _, child := range el.Children() {
		if _, ok := child.(*dom.Element); ok {
			return true
		}
	}
	return false
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
