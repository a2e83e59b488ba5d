package el

import "strings"

func ID(id string) Attr { return Attr{Key: "id", Value: id} }

// Class joins the given class names with spaces.
func Class(classes ...string) Attr {
	return Attr{Key: "class", Value: strings.Join(classes, " ")}
}

// Style sets the element's inline style from property/value pairs.
// Odd trailing arguments are ignored.
func Style(pairs ...string) Attr {
	styles := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		styles[pairs[i]] = pairs[i+1]
	}
	return Attr{Key: "style", Value: styles}
}

func Title(title string) Attr       { return Attr{Key: "title", Value: title} }
func Href(url string) Attr          { return Attr{Key: "href", Value: url} }
func Src(url string) Attr           { return Attr{Key: "src", Value: url} }
func Alt(text string) Attr          { return Attr{Key: "alt", Value: text} }
func Type(t string) Attr            { return Attr{Key: "type", Value: t} }
func Name(name string) Attr         { return Attr{Key: "name", Value: name} }
func Value(v any) Attr              { return Attr{Key: "value", Value: v} }
func Placeholder(text string) Attr  { return Attr{Key: "placeholder", Value: text} }
func Disabled(disabled bool) Attr   { return Attr{Key: "disabled", Value: disabled} }
func Checked(checked bool) Attr     { return Attr{Key: "checked", Value: checked} }
func Required(required bool) Attr   { return Attr{Key: "required", Value: required} }
func ReadOnly(readonly bool) Attr   { return Attr{Key: "readonly", Value: readonly} }
func For(id string) Attr            { return Attr{Key: "for", Value: id} }
func TabIndex(index int) Attr       { return Attr{Key: "tabindex", Value: index} }
func Role(role string) Attr         { return Attr{Key: "role", Value: role} }
func Data(key, value string) Attr   { return Attr{Key: "data-" + key, Value: value} }
func AriaLabel(label string) Attr   { return Attr{Key: "aria-label", Value: label} }
func AriaHidden(hidden bool) Attr   { return Attr{Key: "aria-hidden", Value: hidden} }
func AriaExpanded(open bool) Attr   { return Attr{Key: "aria-expanded", Value: open} }
func AriaLive(mode string) Attr     { return Attr{Key: "aria-live", Value: mode} }
func AriaControls(id string) Attr   { return Attr{Key: "aria-controls", Value: id} }
func AriaCurrent(value string) Attr { return Attr{Key: "aria-current", Value: value} }
