package el

import "github.com/Eng-Zeus-Vianna/atomico/pkg/vdom"

// Document structure.

func Div(args ...any) *vdom.VNode     { return E("div", args...) }
func Span(args ...any) *vdom.VNode    { return E("span", args...) }
func P(args ...any) *vdom.VNode       { return E("p", args...) }
func Main(args ...any) *vdom.VNode    { return E("main", args...) }
func Section(args ...any) *vdom.VNode { return E("section", args...) }
func Article(args ...any) *vdom.VNode { return E("article", args...) }
func Aside(args ...any) *vdom.VNode   { return E("aside", args...) }
func Header(args ...any) *vdom.VNode  { return E("header", args...) }
func Footer(args ...any) *vdom.VNode  { return E("footer", args...) }
func Nav(args ...any) *vdom.VNode     { return E("nav", args...) }

// Headings.

func H1(args ...any) *vdom.VNode { return E("h1", args...) }
func H2(args ...any) *vdom.VNode { return E("h2", args...) }
func H3(args ...any) *vdom.VNode { return E("h3", args...) }
func H4(args ...any) *vdom.VNode { return E("h4", args...) }

// Text-level.

func A(args ...any) *vdom.VNode      { return E("a", args...) }
func Strong(args ...any) *vdom.VNode { return E("strong", args...) }
func Em(args ...any) *vdom.VNode     { return E("em", args...) }
func Code(args ...any) *vdom.VNode   { return E("code", args...) }
func Pre(args ...any) *vdom.VNode    { return E("pre", args...) }
func Small(args ...any) *vdom.VNode  { return E("small", args...) }
func Br(args ...any) *vdom.VNode     { return E("br", args...) }
func Hr(args ...any) *vdom.VNode     { return E("hr", args...) }

// Lists and tables.

func Ul(args ...any) *vdom.VNode    { return E("ul", args...) }
func Ol(args ...any) *vdom.VNode    { return E("ol", args...) }
func Li(args ...any) *vdom.VNode    { return E("li", args...) }
func Table(args ...any) *vdom.VNode { return E("table", args...) }
func Thead(args ...any) *vdom.VNode { return E("thead", args...) }
func Tbody(args ...any) *vdom.VNode { return E("tbody", args...) }
func Tr(args ...any) *vdom.VNode    { return E("tr", args...) }
func Th(args ...any) *vdom.VNode    { return E("th", args...) }
func Td(args ...any) *vdom.VNode    { return E("td", args...) }

// Forms.

func Form(args ...any) *vdom.VNode     { return E("form", args...) }
func Input(args ...any) *vdom.VNode    { return E("input", args...) }
func Textarea(args ...any) *vdom.VNode { return E("textarea", args...) }
func Button(args ...any) *vdom.VNode   { return E("button", args...) }
func Select(args ...any) *vdom.VNode   { return E("select", args...) }
func Option(args ...any) *vdom.VNode   { return E("option", args...) }
func Label(args ...any) *vdom.VNode    { return E("label", args...) }
func Fieldset(args ...any) *vdom.VNode { return E("fieldset", args...) }

// Media.

func Img(args ...any) *vdom.VNode    { return E("img", args...) }
func Video(args ...any) *vdom.VNode  { return E("video", args...) }
func Audio(args ...any) *vdom.VNode  { return E("audio", args...) }
func Canvas(args ...any) *vdom.VNode { return E("canvas", args...) }
func Svg(args ...any) *vdom.VNode    { return E("svg", args...) }

// Misc.

func Slot(args ...any) *vdom.VNode     { return E("slot", args...) }
func Template(args ...any) *vdom.VNode { return E("template", args...) }
func Dialog(args ...any) *vdom.VNode   { return E("dialog", args...) }
func Details(args ...any) *vdom.VNode  { return E("details", args...) }
func Summary(args ...any) *vdom.VNode  { return E("summary", args...) }
