// Package el is the view DSL: typed element constructors, attribute
// helpers, and event helpers over the vdom pragma.
//
// Typical usage:
//
//	import . "github.com/Eng-Zeus-Vianna/atomico/el"
//
//	Div(Class("counter"),
//	    Button(OnClick(func(*dom.Event) { setCount(count + 1) }), "+"),
//	    Span(fmt.Sprintf("%d", count)),
//	)
//
// Constructor arguments mix freely: Attr values become props, vdom
// view helpers and scalars become children.
package el
