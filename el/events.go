package el

import "github.com/Eng-Zeus-Vianna/atomico/pkg/dom"

// On binds a listener for an arbitrary event type.
func On(typ string, fn func(*dom.Event)) Attr {
	return Attr{Key: "on" + typ, Value: fn}
}

func OnClick(fn func(*dom.Event)) Attr  { return On("click", fn) }
func OnInput(fn func(*dom.Event)) Attr  { return On("input", fn) }
func OnChange(fn func(*dom.Event)) Attr { return On("change", fn) }
func OnSubmit(fn func(*dom.Event)) Attr { return On("submit", fn) }
func OnFocus(fn func(*dom.Event)) Attr  { return On("focus", fn) }
func OnBlur(fn func(*dom.Event)) Attr   { return On("blur", fn) }
func OnKeyDown(fn func(*dom.Event)) Attr {
	return On("keydown", fn)
}
func OnKeyUp(fn func(*dom.Event)) Attr {
	return On("keyup", fn)
}
