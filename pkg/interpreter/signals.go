package interpreter

import "github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"

// signal is the completion of a statement. Exactly one of the four variants
// below is returned alongside a nil error; runtime errors travel separately.
type signal interface {
	isSignal()
}

type normalSignal struct {
	value runtime.Value
}

type breakSignal struct{}

type continueSignal struct{}

type returnSignal struct {
	value runtime.Value
}

func (normalSignal) isSignal()   {}
func (breakSignal) isSignal()    {}
func (continueSignal) isSignal() {}
func (returnSignal) isSignal()   {}

var normalNull signal = normalSignal{value: runtime.Null}
