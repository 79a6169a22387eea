package session

import "github.com/abhisek/flashquiz/internal/problemgen"

// Event is a discrete input to the machine.
type Event interface {
	event()
}

type (
	StartEvent     struct{ Config problemgen.Config }
	TickEvent      struct{}
	DigitEvent     struct{ Digit rune }
	BackspaceEvent struct{}
	OptionEvent    struct{ Label string }
	SubmitEvent    struct{}
	NextEvent      struct{}
	ResetEvent     struct{}
)

func (StartEvent) event()     {}
func (TickEvent) event()      {}
func (DigitEvent) event()     {}
func (BackspaceEvent) event() {}
func (OptionEvent) event()    {}
func (SubmitEvent) event()    {}
func (NextEvent) event()      {}
func (ResetEvent) event()     {}

// Dispatch applies ev and returns the resulting snapshot together with the
// event's error. The snapshot is valid even when err is non-nil.
func (m *Machine) Dispatch(ev Event) (Snapshot, error) {
	var err error
	switch ev := ev.(type) {
	case StartEvent:
		err = m.Start(ev.Config)
	case TickEvent:
		err = m.Tick()
	case DigitEvent:
		err = m.AppendDigit(ev.Digit)
	case BackspaceEvent:
		err = m.Backspace()
	case OptionEvent:
		err = m.SelectOption(ev.Label)
	case SubmitEvent:
		err = m.Submit()
	case NextEvent:
		err = m.NextProblem()
	case ResetEvent:
		err = m.Reset()
	default:
		err = ErrNotAccepting
	}
	return m.Snapshot(), err
}
