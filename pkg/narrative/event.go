package narrative

import "fmt"

// Kind distinguishes step-enter from step-exit events.
type Kind int

const (
	Enter Kind = iota
	Exit
)

func (k Kind) String() string {
	if k == Exit {
		return "exit"
	}
	return "enter"
}

// Direction is the scroll direction that produced an event.
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Event reports that a step crossed the scroll trigger line.
type Event struct {
	Kind      Kind
	Index     int
	Direction Direction
}

// EnterStep builds an enter event.
func EnterStep(index int, dir Direction) Event {
	return Event{Kind: Enter, Index: index, Direction: dir}
}

// ExitStep builds an exit event.
func ExitStep(index int, dir Direction) Event {
	return Event{Kind: Exit, Index: index, Direction: dir}
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d, %s)", e.Kind, e.Index, e.Direction)
}
