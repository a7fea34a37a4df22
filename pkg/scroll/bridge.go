package scroll

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scrollplot/pkg/narrative"
)

// Highlighter marks step text as the reader passes through it.
type Highlighter interface {
	OnStepEnter(index int)
	OnStepExit(index int)
}

// Bridge forwards step events to the reducer and the highlighter.
type Bridge struct {
	reducer *narrative.Reducer
	hl      Highlighter
	logger  *log.Logger
}

// NewBridge creates a bridge. hl may be nil.
func NewBridge(r *narrative.Reducer, hl Highlighter, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Bridge{reducer: r, hl: hl, logger: logger}
}

// Handle applies one event and returns the resulting view.
func (b *Bridge) Handle(ev narrative.Event) narrative.View {
	if b.hl != nil {
		switch ev.Kind {
		case narrative.Enter:
			b.hl.OnStepEnter(ev.Index)
		case narrative.Exit:
			b.hl.OnStepExit(ev.Index)
		}
	}
	v := b.reducer.Apply(ev)
	b.logger.Debug("step event", "event", ev, "step", v.StepIndex, "max_year", v.MaxYear)
	return v
}

// HandleAll applies events in order and returns the final view.
func (b *Bridge) HandleAll(evs []narrative.Event) narrative.View {
	for _, ev := range evs {
		b.Handle(ev)
	}
	return b.reducer.View()
}

// View returns the current view without applying anything.
func (b *Bridge) View() narrative.View { return b.reducer.View() }

// Highlights records which steps are highlighted.
type Highlights struct {
	on map[int]bool
}

// NewHighlights returns an empty highlight set.
func NewHighlights() *Highlights { return &Highlights{on: make(map[int]bool)} }

func (h *Highlights) OnStepEnter(i int) { h.on[i] = true }
func (h *Highlights) OnStepExit(i int)  { delete(h.on, i) }

// Has reports whether step i is highlighted.
func (h *Highlights) Has(i int) bool { return h.on[i] }
