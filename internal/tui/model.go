// Package tui is the terminal story player.
//
// The left pane scrolls through the step text; the right pane draws the
// figure in character cells. Scrolling feeds a [scroll.Tracker], whose step
// events go through a [scroll.Bridge] into the narrative reducer, and a
// [reveal.Timeline] ticks the point and line sweeps forward in real time.
package tui

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/scrollplot/pkg/figure"
	"github.com/matzehuels/scrollplot/pkg/narrative"
	"github.com/matzehuels/scrollplot/pkg/reveal"
	"github.com/matzehuels/scrollplot/pkg/scroll"
	"github.com/matzehuels/scrollplot/pkg/story"
)

const (
	frameInterval = 50 * time.Millisecond
	scrollLines   = 3
	composeSize   = 600.0
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
	paneStyle   = lipgloss.NewStyle().PaddingLeft(1)
)

// Options configures the player.
type Options struct {
	Logger *log.Logger
	// GlamourStyle is a glamour standard style name. "auto" picks dark or
	// light from the terminal background.
	GlamourStyle string
	// Now is the clock driving the sweeps. Defaults to time.Now.
	Now func() time.Time
}

type tickMsg time.Time

// Model is the bubbletea model of the player.
type Model struct {
	bundle *story.Bundle
	logger *log.Logger
	style  string
	now    func() time.Time

	reducer    *narrative.Reducer
	highlights *scroll.Highlights
	bridge     *scroll.Bridge
	timeline   *reveal.Timeline
	tracker    *scroll.Tracker
	text       *stepText

	vp      viewport.Model
	keys    KeyMap
	help    help.Model
	width   int
	height  int
	ready   bool
	ticking bool
	err     error
}

// New creates a player for b. The bundle must be validated.
func New(b *story.Bundle, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	switch opts.GlamourStyle {
	case "", "auto":
		opts.GlamourStyle = "light"
		if lipgloss.HasDarkBackground() {
			opts.GlamourStyle = "dark"
		}
	}
	m := &Model{
		bundle: b,
		logger: opts.Logger,
		style:  opts.GlamourStyle,
		now:    opts.Now,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.reducer = narrative.NewReducer(m.bundle.Story)
	m.highlights = scroll.NewHighlights()
	m.bridge = scroll.NewBridge(m.reducer, m.highlights, m.logger)
	m.timeline = reveal.NewTimeline(m.bundle.Store, m.bundle.Story,
		reveal.WithMeasure(figure.Measure(m.bundle.Store, composeSize)))
	m.tracker = nil
	if _, err := m.timeline.Apply(m.reducer.View(), m.now()); err != nil {
		m.err = err
	}
}

// StepView returns the narrative view currently shown.
func (m *Model) StepView() narrative.View { return m.bridge.View() }

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.layout()

	case tickMsg:
		m.ticking = false
		m.timeline.Advance(time.Time(msg))
		return m, m.tick()

	case tea.MouseMsg:
		if !m.ready || msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			return m, m.scrollTo(m.vp.YOffset + scrollLines)
		case tea.MouseButtonWheelUp:
			return m, m.scrollTo(m.vp.YOffset - scrollLines)
		}

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.layout()
	}
	if !m.ready {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		return m.scrollTo(m.vp.YOffset + 1)
	case key.Matches(msg, m.keys.Up):
		return m.scrollTo(m.vp.YOffset - 1)
	case key.Matches(msg, m.keys.PageDown):
		return m.scrollTo(m.vp.YOffset + m.vp.Height/2)
	case key.Matches(msg, m.keys.PageUp):
		return m.scrollTo(m.vp.YOffset - m.vp.Height/2)
	case key.Matches(msg, m.keys.NextStep):
		return m.jump(1)
	case key.Matches(msg, m.keys.PrevStep):
		return m.jump(-1)
	case key.Matches(msg, m.keys.Top):
		return m.scrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		return m.scrollTo(m.vp.TotalLineCount())
	case key.Matches(msg, m.keys.Replay):
		m.reset()
		return m.layout()
	}
	return nil
}

// layout sizes the panes and re-flows the step text. The trigger line keeps
// its fraction of the viewport, so a resize may move it across a step.
func (m *Model) layout() tea.Cmd {
	if m.width == 0 || m.height == 0 {
		return nil
	}
	textWidth := max(m.width*2/5, 20)
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	vpHeight := max(m.height-1-helpHeight, 3)

	offset := m.bundle.Story.TriggerOffset
	lead := int(math.Ceil(offset*float64(vpHeight))) + 1
	text, err := renderSteps(m.bundle.Story.Steps, textWidth, lead, vpHeight/2, m.style)
	if err != nil {
		m.err = err
		return nil
	}
	m.text = text

	if !m.ready {
		m.vp = viewport.New(textWidth, vpHeight)
		m.ready = true
	}
	m.vp.Width, m.vp.Height = textWidth, vpHeight
	m.vp.SetContent(m.text.Content(m.highlights) + blankLines(vpHeight))

	extents := m.text.Extents()
	var evs []narrative.Event
	if m.tracker == nil {
		m.tracker = scroll.NewTracker(offset, float64(vpHeight), extents)
		evs = m.tracker.Scroll(float64(m.vp.YOffset))
	} else {
		evs = m.tracker.Resize(float64(vpHeight), extents)
	}
	return m.handle(evs)
}

// scrollTo moves the text viewport and applies the resulting step events.
func (m *Model) scrollTo(top int) tea.Cmd {
	m.vp.SetYOffset(top)
	return m.handle(m.tracker.Scroll(float64(m.vp.YOffset)))
}

// jump scrolls so the trigger line sits on the next or previous step.
func (m *Model) jump(delta int) tea.Cmd {
	line := m.tracker.TriggerLine()
	target := narrative.None
	extents := m.text.Extents()
	if delta > 0 {
		for i, e := range extents {
			if e.Top > line {
				target = i
				break
			}
		}
	} else {
		for i, e := range extents {
			if e.Top+e.Height <= line {
				target = i
			}
		}
	}
	if target == narrative.None {
		if delta < 0 {
			return m.scrollTo(0)
		}
		return nil
	}
	return m.scrollTo(int(math.Ceil(m.tracker.OffsetFor(target))))
}

func (m *Model) handle(evs []narrative.Event) tea.Cmd {
	if len(evs) == 0 {
		return nil
	}
	v := m.bridge.HandleAll(evs)
	if _, err := m.timeline.Apply(v, m.now()); err != nil {
		m.err = err
		return nil
	}
	m.vp.SetContent(m.text.Content(m.highlights) + blankLines(m.vp.Height))
	return m.tick()
}

// tick schedules the next animation frame unless one is pending already.
func (m *Model) tick() tea.Cmd {
	if m.ticking || m.timeline.Pending() == 0 {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) View() string {
	if m.err != nil {
		return errorStyle.Render("error: "+m.err.Error()) + "\n"
	}
	if !m.ready {
		return "loading…"
	}

	v := m.bridge.View()
	f, err := figure.Compose(m.bundle.Story, m.bundle.Store, v, m.timeline, m.now(), composeSize)
	if err != nil {
		return errorStyle.Render("error: "+err.Error()) + "\n"
	}
	figWidth := max(m.width-m.vp.Width-2, 10)
	var fig string
	if f.Step().ShowPercentGraph {
		fig = renderPercent(f, figWidth, m.vp.Height)
	} else {
		fig = renderPlot(f, figWidth, m.vp.Height)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.vp.View(), paneStyle.Render(fig))
	return lipgloss.JoinVertical(lipgloss.Left, body, m.status(v), m.help.View(m.keys))
}

func (m *Model) status(v narrative.View) string {
	step := "start"
	if v.StepIndex != narrative.None {
		step = fmt.Sprintf("step %d/%d", v.StepIndex+1, m.bundle.Story.Len())
	}
	return statusStyle.Render(fmt.Sprintf("%s · %s · through %d · %3.0f%%",
		step, v.Step.Category, v.MaxYear, m.vp.ScrollPercent()*100))
}

func blankLines(n int) string {
	out := make([]byte, max(n, 0))
	for i := range out {
		out[i] = '\n'
	}
	return string(out)
}
