package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/scrollplot/pkg/dataset"
	"github.com/matzehuels/scrollplot/pkg/narrative"
	"github.com/matzehuels/scrollplot/pkg/story"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestModel(t *testing.T) (*Model, *clock) {
	t.Helper()
	store, err := dataset.New(1990, map[string]dataset.Series{
		"Engineering": {{A: 10, B: 5}, {A: 12, B: 6}, {A: 15, B: 20}},
		"Physics":     {{A: 1000, B: 3000}, {A: 1200, B: 2800}, {A: 1500, B: 2500}},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	s := &story.Story{
		Title:           "Test",
		StartYear:       1990,
		EndYear:         1992,
		DefaultCategory: "Engineering",
		Steps: []story.Step{
			{Text: "In **1990** few women studied engineering.", Category: "Engineering", MaxYear: 1990},
			{Text: "By 1992 more did.", Category: "Engineering", MaxYear: 1992, ShowLine: true},
			{Text: "Physics shares.", Category: "Physics", MaxYear: 1992, ShowPercentGraph: true},
		},
	}
	s.SetDefaults()
	c := &clock{t: time.Unix(1000, 0)}
	m := New(&story.Bundle{Story: s, Store: store}, Options{GlamourStyle: "notty", Now: c.now})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, c
}

func press(m *Model, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

func TestStartsAtSentinel(t *testing.T) {
	m, _ := newTestModel(t)
	v := m.StepView()
	if v.StepIndex != narrative.None {
		t.Errorf("StepIndex = %d, want None", v.StepIndex)
	}
	if !strings.Contains(m.View(), "start") {
		t.Error("status should show the start position")
	}
}

func TestNextAndPrevStep(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, 'n')
	if got := m.StepView().StepIndex; got != 0 {
		t.Fatalf("after n: step = %d, want 0", got)
	}
	if !m.highlights.Has(0) {
		t.Error("step 0 should be highlighted")
	}

	press(m, 'n')
	if got := m.StepView().StepIndex; got != 1 {
		t.Fatalf("after n n: step = %d, want 1", got)
	}
	if m.highlights.Has(0) {
		t.Error("step 0 should no longer be highlighted")
	}

	press(m, 'p')
	if got := m.StepView().StepIndex; got != 0 {
		t.Errorf("after p: step = %d, want 0", got)
	}
	if got := m.StepView().MarkedYears.Years(); len(got) < 2 {
		t.Errorf("marked years = %v, want history kept", got)
	}
}

func TestTicksUntilSweepsSettle(t *testing.T) {
	m, c := newTestModel(t)

	if cmd := press(m, 'n'); cmd == nil {
		t.Fatal("entering a step with new points should schedule a tick")
	}
	if m.timeline.Pending() == 0 {
		t.Fatal("expected running sweeps")
	}

	c.t = c.t.Add(10 * time.Second)
	_, cmd := m.Update(tickMsg(c.t))
	if cmd != nil {
		t.Error("no tick expected once every sweep is done")
	}
	if m.timeline.Pending() != 0 {
		t.Errorf("pending = %d, want 0", m.timeline.Pending())
	}
}

func TestTickLoopRunsUntilSettled(t *testing.T) {
	m, c := newTestModel(t)

	press(m, 'n')
	for i := 0; m.timeline.Pending() > 0; i++ {
		if i > 100 {
			t.Fatalf("sweeps still pending after %d ticks", i)
		}
		c.t = c.t.Add(60 * time.Millisecond)
		_, cmd := m.Update(tickMsg(c.t))
		if m.timeline.Pending() > 0 && cmd == nil {
			t.Fatalf("tick %d: %d sweeps pending but no next tick", i, m.timeline.Pending())
		}
	}

	// A later step restarts the loop.
	if cmd := press(m, 'n'); cmd == nil {
		t.Error("entering the next step should schedule a tick again")
	}
}

func TestViewShowsFigure(t *testing.T) {
	m, c := newTestModel(t)
	press(m, 'n')
	c.t = c.t.Add(10 * time.Second)
	m.Update(tickMsg(c.t))
	out := m.View()
	for _, want := range []string{"Engineering", "step 1/3", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPercentStepUsesBarChart(t *testing.T) {
	m, _ := newTestModel(t)
	for range 3 {
		press(m, 'n')
	}
	if got := m.StepView().StepIndex; got != 2 {
		t.Fatalf("step = %d, want 2", got)
	}
	if !strings.Contains(m.View(), "share of total") {
		t.Error("percent step should draw the share chart")
	}
}

func TestReplayResets(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, 'n')
	press(m, 'n')
	press(m, 'r')
	if got := m.StepView().StepIndex; got != narrative.None {
		t.Errorf("after restart step = %d, want None", got)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := press(m, 'q')
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
