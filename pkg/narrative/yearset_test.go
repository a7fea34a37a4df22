package narrative

import "testing"

func TestYearSetDeduplicates(t *testing.T) {
	s := NewYearSet(1990, 1995, 1990)
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	again := s.With(1995)
	if !again.Equal(s) {
		t.Errorf("adding a present year changed the set: %v -> %v", s, again)
	}
}

func TestYearSetIsImmutable(t *testing.T) {
	base := NewYearSet(1990)
	a := base.With(1991)
	b := base.With(1992)

	if base.Len() != 1 {
		t.Errorf("base modified: %v", base)
	}
	if a.Contains(1992) || b.Contains(1991) {
		t.Errorf("sibling sets share storage: a=%v b=%v", a, b)
	}

	years := a.Years()
	years[0] = 0
	if !a.Contains(1990) {
		t.Error("Years must return a copy")
	}
}

func TestYearSetOrder(t *testing.T) {
	s := NewYearSet().With(2000).With(1990).With(1995).With(2000)
	if got := s.String(); got != "[2000 1990 1995]" {
		t.Errorf("String = %s, want insertion order", got)
	}
}

func TestYearSetZeroValue(t *testing.T) {
	var s YearSet
	if s.Contains(1990) || s.Len() != 0 {
		t.Error("zero value should be empty")
	}
	if s.With(1990).Len() != 1 {
		t.Error("With on zero value should work")
	}
}
