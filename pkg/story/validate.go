package story

import (
	"github.com/matzehuels/scrollplot/pkg/dataset"
	"github.com/matzehuels/scrollplot/pkg/errors"
)

// Validate checks the story against its dataset and reports every problem
// found. A category missing from the store is a configuration error here so
// that nothing downstream needs a runtime fallback for it.
func (s *Story) Validate(store *dataset.Store) error {
	var problems []error
	add := func(code errors.Code, format string, args ...any) {
		problems = append(problems, errors.New(code, format, args...))
	}

	if err := errors.ValidateYearSpan(s.StartYear, s.EndYear); err != nil {
		problems = append(problems, err)
	}
	if err := errors.ValidateFraction("trigger_offset", s.TriggerOffset); err != nil {
		problems = append(problems, err)
	}
	if s.QueueDelay < 0 || s.SweepDuration < 0 {
		add(errors.ErrCodeInvalidStory, "queue_delay and sweep_duration must not be negative")
	}
	if len(s.Steps) == 0 {
		add(errors.ErrCodeInvalidStory, "story has no steps")
	}

	if store != nil {
		if store.StartYear() != s.StartYear || store.EndYear() != s.EndYear {
			add(errors.ErrCodeInvalidStory, "story spans %d..%d but the dataset spans %d..%d",
				s.StartYear, s.EndYear, store.StartYear(), store.EndYear())
		}
		if !store.Has(s.DefaultCategory) {
			add(errors.ErrCodeCategoryNotFound, "default_category %q is not in the dataset", s.DefaultCategory)
		}
	}

	seen := make(map[string]int, len(s.Steps))
	for i, step := range s.Steps {
		if step.Text == "" {
			add(errors.ErrCodeInvalidStory, "step %d has no text", i)
		} else if prev, dup := seen[step.Text]; dup {
			add(errors.ErrCodeInvalidStory, "step %d repeats the text of step %d", i, prev)
		} else {
			seen[step.Text] = i
		}
		if step.MaxYear < s.StartYear-1 || step.MaxYear > s.EndYear {
			add(errors.ErrCodeInvalidStory, "step %d: max_year %d outside %d..%d",
				i, step.MaxYear, s.StartYear-1, s.EndYear)
		}
		if store != nil && !store.Has(step.Category) {
			add(errors.ErrCodeCategoryNotFound, "step %d: category %q is not in the dataset", i, step.Category)
		}
		for _, g := range step.Guides {
			if g.Kind == GuideNote && (g.Year < s.StartYear || g.Year > s.EndYear) {
				add(errors.ErrCodeInvalidStory, "step %d: note guide year %d outside %d..%d",
					i, g.Year, s.StartYear, s.EndYear)
			}
		}
	}

	return errors.Join(problems...)
}
