package heuristic

import (
	"strings"

	"github.com/yeschef/hungie/internal/ruleset"
)

// TrackState is the lifecycle state of an in-progress recipe.
type TrackState int

const (
	// StateCollecting means the recipe may still gain content from
	// following pages.
	StateCollecting TrackState = iota
	// StateComplete means the recipe was finalized and emitted.
	StateComplete
	// StateAbandoned means the recipe was finalized but failed validation.
	StateAbandoned
)

func (s TrackState) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateComplete:
		return "complete"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// tracked is one arena slot: a candidate plus its tracking state.
type tracked struct {
	cand        Candidate
	state       TrackState
	quietPages  int // consecutive pages that added nothing
}

// Tracker assembles recipes across consecutive pages. A recipe that starts
// near the bottom of a page routinely spills its ingredients or
// instructions onto the next page; the tracker appends such content to the
// pending recipe until a new title appears or the lookahead window runs out.
//
// The arena of finished slots is retained for the run so the termination
// path of every candidate is auditable afterwards.
type Tracker struct {
	rules *ruleset.Ruleset

	arena   []tracked
	pending int // index into arena of the collecting slot, -1 if none
}

// NewTracker creates a Tracker for one extraction run.
func NewTracker(r *ruleset.Ruleset) *Tracker {
	return &Tracker{rules: r, pending: -1}
}

// Page feeds one classified page to the tracker and returns any candidate
// finalized by it (nil if nothing completed on this page).
func (t *Tracker) Page(pageNum int, label Label, text string) *Candidate {
	if label != LabelRecipe {
		// A non-recipe page still burns lookahead for a pending recipe.
		return t.tick()
	}

	title, hasTitle := FindTitle(t.rules, text)
	if hasTitle {
		done := t.finalizePending()

		sections := SplitSections(t.rules, text)
		t.arena = append(t.arena, tracked{
			cand: Candidate{
				Title:        title,
				Ingredients:  sections.Ingredients,
				Instructions: sections.Instructions,
				StartPage:    pageNum,
			},
			state: StateCollecting,
		})
		t.pending = len(t.arena) - 1
		return done
	}

	// No new title: continuation content for the pending recipe, if any.
	if t.pending < 0 {
		return nil
	}

	if !looksLikeRecipeContent(t.rules, text) {
		return t.tick()
	}

	slot := &t.arena[t.pending]
	sections := SplitSections(t.rules, text)
	switch {
	case sections.Ingredients != "" || sections.Instructions != "":
		slot.cand.Ingredients += sections.Ingredients
		slot.cand.Instructions += sections.Instructions
	case strings.TrimSpace(slot.cand.Instructions) != "":
		// Instructions already started; spillover continues them.
		slot.cand.Instructions += "\n" + text
	default:
		slot.cand.Ingredients += "\n" + text
	}
	slot.quietPages = 0
	return nil
}

// Finish flushes the pending recipe at end of run.
func (t *Tracker) Finish() *Candidate {
	return t.finalizePending()
}

// States returns the final state of every tracked candidate, in order.
func (t *Tracker) States() []TrackState {
	states := make([]TrackState, len(t.arena))
	for i := range t.arena {
		states[i] = t.arena[i].state
	}
	return states
}

// tick advances the lookahead window of the pending recipe and finalizes
// it when the window is exhausted.
func (t *Tracker) tick() *Candidate {
	if t.pending < 0 {
		return nil
	}
	slot := &t.arena[t.pending]
	slot.quietPages++
	if slot.quietPages >= t.rules.LookaheadPages {
		return t.finalizePending()
	}
	return nil
}

// finalizePending validates and closes the collecting slot. The candidate
// is returned whether or not it validated; IsValid carries the verdict so
// callers can count rejections.
func (t *Tracker) finalizePending() *Candidate {
	if t.pending < 0 {
		return nil
	}
	slot := &t.arena[t.pending]
	t.pending = -1

	Validate(t.rules, &slot.cand)
	if slot.cand.IsValid {
		slot.state = StateComplete
		return &slot.cand
	}
	slot.state = StateAbandoned
	return &slot.cand
}

// looksLikeRecipeContent reports whether untitled page text resembles
// ingredient or instruction content worth appending to a pending recipe.
func looksLikeRecipeContent(r *ruleset.Ruleset, text string) bool {
	lower := strings.ToLower(text)
	hits := countKeywordHits(lower, r.Classifier.UnitKeywords) +
		countKeywordHits(lower, r.Classifier.CookingVerbs)
	return hits >= 2
}
