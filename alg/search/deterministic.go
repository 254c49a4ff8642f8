package search

import (
	"yag/nlp/generator"
)

// Deterministic is the greedy driver: at each step it applies the
// single best scoring legal action. Equivalent to a beam of size 1
// without the cloning overhead.
type Deterministic struct {
	TransitionSystem generator.TransitionSystem
	Scorer           Scorer
	MaxSteps         int
}

func (d *Deterministic) maxSteps() int {
	if d.MaxSteps > 0 {
		return d.MaxSteps
	}
	return MAX_TRANSITIONS
}

// Generate mutates the given state in place until it is final or the
// step budget runs out, then drains the stack with the default action.
// Returns the same state for convenience.
func (d *Deterministic) Generate(state *generator.GeneratorState) *generator.GeneratorState {
	if d.TransitionSystem == nil {
		panic("Set TransitionSystem to a generator.TransitionSystem to generate")
	}
	if d.Scorer == nil {
		panic("Set Scorer to a search.Scorer to generate")
	}
	for step := 0; step < d.maxSteps(); step++ {
		// the start state is final by the StackSize test before any
		// generation has happened; only stop once nodes exist
		if d.TransitionSystem.IsFinalState(state) && state.NumNodes() > 0 {
			break
		}
		var (
			bestAction generator.Action
			bestScore  float64
			first      = true
		)
		for action := range d.TransitionSystem.YieldTransitions(state) {
			score := d.Scorer.Score(state, action)
			if first || score > bestScore {
				bestAction, bestScore, first = action, score, false
			}
		}
		d.TransitionSystem.PerformAction(bestAction, state)
		state.AddScore(bestScore)
	}
	// a budget cut-off between an ADD and its WORD leaves a wordless
	// node; complete it before collapsing the stack
	if state.MissingWord() {
		d.TransitionSystem.PerformActionWithoutHistory(
			d.TransitionSystem.GetTransitions(state)[0], state)
	}
	for !d.TransitionSystem.IsFinalState(state) {
		d.TransitionSystem.PerformActionWithoutHistory(
			d.TransitionSystem.GetDefaultAction(state), state)
	}
	return state
}

func (d *Deterministic) Name() string {
	return "Deterministic"
}
