package search

import (
	"log"
	"sort"
	"sync"

	"yag/nlp/generator"
)

const (
	// Step budget when none is configured; a run that has not finished
	// by then is drained with the default action.
	MAX_TRANSITIONS = 800
)

var AllOut bool = false

// A Scorer assigns a real-valued score to applying an action in a
// state. The state passed in is the pre-application state. How scores
// are produced (a model, an oracle, a random draw) is outside the
// driver's concern.
type Scorer interface {
	Score(state *generator.GeneratorState, action generator.Action) float64
}

// Beam runs beam search over generation hypotheses: each step expands
// every non-final hypothesis with all its legal actions, scores the
// expansions, and keeps the best Size candidates. Hypotheses share only
// immutable data (input, vocabularies), so expansion is safe to run
// one goroutine per hypothesis.
type Beam struct {
	TransitionSystem generator.TransitionSystem
	Scorer           Scorer
	Size             int
	MaxSteps         int
	ConcurrentExec   bool
	Trace            bool
}

func (b *Beam) Concurrent() bool {
	return b.ConcurrentExec
}

func (b *Beam) maxSteps() int {
	if b.MaxSteps > 0 {
		return b.MaxSteps
	}
	return MAX_TRANSITIONS
}

// StartItem seeds the beam with a single hypothesis at slot 0.
func (b *Beam) StartItem(state *generator.GeneratorState) []*generator.BeamHypothesis {
	if b.TransitionSystem == nil {
		panic("Set TransitionSystem to a generator.TransitionSystem to generate")
	}
	if b.Scorer == nil {
		panic("Set Scorer to a search.Scorer to generate")
	}
	if b.Size == 0 {
		panic("Beam size not set")
	}
	hyp := generator.NewBeamHypothesis(state)
	hyp.SetBeamSlot(0)
	if b.Trace {
		hyp.SetTrace(&generator.Trace{})
	}
	return []*generator.BeamHypothesis{hyp}
}

// finished distinguishes a terminal state from the initial one: the
// start state is already final by the StackSize test (the root alone),
// but generation has not happened yet, so the driver must not stop (or
// carry the hypothesis over) before the first action.
func (b *Beam) finished(hyp *generator.BeamHypothesis) bool {
	return b.TransitionSystem.IsFinalState(hyp.State) && hyp.State.NumNodes() > 0
}

// Expand returns the successors of one hypothesis: a clone per legal
// action with the action applied and scored. Finished hypotheses are
// carried over unchanged so they keep competing on score.
func (b *Beam) Expand(hyp *generator.BeamHypothesis) []*generator.BeamHypothesis {
	if b.finished(hyp) {
		return []*generator.BeamHypothesis{hyp}
	}
	actions := b.TransitionSystem.GetTransitions(hyp.State)
	candidates := make([]*generator.BeamHypothesis, 0, len(actions))
	for _, action := range actions {
		delta := b.Scorer.Score(hyp.State, action)
		newHyp := hyp.Copy()
		newHyp.InitFromParent(hyp)
		newHyp.TraceStep(b.TransitionSystem.ActionAsString(action, hyp.State))
		b.TransitionSystem.PerformAction(action, newHyp.State)
		newHyp.AddScore(delta)
		newHyp.State.AddScore(delta)
		candidates = append(candidates, newHyp)
	}
	return candidates
}

// TopB sorts candidates by score, best first, and keeps at most B,
// assigning each survivor its beam slot. The sort is stable so equal
// scores preserve expansion order across runs.
func (b *Beam) TopB(candidates []*generator.BeamHypothesis, B int) []*generator.BeamHypothesis {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score() > candidates[j].Score()
	})
	if len(candidates) > B {
		candidates = candidates[:B]
	}
	for slot, hyp := range candidates {
		hyp.SetBeamSlot(slot)
	}
	return candidates
}

func (b *Beam) allFinished(beam []*generator.BeamHypothesis) bool {
	for _, hyp := range beam {
		if !b.finished(hyp) {
			return false
		}
	}
	return true
}

// Search runs the beam to completion and returns the final beam, best
// hypothesis first. If the step budget runs out, unfinished hypotheses
// are drained with the default action so every returned state is final
// and can be materialized.
func (b *Beam) Search(init *generator.GeneratorState) []*generator.BeamHypothesis {
	beam := b.StartItem(init)
	tempAgendas := make([][]*generator.BeamHypothesis, 0, b.Size)
	for step := 0; step < b.maxSteps(); step++ {
		if b.allFinished(beam) {
			break
		}
		tempAgendas = tempAgendas[0:0]
		if b.Concurrent() {
			var wg sync.WaitGroup
			for range beam {
				tempAgendas = append(tempAgendas, nil)
			}
			for i, hyp := range beam {
				wg.Add(1)
				go func(j int, cand *generator.BeamHypothesis) {
					defer wg.Done()
					tempAgendas[j] = b.Expand(cand)
				}(i, hyp)
			}
			wg.Wait()
		} else {
			for _, hyp := range beam {
				tempAgendas = append(tempAgendas, b.Expand(hyp))
			}
		}
		candidates := make([]*generator.BeamHypothesis, 0, b.Size*4)
		for _, expanded := range tempAgendas {
			candidates = append(candidates, expanded...)
		}
		beam = b.TopB(candidates, b.Size)
		if AllOut {
			log.Println("Round", step, "best:", beam[0])
		}
	}
	for _, hyp := range beam {
		b.drain(hyp)
	}
	return beam
}

// Best returns the highest scoring hypothesis of a finished beam.
func (b *Beam) Best(beam []*generator.BeamHypothesis) *generator.BeamHypothesis {
	if len(beam) == 0 {
		panic("Best of an empty beam")
	}
	return beam[0]
}

// drain collapses whatever is left on the stack with the default
// action so the state can be materialized. The step budget can cut a
// run off between an ADD and its WORD; the first legal action (the
// lowest word id) completes the node so it does not materialize with
// an empty word. Bypasses history: the drained actions were not chosen
// by the scorer.
func (b *Beam) drain(hyp *generator.BeamHypothesis) {
	if hyp.State.MissingWord() {
		b.TransitionSystem.PerformActionWithoutHistory(
			b.TransitionSystem.GetTransitions(hyp.State)[0], hyp.State)
	}
	for !b.TransitionSystem.IsFinalState(hyp.State) {
		b.TransitionSystem.PerformActionWithoutHistory(
			b.TransitionSystem.GetDefaultAction(hyp.State), hyp.State)
	}
}

func (b *Beam) Name() string {
	return "Beam"
}
