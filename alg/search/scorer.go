package search

import (
	"math/rand"
	"sync"

	"yag/nlp/generator"
)

// UniformScorer draws scores uniformly at random from a seeded source.
// It stands in for a real model in the CLI demo and in tests; two runs
// with the same seed and a sequential driver produce the same output.
type UniformScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ Scorer = &UniformScorer{}

func NewUniformScorer(seed int64) *UniformScorer {
	return &UniformScorer{rng: rand.New(rand.NewSource(seed))}
}

func (u *UniformScorer) Score(state *generator.GeneratorState, action generator.Action) float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rng.Float64()
}
