// Package lottery implements the weighted draw that resolves contention for
// a single (date, timeSlot). The randomness source is injected so tests can
// fix seeds and assert exact draw sequences.
package lottery

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
)

var ErrNonPositiveWeight = errors.New("all candidates must carry a positive weight")

// Candidate is one pending request entering the draw.
type Candidate struct {
	RequestID uuid.UUID
	UserID    uuid.UUID
	Weight    float64
}

// Assignment pairs a drawn request with the court it won.
type Assignment struct {
	RequestID uuid.UUID
	UserID    uuid.UUID
	CourtID   uuid.UUID
}

type Engine struct {
	rng *rand.Rand
}

func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Draw performs weighted sampling without replacement: each round picks one
// candidate with probability proportional to its weight via inverse-CDF over
// cumulative weights, removes it from the pool and assigns it the next free
// court. It stops when either candidates or courts run out, so the result
// length is min(len(candidates), len(courts)). Equal weights tie-break through
// the same random mechanism, never through insertion order.
func (e *Engine) Draw(candidates []Candidate, courts []uuid.UUID) ([]Assignment, error) {
	for _, c := range candidates {
		if c.Weight <= 0 {
			return nil, ErrNonPositiveWeight
		}
	}

	pool := make([]Candidate, len(candidates))
	copy(pool, candidates)

	n := len(pool)
	if len(courts) < n {
		n = len(courts)
	}

	assignments := make([]Assignment, 0, n)
	for i := 0; i < n; i++ {
		idx := e.drawOne(pool)
		winner := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)

		assignments = append(assignments, Assignment{
			RequestID: winner.RequestID,
			UserID:    winner.UserID,
			CourtID:   courts[i],
		})
	}

	return assignments, nil
}

func (e *Engine) drawOne(pool []Candidate) int {
	total := 0.0
	for _, c := range pool {
		total += c.Weight
	}

	r := e.rng.Float64() * total
	cum := 0.0
	for i, c := range pool {
		cum += c.Weight
		if r < cum {
			return i
		}
	}
	// float rounding can leave r at the far edge
	return len(pool) - 1
}
