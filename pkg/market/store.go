package market

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	// initVolatility scales the per-step perturbation of the backward-looking
	// random walk used to synthesize the initial history (0.2% of base price).
	initVolatility = 0.002
	// maxSeedVolume bounds the randomly seeded session volume.
	maxSeedVolume = 10_000_000
	// historySpacing is the simulated spacing between initial history samples.
	historySpacing = time.Minute
)

// Option customises randomness and clock sources for the store and ticker.
// The defaults are suitable for production; tests inject seeded sources.
type Option func(*sources)

type sources struct {
	rng *rand.Rand
	now func() time.Time
}

// WithRand injects a deterministic random source.
func WithRand(rng *rand.Rand) Option {
	return func(s *sources) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithClock injects a clock, used for history timestamp labels.
func WithClock(now func() time.Time) Option {
	return func(s *sources) {
		if now != nil {
			s.now = now
		}
	}
}

func newSources(opts []Option) *sources {
	s := &sources{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func clockLabel(t time.Time) string {
	return t.Format("15:04")
}

// Initialize synthesizes the opening snapshot for the given seed list. Each
// quote receives a full history of HistoryLimit samples generated by a
// backward-looking random walk ending at "now", spaced one minute apart.
func Initialize(seed []SeedEntry, opts ...Option) (*Snapshot, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("market: seed list is empty")
	}

	src := newSources(opts)
	quotes := make(map[string]Quote, len(seed))
	for i, entry := range seed {
		if err := entry.validate(i); err != nil {
			return nil, err
		}
		sym := Canonical(entry.Symbol)
		if _, dup := quotes[sym]; dup {
			return nil, fmt.Errorf("market: duplicate seed symbol %s", sym)
		}

		history := generateHistory(entry.StartingPrice, HistoryLimit, src)
		price := history[len(history)-1].Price
		open := history[0].Price
		change := price - open

		quotes[sym] = Quote{
			Symbol:        sym,
			Name:          entry.Name,
			Sector:        entry.Sector,
			Price:         price,
			Change:        change,
			ChangePercent: change / open * 100,
			Volume:        src.rng.Int63n(maxSeedVolume),
			History:       history,
		}
	}
	return newSnapshot(quotes), nil
}

func generateHistory(basePrice float64, points int, src *sources) []PricePoint {
	history := make([]PricePoint, 0, points)
	price := basePrice
	now := src.now()
	for i := points; i > 0; i-- {
		at := now.Add(-time.Duration(i) * historySpacing)
		step := (src.rng.Float64() - 0.5) * basePrice * initVolatility
		price += step
		history = append(history, PricePoint{Label: clockLabel(at), Price: price})
	}
	return history
}

// Store owns the live snapshot. It is the only shared resource in the system
// and is replaced wholesale on each tick, never mutated field by field.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewStore initializes a store from the seed list.
func NewStore(seed []SeedEntry, opts ...Option) (*Store, error) {
	snap, err := Initialize(seed, opts...)
	if err != nil {
		return nil, err
	}
	return &Store{current: snap}, nil
}

// Snapshot returns the current published snapshot.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Get looks up a quote in the current snapshot.
func (s *Store) Get(symbol string) (Quote, bool) {
	return s.Snapshot().Get(symbol)
}

// Replace atomically publishes the next snapshot. The symbol set is fixed at
// initialization; a snapshot with a different key set is rejected.
func (s *Store) Replace(next *Snapshot) error {
	if next == nil {
		return fmt.Errorf("market: next snapshot is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if next.Len() != s.current.Len() {
		return fmt.Errorf("market: snapshot symbol count changed from %d to %d", s.current.Len(), next.Len())
	}
	for sym := range s.current.quotes {
		if _, ok := next.quotes[sym]; !ok {
			return fmt.Errorf("market: snapshot dropped symbol %s", sym)
		}
	}
	s.current = next
	return nil
}
