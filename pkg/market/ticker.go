package market

// Tick parameters. Volatility is expressed as a fraction of the current
// price; the volume step is drawn uniformly from [0, maxVolumeStep).
const (
	tickVolatility = 0.0008
	maxVolumeStep  = 5000
)

// Ticker advances every tracked symbol's quote by one simulated step. It is a
// pure computation over the previous snapshot: no I/O, no external calls, and
// the input snapshot is left untouched.
type Ticker struct {
	src *sources
}

// NewTicker constructs a tick generator.
func NewTicker(opts ...Option) *Ticker {
	return &Ticker{src: newSources(opts)}
}

// Tick computes the next snapshot from the previous one. Each symbol is
// updated independently: a zero-mean perturbation scaled to 0.08% of the
// current price is applied, the new sample is appended to the history, the
// history is trimmed to the most recent HistoryLimit samples, and change and
// change-percent are recomputed against the post-trim window open. Volume
// accrues by a random non-negative increment.
func (t *Ticker) Tick(prev *Snapshot) *Snapshot {
	if prev == nil {
		return nil
	}

	label := clockLabel(t.src.now())
	next := make(map[string]Quote, prev.Len())
	for sym, q := range prev.quotes {
		next[sym] = t.advance(q, label)
	}
	return newSnapshot(next)
}

func (t *Ticker) advance(q Quote, label string) Quote {
	step := (t.src.rng.Float64() - 0.5) * q.Price * tickVolatility
	price := q.Price + step

	history := make([]PricePoint, 0, len(q.History)+1)
	history = append(history, q.History...)
	history = append(history, PricePoint{Label: label, Price: price})
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}

	// The open price slides with the visible window; change is measured over
	// the retained samples, not the session open.
	open := history[0].Price
	change := price - open

	q.Price = price
	q.Change = change
	q.ChangePercent = change / open * 100
	q.Volume += t.src.rng.Int63n(maxVolumeStep)
	q.History = history
	return q
}
