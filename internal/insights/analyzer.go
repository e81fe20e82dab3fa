package insights

import "context"

// Analyzer produces per-photo room analyses for a listing photo set.
// The production implementation calls a hosted vision model; tests use
// synthetic fixtures so the selection core never needs the network.
type Analyzer interface {
	Analyze(ctx context.Context, photos [][]byte) (*PhotoInsights, error)
}
