package collector

import "context"

// Fetcher defines the interface for fetching yearly CPI values.
type Fetcher interface {
	FetchCPI(ctx context.Context) (map[int]float64, error)
	Name() string
}
