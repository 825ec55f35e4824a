package caisse

import "time"

type TrendsCache interface {
	Get() ([]TrendPoint, bool)
	Set(points []TrendPoint, ttl time.Duration)
	Invalidate()
}

type noopTrendsCache struct{}

func (noopTrendsCache) Get() ([]TrendPoint, bool)       { return nil, false }
func (noopTrendsCache) Set([]TrendPoint, time.Duration) {}
func (noopTrendsCache) Invalidate()                     {}
