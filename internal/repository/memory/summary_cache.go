package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SummaryCache memoizes generated summaries per well and day so revisits
// within the same reporting day don't hit the completion API again.
type SummaryCache struct {
	cache *cache.Cache
}

func NewSummaryCache() *SummaryCache {
	c := cache.New(6*time.Hour, 30*time.Minute)
	return &SummaryCache{cache: c}
}

func (s *SummaryCache) Get(key string) (string, bool) {
	if x, found := s.cache.Get(key); found {
		return x.(string), true
	}
	return "", false
}

func (s *SummaryCache) Set(key, summary string) {
	s.cache.Set(key, summary, cache.DefaultExpiration)
}
