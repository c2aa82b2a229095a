package lazy

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"go.uber.org/zap"

	"github.com/coregx/dnfa/determinize"
)

// cache owns every materialized state except start and dead, keyed by the
// canonical key of the NFA set. It is only touched with DFA.mu held.
type cache struct {
	lru *simplelru.LRU[string, *State]
	log *zap.Logger

	hits      uint64
	misses    uint64
	evictions uint64
}

func newCache(capacity int, log *zap.Logger) (*cache, error) {
	c := &cache{log: log}
	lru, err := simplelru.NewLRU[string, *State](capacity, c.evict)
	if err != nil {
		return nil, err
	}
	c.lru = lru
	return c, nil
}

// evict detaches victim from the graph. Edges into it are cleared so stepping
// recomputes them, and it is dropped from its successors' incoming lists.
func (c *cache) evict(_ string, victim *State) {
	for _, e := range victim.incoming {
		if e.from.next[e.class] == victim {
			e.from.next[e.class] = nil
		}
	}
	victim.incoming = nil
	for i, t := range victim.next {
		if t != nil {
			t.unlink(victim)
			victim.next[i] = nil
		}
	}
	c.evictions++
	c.log.Debug("evicted lazy state",
		zap.Stringer("state", victim),
		zap.Int("retained", c.lru.Len()))
}

// touch marks s as recently used. Start and dead are not in the LRU.
func (c *cache) touch(s *State) {
	c.lru.Get(s.key)
}

func (c *cache) get(key string) (*State, bool) {
	return c.lru.Get(key)
}

// add inserts s, evicting the least recently used state when full.
func (c *cache) add(s *State) {
	c.lru.Add(s.key, s)
}

func (c *cache) len() int {
	return c.lru.Len()
}

// purge evicts every state.
func (c *cache) purge() {
	c.lru.Purge()
}

// sets returns the cached sets from least to most recently used.
func (c *cache) sets() []determinize.Set {
	keys := c.lru.Keys()
	out := make([]determinize.Set, len(keys))
	for i, k := range keys {
		out[i] = determinize.DecodeKey(k)
	}
	return out
}
