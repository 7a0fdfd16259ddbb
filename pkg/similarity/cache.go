package similarity

import (
	"sync"

	"github.com/bastiangx/wordsim/pkg/corpus"
	"github.com/charmbracelet/log"
)

// space is the year axis of one Dataset plus the normalized vector of every word in it.
type space struct {
	axis    []int
	vectors map[corpus.Word]Vector
}

func buildSpace(ds *corpus.Dataset) *space {
	axis := ds.Years()
	words := ds.Words()
	sp := &space{
		axis:    axis,
		vectors: make(map[corpus.Word]Vector, len(words)),
	}
	for _, word := range words {
		counts, _ := ds.Lookup(word)
		sp.vectors[word] = NewVector(counts, axis).Normalize()
	}
	return sp
}

// spaceCache keeps built spaces keyed by Dataset identity. Datasets are immutable,
// so a cached space never goes stale. Least recently used entries are evicted.
type spaceCache struct {
	spaces      map[*corpus.Dataset]*space
	accessTime  map[*corpus.Dataset]int64
	accessCount int64
	maxEntries  int
	hits        int64
	misses      int64
	mu          sync.Mutex
}

func newSpaceCache(maxEntries int) *spaceCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &spaceCache{
		spaces:     make(map[*corpus.Dataset]*space, maxEntries),
		accessTime: make(map[*corpus.Dataset]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

func (sc *spaceCache) get(ds *corpus.Dataset) *space {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sp, ok := sc.spaces[ds]; ok {
		sc.hits++
		sc.markAccessed(ds)
		return sp
	}
	sc.misses++

	sp := buildSpace(ds)
	if len(sc.spaces) >= sc.maxEntries {
		sc.evictLRU()
	}
	sc.spaces[ds] = sp
	sc.markAccessed(ds)
	log.Debugf("Built vector space: %d words x %d years", len(sp.vectors), len(sp.axis))
	return sp
}

func (sc *spaceCache) markAccessed(ds *corpus.Dataset) {
	sc.accessCount++
	sc.accessTime[ds] = sc.accessCount
}

func (sc *spaceCache) evictLRU() {
	var oldest *corpus.Dataset
	var oldestTime int64 = 1<<63 - 1

	for ds, accessTime := range sc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldest = ds
		}
	}
	if oldest != nil {
		delete(sc.spaces, oldest)
		delete(sc.accessTime, oldest)
		log.Debug("Evicted vector space from cache")
	}
}

func (sc *spaceCache) reset() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.spaces = make(map[*corpus.Dataset]*space, sc.maxEntries)
	sc.accessTime = make(map[*corpus.Dataset]int64, sc.maxEntries)
}

func (sc *spaceCache) stats() map[string]int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return map[string]int{
		"cachedSpaces": len(sc.spaces),
		"maxSpaces":    sc.maxEntries,
		"cacheHits":    int(sc.hits),
		"cacheMisses":  int(sc.misses),
	}
}
