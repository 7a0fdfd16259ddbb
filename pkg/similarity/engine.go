package similarity

import (
	"sort"

	"github.com/bastiangx/wordsim/pkg/corpus"
)

// DefaultTopK is how many similar words TopSimilar returns after the query word.
const DefaultTopK = 4

// Match is a candidate word and its cosine similarity to the query.
type Match struct {
	Word  corpus.Word
	Score float64
}

// Options configures an Engine.
type Options struct {
	// TopK is the number of similar words returned by TopSimilar. Values < 1 use DefaultTopK.
	TopK int
	// CacheSize is how many datasets keep their vector space cached. 0 disables caching.
	CacheSize int
}

// Engine answers similarity queries. The zero value is usable: no caching, DefaultTopK.
// An Engine is safe for concurrent use.
type Engine struct {
	topK  int
	cache *spaceCache
}

// NewEngine creates an Engine from opts.
func NewEngine(opts Options) *Engine {
	e := &Engine{topK: opts.TopK}
	if opts.CacheSize > 0 {
		e.cache = newSpaceCache(opts.CacheSize)
	}
	return e
}

// TopK returns the configured number of similar words.
func (e *Engine) TopK() int {
	if e == nil || e.topK < 1 {
		return DefaultTopK
	}
	return e.topK
}

func (e *Engine) space(ds *corpus.Dataset) *space {
	if e != nil && e.cache != nil {
		return e.cache.get(ds)
	}
	return buildSpace(ds)
}

// Rank scores every word of ds except query against query and returns the best k,
// highest score first. Equal scores are ordered by ascending word.
// k < 1 returns all candidates. An unknown query yields no matches.
func (e *Engine) Rank(ds *corpus.Dataset, query corpus.Word, k int) []Match {
	if !ds.Has(query) {
		return []Match{}
	}
	sp := e.space(ds)
	target := sp.vectors[query]

	matches := make([]Match, 0, len(sp.vectors)-1)
	for word, vec := range sp.vectors {
		if word == query {
			continue
		}
		matches = append(matches, Match{Word: word, Score: Dot(target, vec)})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Word < matches[j].Word
	})

	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// TopSimilar returns query followed by its TopK most similar words.
// An unknown query returns just [query].
func (e *Engine) TopSimilar(ds *corpus.Dataset, query corpus.Word) []corpus.Word {
	result := []corpus.Word{query}
	for _, m := range e.Rank(ds, query, e.TopK()) {
		result = append(result, m.Word)
	}
	return result
}

// Similarity returns the cosine similarity of two words, 0 if either is unknown or has no counts.
func (e *Engine) Similarity(ds *corpus.Dataset, a, b corpus.Word) float64 {
	if !ds.Has(a) || !ds.Has(b) {
		return 0
	}
	sp := e.space(ds)
	return Dot(sp.vectors[a], sp.vectors[b])
}

// Reset drops all cached vector spaces.
func (e *Engine) Reset() {
	if e != nil && e.cache != nil {
		e.cache.reset()
	}
}

// Stats returns cache statistics.
func (e *Engine) Stats() map[string]int {
	stats := map[string]int{"topK": e.TopK()}
	if e != nil && e.cache != nil {
		for k, v := range e.cache.stats() {
			stats[k] = v
		}
	}
	return stats
}

var defaultEngine = &Engine{}

// TopSimilar returns query followed by the DefaultTopK most similar words in ds.
func TopSimilar(ds *corpus.Dataset, query corpus.Word) []corpus.Word {
	return defaultEngine.TopSimilar(ds, query)
}

// Similarity returns the cosine similarity of a and b in ds.
func Similarity(ds *corpus.Dataset, a, b corpus.Word) float64 {
	return defaultEngine.Similarity(ds, a, b)
}
