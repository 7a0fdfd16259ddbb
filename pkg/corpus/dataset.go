// Package corpus holds the word dataset: per word, occurrence counts keyed by year.
//
// A Dataset is built once, by New or by one of the loaders, and never mutated afterwards.
// All read methods are safe for concurrent use.
package corpus

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Word is an opaque corpus token. Equality is exact string equality.
type Word = string

// YearCounts maps a year to the number of occurrences of one word in that year.
// Years that are absent count as zero.
type YearCounts map[int]int

// Get returns the count for year, or 0 when the year is not recorded.
func (yc YearCounts) Get(year int) int {
	return yc[year]
}

// Total sums all counts.
func (yc YearCounts) Total() int {
	total := 0
	for _, count := range yc {
		total += count
	}
	return total
}

func (yc YearCounts) clone() YearCounts {
	out := make(YearCounts, len(yc))
	for year, count := range yc {
		out[year] = count
	}
	return out
}

// Dataset is an immutable word -> YearCounts mapping with a prefix index over words.
type Dataset struct {
	words map[Word]YearCounts
	order []Word
	trie  *patricia.Trie
}

// New builds a Dataset from a word map. The input is copied, later changes to it are not seen.
func New(words map[Word]YearCounts) *Dataset {
	ds := &Dataset{
		words: make(map[Word]YearCounts, len(words)),
		order: make([]Word, 0, len(words)),
		trie:  patricia.NewTrie(),
	}
	for word, counts := range words {
		if counts == nil {
			counts = YearCounts{}
		}
		ds.words[word] = counts.clone()
		ds.order = append(ds.order, word)
	}
	sort.Strings(ds.order)
	for _, word := range ds.order {
		if word == "" {
			continue
		}
		ds.trie.Insert(patricia.Prefix(word), ds.words[word].Total())
	}
	return ds
}

// Len returns the number of words.
func (ds *Dataset) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.order)
}

// Has reports whether word is in the dataset.
func (ds *Dataset) Has(word Word) bool {
	if ds == nil {
		return false
	}
	_, ok := ds.words[word]
	return ok
}

// Lookup returns the counts for word. The returned map must not be modified.
func (ds *Dataset) Lookup(word Word) (YearCounts, bool) {
	if ds == nil {
		return nil, false
	}
	counts, ok := ds.words[word]
	return counts, ok
}

// Words returns all words in ascending order.
func (ds *Dataset) Words() []Word {
	if ds == nil {
		return nil
	}
	out := make([]Word, len(ds.order))
	copy(out, ds.order)
	return out
}

// Years returns the year axis: every year recorded for any word, sorted ascending without duplicates.
func (ds *Dataset) Years() []int {
	if ds == nil {
		return []int{}
	}
	seen := make(map[int]struct{})
	for _, counts := range ds.words {
		for year := range counts {
			seen[year] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// Total returns the total occurrences of word across all years, 0 when the word is unknown.
func (ds *Dataset) Total(word Word) int {
	counts, ok := ds.Lookup(word)
	if !ok {
		return 0
	}
	return counts.Total()
}

// TotalOccurrences is the function form of Dataset.Total.
func TotalOccurrences(word Word, ds *Dataset) int {
	return ds.Total(word)
}

// WordsWithPrefix lists words starting with prefix in ascending order.
// A limit <= 0 returns every match.
func (ds *Dataset) WordsWithPrefix(prefix string, limit int) []Word {
	if ds == nil {
		return []Word{}
	}
	var matches []Word
	if prefix == "" {
		matches = ds.Words()
	} else {
		matches = []Word{}
		err := ds.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
			matches = append(matches, string(p))
			return nil
		})
		if err != nil {
			log.Errorf("Error visiting word index: %v", err)
		}
		sort.Strings(matches)
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Map returns a deep copy of the underlying word map.
func (ds *Dataset) Map() map[Word]YearCounts {
	out := make(map[Word]YearCounts, ds.Len())
	if ds == nil {
		return out
	}
	for word, counts := range ds.words {
		out[word] = counts.clone()
	}
	return out
}
