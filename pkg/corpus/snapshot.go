package corpus

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

const snapshotVersion = 1

// ErrSnapshotVersion is returned for snapshots written by an unknown format version.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// snapshot is the msgpack layout of a Dataset. Years and counts are parallel slices.
type snapshot struct {
	Version int            `msgpack:"v"`
	Words   []snapshotWord `msgpack:"w"`
}

type snapshotWord struct {
	Word   string `msgpack:"w"`
	Years  []int  `msgpack:"y"`
	Counts []int  `msgpack:"c"`
}

// WriteSnapshot encodes ds as msgpack. Words and years are written in ascending order,
// so equal datasets produce identical bytes.
func WriteSnapshot(w io.Writer, ds *Dataset) error {
	snap := snapshot{
		Version: snapshotVersion,
		Words:   make([]snapshotWord, 0, ds.Len()),
	}
	for _, word := range ds.Words() {
		counts, _ := ds.Lookup(word)
		years := sortedYears(counts)
		entry := snapshotWord{
			Word:   word,
			Years:  years,
			Counts: make([]int, len(years)),
		}
		for i, year := range years {
			entry.Counts[i] = counts[year]
		}
		snap.Words = append(snap.Words, entry)
	}
	if err := msgpack.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a Dataset written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Dataset, error) {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
	}
	words := make(map[Word]YearCounts, len(snap.Words))
	for _, entry := range snap.Words {
		if len(entry.Years) != len(entry.Counts) {
			return nil, fmt.Errorf("snapshot word %q: %d years but %d counts", entry.Word, len(entry.Years), len(entry.Counts))
		}
		counts := make(YearCounts, len(entry.Years))
		for i, year := range entry.Years {
			if entry.Counts[i] < 0 {
				return nil, fmt.Errorf("snapshot word %q year %d: %w", entry.Word, year, ErrNegativeCount)
			}
			counts[year] = entry.Counts[i]
		}
		words[entry.Word] = counts
	}
	return New(words), nil
}

func sortedYears(counts YearCounts) []int {
	years := make([]int, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}
