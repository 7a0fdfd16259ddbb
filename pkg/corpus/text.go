package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrMalformedLine marks a count line that is not two comma separated integers.
	ErrMalformedLine = errors.New("malformed count line")
	// ErrOrphanCount marks a count line that appears before any word line.
	ErrOrphanCount = errors.New("count line before any word")
	// ErrNegativeCount marks a count below zero.
	ErrNegativeCount = errors.New("negative count")
)

// ParseError reports where a word file could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReadText parses the plain text word format:
//
//	cat
//	2000,1
//	2001,3
//	dog
//	2000,2
//
// A line without a comma starts a new word, every following "year,count" line belongs to it.
// A blank line closes the current block; count lines after it are checked but dropped until
// the next word. A word heading seen twice replaces the earlier block, and a year repeated
// inside a block keeps the last count.
func ReadText(r io.Reader) (*Dataset, error) {
	words := make(map[Word]YearCounts)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		current Word
		counts  YearCounts
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !strings.Contains(line, ",") {
			if current != "" {
				words[current] = counts
			}
			current = line
			counts = make(YearCounts)
			continue
		}
		if counts == nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: ErrOrphanCount}
		}
		year, count, err := parseCountLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		counts[year] = count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word data: %w", err)
	}
	if current != "" {
		words[current] = counts
	}
	return New(words), nil
}

func parseCountLine(line string) (int, int, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return 0, 0, ErrMalformedLine
	}
	year, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: year: %v", ErrMalformedLine, err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: count: %v", ErrMalformedLine, err)
	}
	if count < 0 {
		return 0, 0, ErrNegativeCount
	}
	return year, count, nil
}

// WriteText writes ds in the plain text word format, words and years in ascending order.
func WriteText(w io.Writer, ds *Dataset) error {
	bw := bufio.NewWriter(w)
	for _, word := range ds.Words() {
		if _, err := fmt.Fprintln(bw, word); err != nil {
			return err
		}
		counts, _ := ds.Lookup(word)
		for _, year := range sortedYears(counts) {
			if _, err := fmt.Fprintf(bw, "%d,%d\n", year, counts[year]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
