// Package cli handles interactive word queries from the command line
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordsim/internal/logger"
	"github.com/bastiangx/wordsim/pkg/corpus"
	"github.com/bastiangx/wordsim/pkg/similarity"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// hintPrefixLen is how many leading bytes of an unknown word are used to look up close words
const hintPrefixLen = 3

// InputHandler reads a word file name and then words from its input,
// printing total occurrences and the most similar words for each.
type InputHandler struct {
	loader      *corpus.Loader
	engine      *similarity.Engine
	in          *bufio.Reader
	out         io.Writer
	log         *log.Logger
	showScores  bool
	prefixLimit int
	table       bool
}

// Options controls InputHandler output
type Options struct {
	ShowScores  bool
	PrefixLimit int
}

// NewInputHandler creates a handler on stdin/stdout. Tables are used when stdout is a terminal.
func NewInputHandler(loader *corpus.Loader, engine *similarity.Engine, opts Options) *InputHandler {
	h := NewInputHandlerWithIO(loader, engine, opts, os.Stdin, os.Stdout)
	h.table = isTerminal(os.Stdout)
	return h
}

// NewInputHandlerWithIO creates a handler on the given streams with plain output.
func NewInputHandlerWithIO(loader *corpus.Loader, engine *similarity.Engine, opts Options, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		loader:      loader,
		engine:      engine,
		in:          bufio.NewReader(in),
		out:         out,
		log:         logger.NewWithWriter(out, ""),
		showScores:  opts.ShowScores,
		prefixLimit: opts.PrefixLimit,
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Start asks for a word file unless one is loaded, then answers word queries until
// the input ends. Lines starting with ':' are commands (:load, :prefix, :info, :quit).
func (h *InputHandler) Start() error {
	if h.loader.Current().Len() == 0 {
		if err := h.promptFile(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}

	for {
		line, err := h.prompt("Enter word: ")
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := h.handleCommand(line); quit {
				return nil
			}
			continue
		}
		h.handleWord(line)
	}
}

func (h *InputHandler) promptFile() error {
	for {
		name, err := h.prompt("Enter word file: ")
		if err != nil {
			return err
		}
		if name == "" {
			continue
		}
		if h.load(name) {
			return nil
		}
	}
}

// prompt writes msg and reads one trimmed line. A final line without newline is still returned.
func (h *InputHandler) prompt(msg string) (string, error) {
	fmt.Fprint(h.out, msg)
	line, err := h.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (h *InputHandler) load(name string) bool {
	ds, err := h.loader.Load(name)
	if err != nil {
		h.log.Errorf("Failed to load %s: %v", name, err)
		return false
	}
	h.engine.Reset()
	stats := h.loader.Stats()
	h.log.Printf("Loaded %s words over %d years from %s", humanize.Comma(int64(ds.Len())), stats.Years, stats.File)
	return true
}

func (h *InputHandler) handleCommand(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":q", ":quit", ":exit":
		return true
	case ":load":
		if len(fields) < 2 {
			h.log.Error("Usage: :load <file>")
			return false
		}
		h.load(fields[1])
	case ":prefix":
		prefix := ""
		if len(fields) > 1 {
			prefix = fields[1]
		}
		words := h.loader.Current().WordsWithPrefix(prefix, h.prefixLimit)
		if len(words) == 0 {
			h.log.Warnf("No words start with '%s'", prefix)
			return false
		}
		h.log.Print(strings.Join(words, " "))
	case ":info":
		stats := h.loader.Stats()
		h.log.Print("dataset", "file", stats.File, "words", stats.Words, "years", stats.Years, "format", stats.Format.String())
	default:
		h.log.Errorf("Unknown command: %s", fields[0])
	}
	return false
}

// handleWord prints the total and the similar words for one query.
func (h *InputHandler) handleWord(word string) {
	ds := h.loader.Current()

	start := time.Now()
	total := corpus.TotalOccurrences(word, ds)
	matches := h.engine.Rank(ds, word, h.engine.TopK())
	log.Debugf("Took [ %v ] for word '%s'", time.Since(start), word)

	fmt.Fprintf(h.out, "Total occurrences of %s : %s\n", word, humanize.Comma(int64(total)))

	similar := make([]corpus.Word, 0, len(matches)+1)
	similar = append(similar, word)
	for _, m := range matches {
		similar = append(similar, m.Word)
	}
	fmt.Fprintf(h.out, "The most similar words are: [%s]\n", strings.Join(similar, ", "))

	if !ds.Has(word) {
		h.hint(word)
		return
	}
	if h.showScores && len(matches) > 0 {
		h.printMatches(matches)
	}
}

func (h *InputHandler) hint(word string) {
	prefix := word
	if len(prefix) > hintPrefixLen {
		prefix = prefix[:hintPrefixLen]
	}
	nearby := h.loader.Current().WordsWithPrefix(prefix, h.prefixLimit)
	if len(nearby) > 0 {
		h.log.Warnf("'%s' is not in the corpus. Words starting with '%s': %s", word, prefix, strings.Join(nearby, " "))
		return
	}
	h.log.Warnf("'%s' is not in the corpus", word)
}

func (h *InputHandler) printMatches(matches []similarity.Match) {
	ds := h.loader.Current()
	if h.table {
		fmt.Fprintln(h.out, renderMatches(ds, matches))
		return
	}
	for i, m := range matches {
		fmt.Fprintf(h.out, "%2d. %-24s %.4f (total: %s)\n", i+1, m.Word, m.Score, humanize.Comma(int64(ds.Total(m.Word))))
	}
}
