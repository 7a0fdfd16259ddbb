package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordsim/pkg/corpus"
	"github.com/bastiangx/wordsim/pkg/similarity"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const animalWords = "cat\n2000,1\n2001,3\ndog\n2000,2\n2001,6\nfish\n2000,5\n2001,0\n"

func setup(t *testing.T) *corpus.Loader {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "animals.txt"), []byte(animalWords), 0644); err != nil {
		t.Fatal(err)
	}
	return corpus.NewLoader(dir)
}

func run(t *testing.T, loader *corpus.Loader, opts Options, input string) string {
	t.Helper()
	var out bytes.Buffer
	h := NewInputHandlerWithIO(loader, similarity.NewEngine(similarity.Options{CacheSize: 1}), opts, strings.NewReader(input), &out)
	if err := h.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return out.String()
}

func TestPromptsForFileThenWords(t *testing.T) {
	out := run(t, setup(t), Options{}, "animals.txt\ndog\ncat")

	expected := []string{
		"Enter word file: ",
		"Total occurrences of dog : 8",
		"Total occurrences of cat : 4",
		"The most similar words are: [cat, dog, fish]",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRetriesUnreadableFile(t *testing.T) {
	out := run(t, setup(t), Options{}, "missing.txt\nanimals.txt\ncat\n")
	if strings.Count(out, "Enter word file: ") != 2 {
		t.Errorf("expected a second file prompt:\n%s", out)
	}
	if !strings.Contains(out, "[cat, dog, fish]") {
		t.Errorf("expected results after retry:\n%s", out)
	}
}

func TestEndOfInputAtFilePrompt(t *testing.T) {
	out := run(t, setup(t), Options{}, "")
	if out != "Enter word file: " {
		t.Errorf("expected a single file prompt, got %q", out)
	}
}

func TestUnknownWord(t *testing.T) {
	out := run(t, setup(t), Options{PrefixLimit: 5}, "animals.txt\nzebra\n")
	if !strings.Contains(out, "Total occurrences of zebra : 0") {
		t.Errorf("unknown word should total 0:\n%s", out)
	}
	if !strings.Contains(out, "The most similar words are: [zebra]") {
		t.Errorf("unknown word should list only itself:\n%s", out)
	}
}

func TestScoresAndCommands(t *testing.T) {
	loader := setup(t)
	if _, err := loader.Load("animals.txt"); err != nil {
		t.Fatal(err)
	}
	out := run(t, loader, Options{ShowScores: true, PrefixLimit: 5}, "cat\n:prefix d\n:quit\nfish\n")

	if strings.Contains(out, "Enter word file: ") {
		t.Errorf("should not ask for a file when one is loaded:\n%s", out)
	}
	if !strings.Contains(out, " 1. dog") || !strings.Contains(out, "1.0000 (total: 8)") {
		t.Errorf("expected scored dog line:\n%s", out)
	}
	if !strings.Contains(out, "dog\n") {
		t.Errorf("expected prefix listing:\n%s", out)
	}
	if strings.Contains(out, "occurrences of fish") {
		t.Errorf("input after :quit was processed:\n%s", out)
	}
}

func TestRenderMatches(t *testing.T) {
	ds := corpus.New(map[corpus.Word]corpus.YearCounts{
		"cat": {2000: 1000, 2001: 3000},
		"dog": {2000: 2000, 2001: 6000},
	})
	out := renderMatches(ds, similarity.NewEngine(similarity.Options{}).Rank(ds, "cat", 0))
	for _, want := range []string{"Word", "Similarity", "dog", "8,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "SIMILARITY") {
		t.Errorf("headers should keep their case:\n%s", out)
	}
}
