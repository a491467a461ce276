package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/wordsnap/wordsnap/internal/entity"
	"github.com/wordsnap/wordsnap/internal/usecase"
)

type collectCall struct {
	userID string
	word   *entity.Word
}

// fakeWords records CollectWord calls and simulates duplicates.
type fakeWords struct {
	usecase.WordUsecase

	mu         sync.Mutex
	calls      []collectCall
	duplicates map[string]bool
	failWith   error
}

func (f *fakeWords) CollectWord(ctx context.Context, userID string, word *entity.Word) (*entity.Word, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if f.duplicates[strings.ToLower(word.English)] {
		return nil, entity.ErrDuplicateWord
	}
	f.calls = append(f.calls, collectCall{userID: userID, word: word})
	return word, nil
}

func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestImportWordsFromCSV(t *testing.T) {
	words := &fakeWords{}
	im := New(words)

	cfg := DefaultConfig()
	cfg.UserID = "u1"
	cfg.FilePath = writeCSV(t,
		"english,meaning,pos,example,difficulty",
		"apple,사과,noun,I ate an apple.,easy",
		"run,달리다,verb,,",
	)

	result, err := im.ImportWords(context.Background(), cfg)
	if err != nil {
		t.Fatalf("ImportWords: %v", err)
	}
	if result.TotalProcessed != 2 || result.Created != 2 || result.Skipped != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(words.calls) != 2 {
		t.Fatalf("expected 2 collected words, got %d", len(words.calls))
	}

	first := words.calls[0]
	if first.userID != "u1" {
		t.Errorf("user id = %q", first.userID)
	}
	if first.word.English != "apple" || first.word.Meaning != "사과" {
		t.Errorf("unexpected word: %+v", first.word)
	}
	if first.word.PartOfSpeech != entity.PartOfSpeechNoun {
		t.Errorf("part of speech = %q", first.word.PartOfSpeech)
	}
	if first.word.Difficulty != entity.DifficultyEasy {
		t.Errorf("difficulty = %q", first.word.Difficulty)
	}

	second := words.calls[1]
	if second.word.Difficulty != entity.DifficultyMedium {
		t.Errorf("default difficulty = %q", second.word.Difficulty)
	}
}

func TestImportWordsSkipsDuplicates(t *testing.T) {
	words := &fakeWords{duplicates: map[string]bool{"apple": true}}
	im := New(words)

	cfg := DefaultConfig()
	cfg.UserID = "u1"
	cfg.FilePath = writeCSV(t,
		"english,meaning",
		"apple,사과",
		"grape,포도",
	)

	result, err := im.ImportWords(context.Background(), cfg)
	if err != nil {
		t.Fatalf("ImportWords: %v", err)
	}
	if result.Created != 1 || result.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestImportWordsCollectsRowErrors(t *testing.T) {
	words := &fakeWords{failWith: errors.New("backend down")}
	im := New(words)

	cfg := DefaultConfig()
	cfg.UserID = "u1"
	cfg.FilePath = writeCSV(t,
		"english,meaning",
		"apple,사과",
	)

	result, err := im.ImportWords(context.Background(), cfg)
	if err != nil {
		t.Fatalf("ImportWords: %v", err)
	}
	if result.Created != 0 || len(result.Errors) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !strings.Contains(result.Errors[0], "Row 2") {
		t.Errorf("error missing row number: %q", result.Errors[0])
	}
}

func TestImportWordsRequiresUserID(t *testing.T) {
	im := New(&fakeWords{})
	cfg := DefaultConfig()
	cfg.FilePath = "ignored.csv"
	if _, err := im.ImportWords(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing user id")
	}
}
