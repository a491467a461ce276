package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wordsnap/wordsnap/internal/entity"
	"github.com/wordsnap/wordsnap/internal/usecase"
	"github.com/xuri/excelize/v2"
)

// Config defines the import configuration
type Config struct {
	FilePath      string // Path to the Excel or CSV file
	UserID        string // Owner of the imported words
	SheetName     string // Name of the sheet to import
	StartRow      int    // The row to start importing from (1-based index)
	DefaultSource string // Source recorded on imported words
}

// DefaultConfig returns the default import configuration. Columns are fixed:
// english, meaning, part of speech, example sentence, difficulty.
func DefaultConfig() Config {
	return Config{
		SheetName:     "Sheet1",
		StartRow:      2, // By default, start from the second row (skip header)
		DefaultSource: string(entity.SourceManual),
	}
}

// Result holds the result of an import operation
type Result struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer loads vocabulary rows through the word usecase so every imported
// word passes the same validation and duplicate checks as the API.
type Importer struct {
	words usecase.WordUsecase
}

func New(words usecase.WordUsecase) *Importer {
	return &Importer{words: words}
}

// ImportWords imports words from an Excel or CSV file
func (im *Importer) ImportWords(ctx context.Context, config Config) (*Result, error) {
	if config.UserID == "" {
		return nil, errors.New("user id is required")
	}

	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return im.importFromCSV(ctx, config)
	}
	return im.importFromExcel(ctx, config)
}

func (im *Importer) importFromExcel(ctx context.Context, config Config) (*Result, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &Result{}
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		im.processRow(ctx, row, config, result, i+1)
	}
	return result, nil
}

func (im *Importer) importFromCSV(ctx context.Context, config Config) (*Result, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &Result{}
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line++
		if line < config.StartRow {
			continue
		}
		im.processRow(ctx, row, config, result, line)
	}
	return result, nil
}

func (im *Importer) processRow(ctx context.Context, row []string, config Config, result *Result, lineNo int) {
	result.TotalProcessed++

	word := &entity.Word{
		English:    cell(row, 0),
		Meaning:    cell(row, 1),
		Source:     entity.WordSource(config.DefaultSource),
		Difficulty: entity.DifficultyMedium,
	}
	if pos := cell(row, 2); pos != "" {
		word.PartOfSpeech = entity.ParsePartOfSpeech(pos)
	}
	word.ExampleSentence = cell(row, 3)
	if diff := cell(row, 4); diff != "" {
		word.Difficulty = entity.Difficulty(strings.ToLower(diff))
	}

	_, err := im.words.CollectWord(ctx, config.UserID, word)
	switch {
	case err == nil:
		result.Created++
	case errors.Is(err, entity.ErrDuplicateWord):
		result.Skipped++
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", lineNo, err))
	}
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
