// Package loader reads survey response files into an immutable survey.Table.
//
// CSV, XLSX and SQLite sources are supported. Question columns are either
// given explicitly, in which case each must be present, or discovered from
// headers of the form Q<n>. A source without any question column is an error.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/godilite/survey-stats/internal/survey"
	"go.uber.org/zap"
)

var (
	ErrNoQuestionColumns = errors.New("no question columns found")
	ErrMissingQuestion   = errors.New("question column missing")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptySource       = errors.New("source has no header row")
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

const DefaultTable = "responses"

var questionHeader = regexp.MustCompile(`^[Qq][0-9]+$`)

type Options struct {
	Questions []string
	Sheet     string
	Table     string
}

type Option func(*Options)

// WithQuestions pins the question columns instead of discovering them.
func WithQuestions(ids ...string) Option {
	return func(o *Options) {
		o.Questions = nil
		for _, id := range ids {
			if id = strings.TrimSpace(id); id != "" {
				o.Questions = append(o.Questions, id)
			}
		}
	}
}

// WithSheet selects the XLSX worksheet; the first sheet is used otherwise.
func WithSheet(name string) Option {
	return func(o *Options) { o.Sheet = name }
}

// WithTable selects the SQLite table holding the responses.
func WithTable(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.Table = name
		}
	}
}

// Result is a loaded table plus where it came from.
type Result struct {
	Table     survey.Table
	Questions []string
	Source    string
	Format    Format
}

type Loader struct {
	opts   Options
	logger *zap.Logger
}

func New(logger *zap.Logger, opts ...Option) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	options := Options{Table: DefaultTable}
	for _, opt := range opts {
		opt(&options)
	}
	return &Loader{opts: options, logger: logger.Named("loader")}
}

// DetectFormat picks a reader from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads path into a Table.
func (l *Loader) Load(ctx context.Context, path string) (Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Result{}, err
	}
	if _, err := os.Stat(path); err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}

	var header []string
	var rows [][]string
	switch format {
	case FormatCSV:
		f, err := os.Open(path)
		if err != nil {
			return Result{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		header, rows, err = readCSV(f)
		if err != nil {
			return Result{}, fmt.Errorf("read %s: %w", path, err)
		}
	case FormatXLSX:
		header, rows, err = readXLSX(path, l.opts.Sheet)
		if err != nil {
			return Result{}, fmt.Errorf("read %s: %w", path, err)
		}
	case FormatSQLite:
		header, rows, err = readSQLite(ctx, path, l.opts.Table)
		if err != nil {
			return Result{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	tbl, questions, err := l.Build(header, rows)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", path, err)
	}

	l.logger.Info("survey table loaded",
		zap.String("source", path),
		zap.String("format", string(format)),
		zap.Int("participants", tbl.Participants()),
		zap.Int("questions", len(questions)))

	return Result{Table: tbl, Questions: questions, Source: path, Format: format}, nil
}

// Build selects the question columns of a header/rows pair and returns the table.
func (l *Loader) Build(header []string, rows [][]string) (survey.Table, []string, error) {
	if len(header) == 0 {
		return survey.Table{}, nil, ErrEmptySource
	}

	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := positions[h]; !dup {
			positions[h] = i
		}
	}

	var questions []string
	if len(l.opts.Questions) > 0 {
		for _, q := range l.opts.Questions {
			if _, ok := positions[q]; !ok {
				return survey.Table{}, nil, fmt.Errorf("%w: %s", ErrMissingQuestion, q)
			}
			if !contains(questions, q) {
				questions = append(questions, q)
			}
		}
	} else {
		for _, h := range header {
			h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
			if questionHeader.MatchString(h) && !contains(questions, h) {
				questions = append(questions, h)
			}
		}
	}
	if len(questions) == 0 {
		return survey.Table{}, nil, ErrNoQuestionColumns
	}

	matrix := make([][]string, 0, len(rows))
	for _, row := range rows {
		if blank(row) {
			continue
		}
		line := make([]string, len(questions))
		for i, q := range questions {
			if p := positions[q]; p < len(row) {
				line[i] = row[p]
			}
		}
		matrix = append(matrix, line)
	}

	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = strings.ToUpper(q)
	}
	return survey.NewTable(ids, matrix), ids, nil
}

// contains compares case-insensitively since ids are upper-cased afterwards.
func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
