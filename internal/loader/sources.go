package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/godilite/survey-stats/internal/repository"
	dbbuilder "github.com/godilite/survey-stats/pkg/database"
	_ "github.com/mattn/go-sqlite3"
	"github.com/xuri/excelize/v2"
)

// readCSV parses a CSV stream into a header and data rows. Malformed rows are skipped.
func readCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptySource
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func readXLSX(path, sheet string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptySource
	}
	return rows[0], rows[1:], nil
}

func readSQLite(ctx context.Context, path, table string) ([]string, [][]string, error) {
	db, err := dbbuilder.New(ctx,
		dbbuilder.WithDriver("sqlite3"),
		dbbuilder.WithDataSource(path),
		dbbuilder.WithReadOnly(true),
		dbbuilder.WithMaxOpenConns(1),
		dbbuilder.WithRetry(1, 0),
	)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	set, err := repository.NewResponseRepository(db).LoadResponses(ctx, table)
	if err != nil {
		return nil, nil, err
	}
	return set.Columns, set.Rows, nil
}

// LoadCSV reads CSV from r, for callers that already hold the stream.
func (l *Loader) LoadCSV(r io.Reader, source string) (Result, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", source, err)
	}
	tbl, questions, err := l.Build(header, rows)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", source, err)
	}
	return Result{Table: tbl, Questions: questions, Source: source, Format: FormatCSV}, nil
}
