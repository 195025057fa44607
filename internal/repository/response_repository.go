package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/godilite/survey-stats/internal/repository/models"
)

var (
	ErrInvalidTableName = errors.New("invalid table name")
	ErrTableNotFound    = errors.New("table not found")
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ResponseRepository reads survey responses stored one participant per row.
type ResponseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// TableExists reports whether the SQLite schema has a table with this name.
func (r *ResponseRepository) TableExists(ctx context.Context, table string) (bool, error) {
	const query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`

	var n int
	if err := r.db.QueryRowContext(ctx, query, table).Scan(&n); err != nil {
		return false, fmt.Errorf("query TableExists: %w", err)
	}
	return n > 0, nil
}

// LoadResponses selects every row of table, preserving column order.
func (r *ResponseRepository) LoadResponses(ctx context.Context, table string) (models.ResponseSet, error) {
	if !identifier.MatchString(table) {
		return models.ResponseSet{}, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}

	ok, err := r.TableExists(ctx, table)
	if err != nil {
		return models.ResponseSet{}, err
	}
	if !ok {
		return models.ResponseSet{}, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	// table is checked against identifier above.
	query := fmt.Sprintf(`SELECT * FROM "%s" ORDER BY rowid`, table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return models.ResponseSet{}, fmt.Errorf("query LoadResponses: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return models.ResponseSet{}, fmt.Errorf("columns LoadResponses: %w", err)
	}

	set := models.ResponseSet{Table: table, Columns: cols}
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return models.ResponseSet{}, fmt.Errorf("scan LoadResponses row: %w", err)
		}

		line := make([]string, len(cols))
		for i, v := range raw {
			line[i] = cellString(v)
		}
		set.Rows = append(set.Rows, line)
	}

	if err := rows.Err(); err != nil {
		return models.ResponseSet{}, fmt.Errorf("iterate LoadResponses: %w", err)
	}
	return set, nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
