package survey

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var ErrUnknownQuestion = errors.New("unknown question")

// Table is an immutable participants x questions matrix of raw cell values.
// An empty string marks an absent cell.
type Table struct {
	questions []string
	index     map[string]int
	rows      [][]string
}

// NewTable copies rows into a Table. Short rows are padded with absent cells
// and values beyond the last question are dropped.
func NewTable(questions []string, rows [][]string) Table {
	qs := append([]string(nil), questions...)
	idx := make(map[string]int, len(qs))
	for i, q := range qs {
		idx[q] = i
	}

	cp := make([][]string, len(rows))
	for r, row := range rows {
		line := make([]string, len(qs))
		for c := range qs {
			if c < len(row) {
				line[c] = cleanCell(row[c])
			}
		}
		cp[r] = line
	}
	return Table{questions: qs, index: idx, rows: cp}
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "nan", "<na>", "null", "none":
		return ""
	}
	return v
}

// Questions returns the question ids in declaration order.
func (t Table) Questions() []string {
	return append([]string(nil), t.questions...)
}

// Participants is the number of rows.
func (t Table) Participants() int { return len(t.rows) }

// TotalCells is participants x questions, absent cells included.
func (t Table) TotalCells() int { return len(t.rows) * len(t.questions) }

// Cell returns the raw value at row r for question q.
func (t Table) Cell(r int, q string) (string, bool) {
	c, ok := t.index[q]
	if !ok || r < 0 || r >= len(t.rows) {
		return "", false
	}
	return t.rows[r][c], true
}

// Column returns a copy of a question's cells.
func (t Table) Column(q string) ([]string, error) {
	c, ok := t.index[q]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, q)
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[c]
	}
	return out, nil
}

// Select projects the table onto a subset of questions, in the order given.
func (t Table) Select(questions ...string) (Table, error) {
	cols := make([]int, len(questions))
	for i, q := range questions {
		c, ok := t.index[q]
		if !ok {
			return Table{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, q)
		}
		cols[i] = c
	}
	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		line := make([]string, len(cols))
		for i, c := range cols {
			line[i] = row[c]
		}
		rows[r] = line
	}
	return NewTable(questions, rows), nil
}

// Fingerprint is a stable hash of the question ids and every cell.
func (t Table) Fingerprint() string {
	h := sha256.New()
	for _, q := range t.questions {
		h.Write([]byte(q))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})
	for _, row := range t.rows {
		for _, v := range row {
			h.Write([]byte(v))
			h.Write([]byte{0})
		}
		h.Write([]byte{1})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// QuestionNumber extracts the numeric suffix of an id like "Q12".
func QuestionNumber(id string) (int, bool) {
	i := strings.IndexFunc(id, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SortQuestions orders ids by numeric suffix; ids without one keep their
// relative order after the numbered ones.
func SortQuestions(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, okA := QuestionNumber(ids[i])
		b, okB := QuestionNumber(ids[j])
		if !okA {
			a = math.MaxInt
		}
		if !okB {
			b = math.MaxInt
		}
		return a < b
	})
}
