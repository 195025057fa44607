package models

// ResponseSet is the raw content of a responses table: every column name in
// table order and one string per cell. NULL cells are empty strings.
type ResponseSet struct {
	Table   string
	Columns []string
	Rows    [][]string
}
