package grid

// Column describes one grid column: the header shown to the user and the
// accessor key used to read and edit the cell.
type Column struct {
	Key    string
	Header string
}

// Accessor reads a cell value for a column key from a row.
type Accessor interface {
	Get(key string) (string, bool)
}

// Cell returns the value of column c in row, or "" when the row has no such key.
func (c Column) Cell(row Accessor) string {
	v, _ := row.Get(c.Key)
	return v
}
