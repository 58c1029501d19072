package entities

// FeatureMatrix is a dense numeric matrix with named columns, the shape the
// model server consumes. Rows correspond 1:1 to candidates in input order.
type FeatureMatrix struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// NewFeatureMatrix allocates a matrix with the given columns and row capacity
func NewFeatureMatrix(columns []string, rowCount int) *FeatureMatrix {
	rows := make([][]float64, rowCount)
	for i := range rows {
		rows[i] = make([]float64, len(columns))
	}
	return &FeatureMatrix{Columns: columns, Rows: rows}
}

// ColumnIndex returns the position of a named column and whether it exists
func (m *FeatureMatrix) ColumnIndex(name string) (int, bool) {
	for i, c := range m.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// RowCount returns the number of rows
func (m *FeatureMatrix) RowCount() int {
	return len(m.Rows)
}

// Reindex projects the matrix onto schema, the exact ordered column set the
// model was trained with. Schema columns missing from this matrix are filled
// with zero; matrix columns absent from the schema are dropped. This keeps
// one-hot indicator columns stable between batches regardless of which
// categorical levels a particular batch happens to contain. Reindexing an
// already-aligned matrix returns an equal matrix.
func (m *FeatureMatrix) Reindex(schema []string) *FeatureMatrix {
	srcIdx := make([]int, len(schema))
	for i, name := range schema {
		if idx, ok := m.ColumnIndex(name); ok {
			srcIdx[i] = idx
		} else {
			srcIdx[i] = -1
		}
	}

	out := NewFeatureMatrix(append([]string(nil), schema...), len(m.Rows))
	for r, row := range m.Rows {
		for c, src := range srcIdx {
			if src >= 0 {
				out.Rows[r][c] = row[src]
			}
		}
	}
	return out
}
