package webscraper

// Table is a sequence of mappings flattened into rows.
type Table struct {
	Key    string
	Header []string
	Rows   [][]string
}

// IsTableCandidate reports whether v is a non-empty sequence whose
// elements are all mappings.
func IsTableCandidate(v Value) bool {
	if v.Kind() != KindList || len(v.Items()) == 0 {
		return false
	}
	for _, item := range v.Items() {
		if item.Kind() != KindMap {
			return false
		}
	}
	return true
}

// NewTable flattens items into a table. The header is the key order of
// the first element; an element missing a header key yields "" in that
// column and keys absent from the first element are ignored.
func NewTable(key string, items []Value) *Table {
	t := &Table{Key: key}
	if len(items) == 0 {
		return t
	}
	t.Header = items[0].Keys()
	t.Rows = make([][]string, 0, len(items))
	for _, item := range items {
		row := make([]string, len(t.Header))
		for i, h := range t.Header {
			if v, ok := item.Get(h); ok {
				row[i] = v.String()
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FindTable returns the first table candidate among the values of the
// mapping data, or nil if there is none.
func FindTable(data Value) *Table {
	if data.Kind() != KindMap {
		return nil
	}
	for _, f := range data.Fields() {
		if IsTableCandidate(f.Value) {
			return NewTable(f.Key, f.Value.Items())
		}
	}
	return nil
}
