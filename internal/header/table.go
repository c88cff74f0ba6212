package header

// Entry is one header line as the caller supplied it: the original,
// non-canonicalized name and one or more values.
type Entry struct {
	Name   string
	Values []string
}

// Table is an ordered header mapping keyed by the original header name.
// Writing an existing key replaces its values but keeps the position the
// key was first inserted at.
type Table struct {
	entries []Entry
	index   map[string]int
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Set writes name to values, last write wins per distinct original name.
func (t *Table) Set(name string, values []string) {
	if i, ok := t.index[name]; ok {
		t.entries[i].Values = values
		return
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Values: values})
}

// Add appends values to an existing entry, creating it if absent. Used by
// the raw decoder to merge repeated names in first-seen order.
func (t *Table) Add(name string, values ...string) {
	if i, ok := t.index[name]; ok {
		t.entries[i].Values = append(t.entries[i].Values, values...)
		return
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Values: values})
}

func (t *Table) Get(name string) ([]string, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.entries[i].Values, true
}

func (t *Table) Len() int { return len(t.entries) }

// Entries returns the header lines in insertion order. The slice aliases
// the table; callers must not mutate it.
func (t *Table) Entries() []Entry { return t.entries }
