package attrs

// Table is an ordered mapping from attribute name to value cell. Each
// primitive instance exclusively owns its table; insertion order is preserved
// so documentation and iteration stay deterministic, but order never affects
// resolution semantics.
type Table struct {
	order []string
	cells map[string]Value
}

// NewTable constructs an empty table.
func NewTable() *Table {
	return &Table{cells: map[string]Value{}}
}

// Len returns the number of attributes in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Has reports whether name is present.
func (t *Table) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.cells[name]
	return ok
}

// Lookup returns the cell stored for name.
func (t *Table) Lookup(name string) (Value, bool) {
	if t == nil {
		return Value{}, false
	}
	v, ok := t.cells[name]
	return v, ok
}

// Set stores value under name, appending to the iteration order on first
// write and overwriting in place afterwards.
func (t *Table) Set(name string, value Value) {
	if t.cells == nil {
		t.cells = map[string]Value{}
	}
	if _, exists := t.cells[name]; !exists {
		t.order = append(t.order, name)
	}
	t.cells[name] = value
}

// Delete removes name, preserving the relative order of the remaining
// attributes.
func (t *Table) Delete(name string) {
	if t == nil {
		return
	}
	if _, ok := t.cells[name]; !ok {
		return
	}
	delete(t.cells, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Names returns the attribute names in insertion order. The slice is a copy.
func (t *Table) Names() []string {
	if t == nil || len(t.order) == 0 {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Range iterates cells in insertion order until fn returns false.
func (t *Table) Range(fn func(name string, value Value) bool) {
	if t == nil {
		return
	}
	for _, name := range t.order {
		if !fn(name, t.cells[name]) {
			return
		}
	}
}

// Clone returns an independent copy. Cells are value types so a shallow copy
// of the map suffices; boxed payloads are shared, matching the read-only
// contract on recipe defaults.
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable()
	}
	clone := &Table{
		order: make([]string, len(t.order)),
		cells: make(map[string]Value, len(t.cells)),
	}
	copy(clone.order, t.order)
	for name, value := range t.cells {
		clone.cells[name] = value
	}
	return clone
}
