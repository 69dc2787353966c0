// Package defines implements the pioasm symbol table: an ordered sequence
// of (name, value?, public) entries shared by labels and .define
// constants, with two-phase declare/assign semantics for forward
// references.
package defines

import "github.com/dcrockford/pioasm/pioasmerr"

// Entry is one row of a Table, exposed in insertion order by Entries.
// Value is nil for a declared-but-unassigned forward reference.
type Entry struct {
	Name   string
	Value  *int32
	Public bool
}

// Table is an ordered symbol table. Names are unique within a table;
// iteration order equals insertion order, which callers (the printer, the
// assembler facade's output tuple) rely on. Entries are kept in an
// insertion-ordered slice; lookups by name go through a name-to-index map.
type Table struct {
	entries []Entry
	index   map[string]int
}

// New returns an empty Table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Contains reports whether name has an entry, assigned or not.
func (t *Table) Contains(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the table's entries in insertion order. The slice is a
// copy; callers must not rely on aliasing.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Define adds a fully-assigned entry in one step. Fails with AlreadyDefined
// if name is already present, declared or not.
func (t *Table) Define(name string, value int32, public bool) *pioasmerr.Error {
	if t.Contains(name) {
		return pioasmerr.NewNoPos(pioasmerr.AlreadyDefined, "%q already defined", name)
	}
	v := value
	t.append(Entry{Name: name, Value: &v, Public: public})
	return nil
}

// Declare adds an unassigned entry (value = ⊥) that a later Assign gives
// its value; the assembler facade declares and assigns each label at the
// point it is placed. Fails with AlreadyDefined if name is already present.
func (t *Table) Declare(name string, public bool) *pioasmerr.Error {
	if t.Contains(name) {
		return pioasmerr.NewNoPos(pioasmerr.AlreadyDefined, "%q already defined", name)
	}
	t.append(Entry{Name: name, Public: public})
	return nil
}

// Assign sets the value of a previously-declared entry. A value may
// transition ⊥ -> v exactly once: Assign fails with NotDeclared if name is
// absent, or AlreadyAssigned if it already carries a value.
func (t *Table) Assign(name string, value int32) *pioasmerr.Error {
	i, ok := t.index[name]
	if !ok {
		return pioasmerr.NewNoPos(pioasmerr.NotDeclared, "%q not declared", name)
	}
	if t.entries[i].Value != nil {
		return pioasmerr.NewNoPos(pioasmerr.AlreadyAssigned, "%q already assigned", name)
	}
	v := value
	t.entries[i].Value = &v
	return nil
}

// Resolve returns the value of name. Fails with NotDefined if name is
// absent, or ValueNotAssigned if it is declared but still ⊥.
func (t *Table) Resolve(name string) (int32, *pioasmerr.Error) {
	i, ok := t.index[name]
	if !ok {
		return 0, pioasmerr.NewNoPos(pioasmerr.NotDefined, "%q not defined", name)
	}
	if t.entries[i].Value == nil {
		return 0, pioasmerr.NewNoPos(pioasmerr.ValueNotAssigned, "%q has no assigned value", name)
	}
	return *t.entries[i].Value, nil
}

// Copy returns a new Table containing either all entries or, if
// publicOnly, only those marked public. It fails if any entry that would
// be kept is still unassigned, since the copy is meant to seed a fresh
// scope where every surviving name must already resolve.
func (t *Table) Copy(publicOnly bool) (*Table, *pioasmerr.Error) {
	c := New()
	for _, e := range t.entries {
		if publicOnly && !e.Public {
			continue
		}
		if e.Value == nil {
			return nil, pioasmerr.NewNoPos(pioasmerr.ValueNotAssigned, "%q has no assigned value", e.Name)
		}
		v := *e.Value
		c.append(Entry{Name: e.Name, Value: &v, Public: e.Public})
	}
	return c, nil
}

func (t *Table) append(e Entry) {
	t.index[e.Name] = len(t.entries)
	t.entries = append(t.entries, e)
}
