package runtime

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// Entry is a key/value pair of a Dict or Map.
type Entry struct {
	Key   Value
	Value Value
}

// orderedTable keeps entries in insertion order, indexed by canonical hash key.
type orderedTable struct {
	entries *linkedhashmap.Map
}

func newOrderedTable() orderedTable {
	return orderedTable{entries: linkedhashmap.New()}
}

func (t orderedTable) put(key, value Value) error {
	hk, err := HashKey(key)
	if err != nil {
		return err
	}
	if existing, found := t.entries.Get(hk); found {
		existing.(*Entry).Value = value
		return nil
	}
	t.entries.Put(hk, &Entry{Key: key, Value: value})
	return nil
}

func (t orderedTable) get(key Value) (Value, bool, error) {
	hk, err := HashKey(key)
	if err != nil {
		return nil, false, err
	}
	raw, found := t.entries.Get(hk)
	if !found {
		return nil, false, nil
	}
	return raw.(*Entry).Value, true, nil
}

func (t orderedTable) remove(key Value) (bool, error) {
	hk, err := HashKey(key)
	if err != nil {
		return false, err
	}
	if _, found := t.entries.Get(hk); !found {
		return false, nil
	}
	t.entries.Remove(hk)
	return true, nil
}

func (t orderedTable) list() []Entry {
	out := make([]Entry, 0, t.entries.Size())
	it := t.entries.Iterator()
	for it.Next() {
		out = append(out, *it.Value().(*Entry))
	}
	return out
}

func (t orderedTable) keys() []Value {
	out := make([]Value, 0, t.entries.Size())
	it := t.entries.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*Entry).Key)
	}
	return out
}

func (t orderedTable) values() []Value {
	out := make([]Value, 0, t.entries.Size())
	it := t.entries.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*Entry).Value)
	}
	return out
}

//-----------------------------------------------------------------------------
// Dict
//-----------------------------------------------------------------------------

// DictValue is an insertion-ordered dictionary keyed by hashable values.
type DictValue struct {
	table orderedTable
}

func NewDict() *DictValue {
	return &DictValue{table: newOrderedTable()}
}

func (v *DictValue) Kind() Kind { return KindDict }

func (v *DictValue) Set(key, value Value) error { return v.table.put(key, value) }

func (v *DictValue) Get(key Value) (Value, bool, error) { return v.table.get(key) }

func (v *DictValue) Delete(key Value) (bool, error) { return v.table.remove(key) }

func (v *DictValue) Len() int { return v.table.entries.Size() }

func (v *DictValue) Entries() []Entry { return v.table.list() }

func (v *DictValue) Keys() []Value { return v.table.keys() }

func (v *DictValue) Values() []Value { return v.table.values() }

//-----------------------------------------------------------------------------
// Map
//-----------------------------------------------------------------------------

// MapValue is the explicit get/set/has/delete associative container.
type MapValue struct {
	table orderedTable
}

func NewMap() *MapValue {
	return &MapValue{table: newOrderedTable()}
}

func (v *MapValue) Kind() Kind { return KindMap }

func (v *MapValue) Set(key, value Value) error { return v.table.put(key, value) }

func (v *MapValue) Get(key Value) (Value, bool, error) { return v.table.get(key) }

func (v *MapValue) Delete(key Value) (bool, error) { return v.table.remove(key) }

func (v *MapValue) Len() int { return v.table.entries.Size() }

func (v *MapValue) Entries() []Entry { return v.table.list() }

func (v *MapValue) Keys() []Value { return v.table.keys() }

func (v *MapValue) Values() []Value { return v.table.values() }

//-----------------------------------------------------------------------------
// Set
//-----------------------------------------------------------------------------

// SetValue holds unique values and iterates in insertion order.
type SetValue struct {
	keys    *linkedhashset.Set
	members map[string]Value
}

func NewSet() *SetValue {
	return &SetValue{keys: linkedhashset.New(), members: make(map[string]Value)}
}

func (v *SetValue) Kind() Kind { return KindSet }

// Add inserts value; it reports false when the value was already present.
func (v *SetValue) Add(value Value) (bool, error) {
	hk, err := HashKey(value)
	if err != nil {
		return false, err
	}
	if v.keys.Contains(hk) {
		return false, nil
	}
	v.keys.Add(hk)
	v.members[hk] = value
	return true, nil
}

func (v *SetValue) Has(value Value) (bool, error) {
	hk, err := HashKey(value)
	if err != nil {
		return false, err
	}
	return v.keys.Contains(hk), nil
}

func (v *SetValue) Remove(value Value) (bool, error) {
	hk, err := HashKey(value)
	if err != nil {
		return false, err
	}
	if !v.keys.Contains(hk) {
		return false, nil
	}
	v.keys.Remove(hk)
	delete(v.members, hk)
	return true, nil
}

func (v *SetValue) Len() int { return v.keys.Size() }

// Elements returns members in insertion order.
func (v *SetValue) Elements() []Value {
	out := make([]Value, 0, v.keys.Size())
	for _, raw := range v.keys.Values() {
		out = append(out, v.members[raw.(string)])
	}
	return out
}
