package store

// RecordStore is a durable (community, member) -> record map. Communities are
// independent partitions; a community without members is removed.
type RecordStore[V any] struct {
	doc *Document[*OrderedMap[*OrderedMap[V]]]
}

// NewRecordStore opens the named record store on backend
func NewRecordStore[V any](name string, backend Backend) *RecordStore[V] {
	return &RecordStore[V]{
		doc: OpenDocument(name, backend, NewOrderedMap[*OrderedMap[V]]),
	}
}

// Get returns the record of member in community
func (s *RecordStore[V]) Get(community, member string) (V, bool) {
	var (
		value V
		ok    bool
	)
	s.doc.Read(func(root *OrderedMap[*OrderedMap[V]]) {
		if part, found := root.Get(community); found {
			value, ok = part.Get(member)
		}
	})
	return value, ok
}

// Put stores the record, creating the community partition lazily
func (s *RecordStore[V]) Put(community, member string, value V) error {
	return s.Modify(community, member, func(V, bool) (V, bool, error) {
		return value, true, nil
	})
}

// Remove deletes the record and reports the removed value
func (s *RecordStore[V]) Remove(community, member string) (V, bool, error) {
	var (
		removed V
		existed bool
	)
	err := s.Modify(community, member, func(cur V, ok bool) (V, bool, error) {
		removed, existed = cur, ok
		return cur, false, nil
	})
	return removed, existed, err
}

// Modify runs fn on the current record inside one locked load-modify-save
// cycle. fn returns the next record and whether to keep it; keep=false
// deletes the member and prunes an emptied community. An error from fn
// aborts the cycle without saving.
func (s *RecordStore[V]) Modify(community, member string, fn func(cur V, ok bool) (V, bool, error)) error {
	return s.doc.Update(func(root *OrderedMap[*OrderedMap[V]]) error {
		part, found := root.Get(community)
		var (
			cur V
			ok  bool
		)
		if found {
			cur, ok = part.Get(member)
		}

		next, keep, err := fn(cur, ok)
		if err != nil {
			return err
		}

		if keep {
			if !found {
				part = NewOrderedMap[V]()
				root.Set(community, part)
			}
			part.Set(member, next)
			return nil
		}

		if found {
			part.Delete(member)
			if part.Len() == 0 {
				root.Delete(community)
			}
		}
		return nil
	})
}

// Partition returns the records of community in first-seen order
func (s *RecordStore[V]) Partition(community string) []Entry[V] {
	var out []Entry[V]
	s.doc.Read(func(root *OrderedMap[*OrderedMap[V]]) {
		if part, ok := root.Get(community); ok {
			out = part.Entries()
		}
	})
	return out
}

// Communities returns the community keys in first-seen order
func (s *RecordStore[V]) Communities() []string {
	var out []string
	s.doc.Read(func(root *OrderedMap[*OrderedMap[V]]) {
		out = root.Keys()
	})
	return out
}

// Snapshot returns the full encoded mapping
func (s *RecordStore[V]) Snapshot() ([]byte, error) {
	return s.doc.Snapshot()
}
