package registry

import "github.com/wippyai/opaque/proj"

// store is the slot array behind a Table.
type store struct {
	entries  []entry
	freeList []Handle
}

type entry struct {
	value proj.Erased
	valid bool
}

func newStore() store {
	return store{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

func (s *store) create(value proj.Erased) Handle {
	e := entry{value: value, valid: true}

	if len(s.freeList) > 0 {
		handle := s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		s.entries[handle-1] = e
		return handle
	}

	s.entries = append(s.entries, e)
	return Handle(len(s.entries))
}

func (s *store) lookup(handle Handle) *entry {
	if handle == 0 || int(handle-1) >= len(s.entries) {
		return nil
	}
	e := &s.entries[handle-1]
	if !e.valid {
		return nil
	}
	return e
}

func (s *store) drop(handle Handle) (proj.Erased, bool) {
	e := s.lookup(handle)
	if e == nil {
		return proj.Erased{}, false
	}
	value := e.value
	*e = entry{}
	s.freeList = append(s.freeList, handle)
	return value, true
}

func (s *store) each(fn func(Handle, proj.Erased) bool) {
	for i := range s.entries {
		if s.entries[i].valid && !fn(Handle(i+1), s.entries[i].value) {
			return
		}
	}
}

func (s *store) len() int {
	return len(s.entries) - len(s.freeList)
}
