package world

import "sort"

// pendingSet is an ordered set of chunk coordinates awaiting work. It has no
// lock of its own; the Manager's coordination lock guards it.
type pendingSet struct {
	items []ChunkCoord
}

func (s *pendingSet) search(c ChunkCoord) int {
	return sort.Search(len(s.items), func(i int) bool { return !s.items[i].Less(c) })
}

// Add inserts c unless it is already pending.
func (s *pendingSet) Add(c ChunkCoord) bool {
	idx := s.search(c)
	if idx < len(s.items) && s.items[idx] == c {
		return false
	}
	s.items = append(s.items, ChunkCoord{})
	copy(s.items[idx+1:], s.items[idx:])
	s.items[idx] = c
	return true
}

// First returns the lexicographically smallest coordinate.
func (s *pendingSet) First() (ChunkCoord, bool) {
	if len(s.items) == 0 {
		return ChunkCoord{}, false
	}
	return s.items[0], true
}

func (s *pendingSet) Remove(c ChunkCoord) bool {
	idx := s.search(c)
	if idx >= len(s.items) || s.items[idx] != c {
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return true
}

func (s *pendingSet) Contains(c ChunkCoord) bool {
	idx := s.search(c)
	return idx < len(s.items) && s.items[idx] == c
}

func (s *pendingSet) Len() int {
	return len(s.items)
}

func (s *pendingSet) Snapshot() []ChunkCoord {
	return append([]ChunkCoord(nil), s.items...)
}
