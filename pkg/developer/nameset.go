package developer

import (
	"sort"
	"strings"
)

const nameSeparator = ", "

// NameSet is an unordered set of developer names. It always renders in
// sorted order so the values written to the sheet are deterministic.
type NameSet map[string]struct{}

func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// ParseNameSet splits a comma separated cell into a set, ignoring blanks.
func ParseNameSet(cell string) NameSet {
	s := NameSet{}
	for _, part := range strings.Split(cell, ",") {
		s.Add(part)
	}
	return s
}

func (s NameSet) Add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

func (s NameSet) Remove(name string) {
	delete(s, name)
}

func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s NameSet) Len() int {
	return len(s)
}

func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s NameSet) String() string {
	return strings.Join(s.Sorted(), nameSeparator)
}
