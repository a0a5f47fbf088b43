package lang

import (
	"iter"
	"slices"
)

// Store maps variable names to values and remembers the order in which each
// name was first set. The zero value is empty and ready to use; a nil *Store
// is empty and read-only.
type Store struct {
	vals  map[string]float64
	order []string
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Get returns the value of name.
func (s *Store) Get(name string) (float64, bool) {
	if s == nil {
		return 0, false
	}

	v, ok := s.vals[name]

	return v, ok
}

// Set stores v under name, overwriting any previous value.
func (s *Store) Set(name string, v float64) {
	if s.vals == nil {
		s.vals = make(map[string]float64)
	}

	if _, ok := s.vals[name]; !ok {
		s.order = append(s.order, name)
	}

	s.vals[name] = v
}

// Len returns the number of stored variables.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}

	return len(s.order)
}

// Names returns variable names in first-insertion order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}

	return slices.Clone(s.order)
}

// All iterates over variables in first-insertion order.
func (s *Store) All() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		if s == nil {
			return
		}

		for _, name := range s.order {
			if !yield(name, s.vals[name]) {
				return
			}
		}
	}
}

// Unknown is a variable whose final value is reported.
type Unknown struct {
	Name  string
	Label string
}

// Unknowns is an ordered registry of [Unknown] declarations. The zero value
// is empty and ready to use.
type Unknowns struct {
	list  []Unknown
	index map[string]int
}

// Declare registers name with label. Declaring a name again replaces its
// label and keeps its original position.
func (u *Unknowns) Declare(name, label string) {
	if i, ok := u.index[name]; ok {
		u.list[i].Label = label

		return
	}

	if u.index == nil {
		u.index = make(map[string]int)
	}

	u.index[name] = len(u.list)
	u.list = append(u.list, Unknown{Name: name, Label: label})
}

// Label returns the label of name and whether name is declared.
func (u *Unknowns) Label(name string) (string, bool) {
	if u == nil {
		return "", false
	}

	i, ok := u.index[name]
	if !ok {
		return "", false
	}

	return u.list[i].Label, true
}

// Len returns the number of declared unknowns.
func (u *Unknowns) Len() int {
	if u == nil {
		return 0
	}

	return len(u.list)
}

// All iterates over unknowns in declaration order.
func (u *Unknowns) All() iter.Seq[Unknown] {
	return func(yield func(Unknown) bool) {
		if u == nil {
			return
		}

		for _, k := range u.list {
			if !yield(k) {
				return
			}
		}
	}
}
