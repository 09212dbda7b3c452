package collector

import (
	"sort"
)

// scope is one level of the lexical scope chain built during traversal.
// Symbols map variable names to the byte offset of their declaration.
type scope struct {
	kind    string
	parent  *scope
	symbols map[string]int
}

func newScope(kind string, parent *scope) *scope {
	return &scope{kind: kind, parent: parent, symbols: map[string]int{}}
}

func (s *scope) declare(name string, offset int) {
	if name == "" || name == "_" {
		return
	}
	// first declaration in a scope wins; redeclarations keep the earlier offset
	if _, ok := s.symbols[name]; !ok {
		s.symbols[name] = offset
	}
}

// resolve finds the nearest enclosing declaration of name visible at the
// given offset.
func (s *scope) resolve(name string, offset int) (int, bool) {
	for current := s; current != nil; current = current.parent {
		if declared, ok := current.symbols[name]; ok && declared <= offset {
			return declared, true
		}
	}
	return 0, false
}

// visibleBefore returns the sorted names of all variables declared strictly
// before the given offset anywhere in the scope chain. Inner declarations
// shadow outer ones; a shadowing declaration that has not happened yet does
// not hide the outer variable.
func (s *scope) visibleBefore(offset int) []string {
	seen := map[string]bool{}
	var names []string
	for current := s; current != nil; current = current.parent {
		for name, declared := range current.symbols {
			if seen[name] {
				continue
			}
			if declared < offset {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
