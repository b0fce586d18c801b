// Package order linearizes items so that each follows its dependencies.
package order

import (
	"fmt"
	"strings"
)

// Sequence returns every item of items exactly once, ordered so that each
// item follows the items deps reports for it.
//
// Items are visited depth-first in input order and marked before their
// dependencies are explored. An edge back to an item whose expansion is
// still in progress is dropped, so cycles terminate without error and the
// item closing the cycle is placed before the item it depends on.
// Independent items keep their relative input order.
//
// Dependencies not present in items are included in the result at the
// point they are first reached. deps may return nil.
func Sequence[T comparable](items []T, deps func(T) []T) []T {
	s := sequencer[T]{
		deps:    deps,
		entered: make(map[T]bool, len(items)),
		out:     make([]T, 0, len(items)),
	}

	for _, item := range items {
		s.visit(item)
	}

	return s.out
}

type sequencer[T comparable] struct {
	deps    func(T) []T
	entered map[T]bool
	out     []T
}

func (s *sequencer[T]) visit(item T) {
	if s.entered[item] {
		return
	}

	s.entered[item] = true

	for _, dep := range s.deps(item) {
		s.visit(dep)
	}

	s.out = append(s.out, item)
}

// CycleError reports a dependency cycle found by [Strict].
type CycleError[T comparable] struct {
	// Cycle lists the items of the cycle in dependency order, beginning and
	// ending with the same item.
	Cycle []T
}

func (e *CycleError[T]) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, item := range e.Cycle {
		parts[i] = fmt.Sprint(item)
	}

	return "dependency cycle: " + strings.Join(parts, " -> ")
}

// Strict is [Sequence] for inputs that must be acyclic. It returns the same
// order as Sequence when there is no cycle, and a [*CycleError] describing
// the first cycle reached otherwise.
func Strict[T comparable](items []T, deps func(T) []T) ([]T, error) {
	s := strict[T]{
		deps:  deps,
		state: make(map[T]visitState, len(items)),
		out:   make([]T, 0, len(items)),
	}

	for _, item := range items {
		if err := s.visit(item); err != nil {
			return nil, err
		}
	}

	return s.out, nil
}

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

type strict[T comparable] struct {
	deps  func(T) []T
	state map[T]visitState
	path  []T
	out   []T
}

func (s *strict[T]) visit(item T) error {
	switch s.state[item] {
	case done:
		return nil

	case inProgress:
		start := len(s.path) - 1
		for start > 0 && s.path[start] != item {
			start--
		}

		cycle := append([]T(nil), s.path[start:]...)

		return &CycleError[T]{Cycle: append(cycle, item)}

	case unvisited:
	}

	s.state[item] = inProgress
	s.path = append(s.path, item)

	for _, dep := range s.deps(item) {
		if err := s.visit(dep); err != nil {
			return err
		}
	}

	s.path = s.path[:len(s.path)-1]
	s.state[item] = done
	s.out = append(s.out, item)

	return nil
}
