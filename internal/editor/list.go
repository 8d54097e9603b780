// Package editor holds the form surface: scalar fields plus one dynamic list
// editor per variable-length recipe field. Editors own their rows; the
// preview reads collected snapshots and never inspects the form directly.
package editor

import "fmt"

// Item is a handle to one row of a List, returned by Append so the caller can
// populate it immediately.
type Item[T any] struct {
	list        *List[T]
	value       T
	placeholder string
}

// Value returns the row's current value.
func (it *Item[T]) Value() T { return it.value }

// Placeholder returns the row's label hint, e.g. "Schritt 3".
func (it *Item[T]) Placeholder() string { return it.placeholder }

// Set replaces the row's value and notifies the list's change listener.
func (it *Item[T]) Set(v T) {
	it.value = v
	it.list.changed()
}

// List is an append-only ordered collection of editable rows. Blank rows are
// allowed while editing and dropped by Collect.
type List[T any] struct {
	label    string
	blank    func(T) bool
	initial  func() T
	items    []*Item[T]
	count    int
	onChange func()
}

// NewList creates an empty list. label prefixes placeholder hints; blank decides
// which rows Collect drops; initial produces the value of a freshly appended row
// (nil means the zero value).
func NewList[T any](label string, blank func(T) bool, initial func() T) *List[T] {
	return &List[T]{label: label, blank: blank, initial: initial}
}

// Append adds one empty row at the end and returns its handle. The placeholder
// counter only ever grows until Clear.
func (l *List[T]) Append() *Item[T] {
	l.count++
	it := &Item[T]{
		list:        l,
		placeholder: fmt.Sprintf("%s %d", l.label, l.count),
	}
	if l.initial != nil {
		it.value = l.initial()
	}
	l.items = append(l.items, it)
	return it
}

// Collect returns the non-blank values in display order.
func (l *List[T]) Collect() []T {
	out := make([]T, 0, len(l.items))
	for _, it := range l.items {
		if l.blank != nil && l.blank(it.value) {
			continue
		}
		out = append(out, it.value)
	}
	return out
}

// Clear removes every row and resets the placeholder counter.
func (l *List[T]) Clear() {
	l.items = nil
	l.count = 0
}

// Len returns the number of rows, blank ones included.
func (l *List[T]) Len() int { return len(l.items) }

// Items returns the row handles in display order.
func (l *List[T]) Items() []*Item[T] {
	out := make([]*Item[T], len(l.items))
	copy(out, l.items)
	return out
}

// Counter returns how many rows were appended since the last Clear.
func (l *List[T]) Counter() int { return l.count }

func (l *List[T]) changed() {
	if l.onChange != nil {
		l.onChange()
	}
}
