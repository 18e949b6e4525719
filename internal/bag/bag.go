// Package bag holds a resident's staged items before they are published as
// one aggregate offer. The bag sits outside the offer lifecycle; it only
// feeds summed weight and value into offer creation.
package bag

import "ecocash/internal/model"

// List is not safe for concurrent use on its own; the ledger guards every
// bag behind its own lock.
type List struct {
	items []model.BagItem
}

func (l *List) Add(item model.BagItem) {
	l.items = append(l.items, item)
}

// Items returns a copy so callers cannot mutate the staged entries.
func (l *List) Items() []model.BagItem {
	out := make([]model.BagItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List) Len() int {
	return len(l.items)
}

func (l *List) Clear() {
	l.items = nil
}

// Totals sums the staged weights and values.
func (l *List) Totals() (weightKg float64, value int64) {
	for _, item := range l.items {
		weightKg += item.Weight
		value += item.Value
	}
	return weightKg, value
}
