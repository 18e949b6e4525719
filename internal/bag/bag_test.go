package bag

import (
	"testing"

	"ecocash/internal/model"
)

func TestList(t *testing.T) {
	t.Run("totals sum weight and value", func(t *testing.T) {
		var l List
		l.Add(model.BagItem{Description: "garrafas PET", Weight: 2.0, Value: 560})
		l.Add(model.BagItem{Description: "latas", Weight: 1.5, Value: 420})

		weight, value := l.Totals()
		if weight != 3.5 || value != 980 {
			t.Errorf("expected totals 3.5/980, got %v/%d", weight, value)
		}
		if l.Len() != 2 {
			t.Errorf("expected 2 items, got %d", l.Len())
		}
	})

	t.Run("items returns a copy", func(t *testing.T) {
		var l List
		l.Add(model.BagItem{Description: "vidro", Weight: 1.0, Value: 280})

		items := l.Items()
		items[0].Value = 0

		if got := l.Items()[0].Value; got != 280 {
			t.Errorf("mutating the returned slice changed the staged item: %d", got)
		}
	})

	t.Run("clear empties the list", func(t *testing.T) {
		var l List
		l.Add(model.BagItem{Description: "vidro", Weight: 1.0, Value: 280})
		l.Clear()

		if l.Len() != 0 {
			t.Errorf("expected empty list, got %d items", l.Len())
		}
		weight, value := l.Totals()
		if weight != 0 || value != 0 {
			t.Errorf("expected zero totals, got %v/%d", weight, value)
		}
	})
}
