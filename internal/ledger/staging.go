package ledger

import (
	"fmt"
	"math"
	"strings"

	"ecocash/internal/bag"
	"ecocash/internal/model"
	"ecocash/internal/valuation"
)

// StageBagItem adds one item to the resident's pre-offer bag. The item is
// priced at the flat buy-back rate for the weight the resident entered.
func (s *Service) StageBagItem(residentID, description string, weightKg float64) (model.BagItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resident, err := s.userWithRole(residentID, model.RoleResident)
	if err != nil {
		return model.BagItem{}, err
	}
	desc := strings.TrimSpace(description)
	if desc == "" {
		return model.BagItem{}, fmt.Errorf("%w: describe the item before adding it", ErrValidation)
	}
	if weightKg <= 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return model.BagItem{}, fmt.Errorf("%w: enter the item weight", ErrValidation)
	}

	item := model.BagItem{
		Description: desc,
		Weight:      weightKg,
		Value:       valuation.ValueFor(weightKg),
	}
	staged := s.bags[resident.ID]
	if staged == nil {
		staged = &bag.List{}
		s.bags[resident.ID] = staged
	}
	staged.Add(item)
	return item, nil
}

// BagItems returns the resident's staged items, newest last.
func (s *Service) BagItems(residentID string) ([]model.BagItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resident, err := s.userWithRole(residentID, model.RoleResident)
	if err != nil {
		return nil, err
	}
	staged := s.bags[resident.ID]
	if staged == nil {
		return []model.BagItem{}, nil
	}
	return staged.Items(), nil
}

// ClearBag discards every staged item without publishing an offer.
func (s *Service) ClearBag(residentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resident, err := s.userWithRole(residentID, model.RoleResident)
	if err != nil {
		return err
	}
	if staged := s.bags[resident.ID]; staged != nil {
		staged.Clear()
	}
	return nil
}

func joinDescriptions(items []model.BagItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.Description
	}
	return strings.Join(parts, ", ")
}
