package ledger

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"ecocash/internal/events"
	"ecocash/internal/model"
	"ecocash/internal/valuation"
)

// Liquidation split: 70% of the offer value to the resident, the remainder
// to the collector.
const residentSharePercent = 70

// CreateOffer publishes a new offer for a resident. The weight and value are
// estimated from the description; the implied price per kilogram is kept
// when the measured weight later rescales the value.
func (s *Service) CreateOffer(residentID, description string) (model.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resident, err := s.userWithRole(residentID, model.RoleResident)
	if err != nil {
		return model.Offer{}, err
	}

	desc := strings.TrimSpace(description)
	if desc == "" {
		return model.Offer{}, fmt.Errorf("%w: describe the material before publishing", ErrValidation)
	}

	est := valuation.EstimateWeightAndValue(desc)
	return s.insertOffer(resident.ID, desc, est.Weight, est.Value), nil
}

// CreateOfferFromBag publishes one aggregate offer from the resident's
// staged items and empties the bag. An empty bag is a validation error.
func (s *Service) CreateOfferFromBag(residentID string) (model.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resident, err := s.userWithRole(residentID, model.RoleResident)
	if err != nil {
		return model.Offer{}, err
	}

	staged := s.bags[resident.ID]
	if staged == nil || staged.Len() == 0 {
		return model.Offer{}, fmt.Errorf("%w: the bag is empty", ErrValidation)
	}

	weight, value := staged.Totals()
	desc := joinDescriptions(staged.Items())
	offer := s.insertOffer(resident.ID, desc, weight, value)
	staged.Clear()
	return offer, nil
}

// insertOffer builds the offer and prepends it: newest first is an
// observable ordering contract. Callers must hold the lock.
func (s *Service) insertOffer(residentID, description string, weightKg float64, value int64) model.Offer {
	offer := &model.Offer{
		ID:              s.nextOfferID(),
		ResidentID:      residentID,
		Description:     description,
		EstimatedWeight: weightKg,
		Value:           value,
		Status:          model.StatusPending,
		CreatedAt:       time.Now(),
	}
	s.offers = append([]*model.Offer{offer}, s.offers...)
	s.byID[offer.ID] = offer

	s.logg.Info("offer created", "offer", offer.ID, "resident", residentID, "value", value)
	s.emit(events.KindCreated, *offer, nil)
	return *offer
}

// AcceptOffer assigns a pending offer to a collector.
func (s *Service) AcceptOffer(offerID, collectorID string) (model.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.offer(offerID)
	if err != nil {
		return model.Offer{}, err
	}
	collector, err := s.userWithRole(collectorID, model.RoleCollector)
	if err != nil {
		return model.Offer{}, err
	}
	if offer.Status != model.StatusPending {
		return model.Offer{}, fmt.Errorf("%w: offer %s is %s, accept requires %s",
			ErrInvalidState, offer.ID, offer.Status, model.StatusPending)
	}

	offer.Status = model.StatusAccepted
	offer.CollectorID = collector.ID

	s.logg.Info("offer accepted", "offer", offer.ID, "collector", collector.ID)
	s.emit(events.KindAccepted, *offer, nil)
	return *offer, nil
}

// RecordCollectionWeight stores the measured weight and rescales the value
// so the price per kilogram implied by the original estimate is preserved.
func (s *Service) RecordCollectionWeight(offerID string, actualWeightKg float64) (model.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.offer(offerID)
	if err != nil {
		return model.Offer{}, err
	}
	if offer.Status != model.StatusAccepted {
		return model.Offer{}, fmt.Errorf("%w: offer %s is %s, collection requires %s",
			ErrInvalidState, offer.ID, offer.Status, model.StatusAccepted)
	}
	if actualWeightKg <= 0 || math.IsNaN(actualWeightKg) || math.IsInf(actualWeightKg, 0) {
		return model.Offer{}, fmt.Errorf("%w: enter the measured weight", ErrValidation)
	}
	// An offer can never be created with a zero estimate, but the division
	// below must not be reachable regardless.
	if offer.EstimatedWeight <= 0 {
		return model.Offer{}, fmt.Errorf("%w: offer %s has no estimated weight", ErrValidation, offer.ID)
	}

	offer.Value = int64(math.Round(float64(offer.Value) * actualWeightKg / offer.EstimatedWeight))
	offer.ActualWeight = &actualWeightKg
	offer.Status = model.StatusCollected

	s.logg.Info("collection recorded",
		"offer", offer.ID,
		"actual_weight_kg", actualWeightKg,
		"value", offer.Value,
	)
	s.emit(events.KindCollected, *offer, nil)
	return *offer, nil
}

// LiquidateOffer pays a collected offer out: the point is debited the full
// value, the resident receives 70%, the collector the remainder. The whole
// settlement commits as one unit or not at all.
func (s *Service) LiquidateOffer(offerID, pointID string) (model.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.offer(offerID)
	if err != nil {
		return model.Settlement{}, err
	}
	point, err := s.userWithRole(pointID, model.RolePoint)
	if err != nil {
		return model.Settlement{}, err
	}
	if offer.Status != model.StatusCollected {
		return model.Settlement{}, fmt.Errorf("%w: offer %s is %s, liquidation requires %s",
			ErrInvalidState, offer.ID, offer.Status, model.StatusCollected)
	}
	if point.Balance < offer.Value {
		return model.Settlement{}, fmt.Errorf("%w: point balance %d cannot cover offer value %d",
			ErrInsufficientFunds, point.Balance, offer.Value)
	}

	// The collector share is derived by subtraction so the two shares always
	// add up to the exact offer value.
	residentShare := offer.Value * residentSharePercent / 100
	collectorShare := offer.Value - residentShare

	if !s.transferFunds(point.ID, offer.ResidentID, residentShare) ||
		!s.transferFunds(point.ID, offer.CollectorID, collectorShare) {
		// Unreachable after the balance pre-check; kept as a hard stop so a
		// partial settlement can never be committed silently.
		return model.Settlement{}, fmt.Errorf("%w: settlement transfer failed for offer %s",
			ErrInsufficientFunds, offer.ID)
	}

	offer.Status = model.StatusCompleted

	settlement := &model.Settlement{
		ID:             uuid.New(),
		OfferID:        offer.ID,
		ResidentID:     offer.ResidentID,
		CollectorID:    offer.CollectorID,
		PointID:        point.ID,
		Total:          offer.Value,
		ResidentShare:  residentShare,
		CollectorShare: collectorShare,
		SettledAt:      time.Now(),
	}
	s.settlements = append([]*model.Settlement{settlement}, s.settlements...)

	s.logg.Info("offer liquidated",
		"offer", offer.ID,
		"total", settlement.Total,
		"resident_share", settlement.ResidentShare,
		"collector_share", settlement.CollectorShare,
	)
	s.emit(events.KindSettled, *offer, settlement)
	return *settlement, nil
}

// offer looks an offer up by normalized id. Callers must hold the lock.
func (s *Service) offer(rawID string) (*model.Offer, error) {
	id, err := NormalizeOfferID(rawID)
	if err != nil {
		return nil, err
	}
	offer, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: offer %q", ErrNotFound, id)
	}
	return offer, nil
}

func newOfferEvent(kind string, offer model.Offer, settlement *model.Settlement) events.OfferEvent {
	return events.OfferEvent{
		ID:         uuid.New(),
		Kind:       kind,
		Offer:      offer,
		Settlement: settlement,
		OccurredAt: time.Now(),
	}
}
