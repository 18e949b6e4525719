package ledger

import "ecocash/internal/model"

// Query operations are read-only snapshots. The offer list is small enough
// that linear scans are fine; every result preserves newest-first order.

// FindOfferByID is the point-terminal lookup. Input is normalized the way
// the terminal types it: trimmed, upper-cased, check digit verified.
func (s *Service) FindOfferByID(rawID string) (model.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.offer(rawID)
	if err != nil {
		return model.Offer{}, err
	}
	return *offer, nil
}

// ListOffers returns every offer regardless of state.
func (s *Service) ListOffers() []model.Offer {
	return s.filterOffers(func(*model.Offer) bool { return true })
}

func (s *Service) ListOffersByResident(residentID string) []model.Offer {
	return s.filterOffers(func(o *model.Offer) bool {
		return o.ResidentID == residentID
	})
}

// ListPendingOffers returns the offers any collector may still accept.
func (s *Service) ListPendingOffers() []model.Offer {
	return s.filterOffers(func(o *model.Offer) bool {
		return o.Status == model.StatusPending
	})
}

// ListOngoingForCollector returns the collector's accepted and collected
// offers that have not been paid out yet.
func (s *Service) ListOngoingForCollector(collectorID string) []model.Offer {
	return s.filterOffers(func(o *model.Offer) bool {
		return o.CollectorID == collectorID && o.Status != model.StatusCompleted
	})
}

// ListAwaitingLiquidation returns the offers the point can pay out.
func (s *Service) ListAwaitingLiquidation() []model.Offer {
	return s.filterOffers(func(o *model.Offer) bool {
		return o.Status == model.StatusCollected
	})
}

// ListCompleted is the transaction history feed.
func (s *Service) ListCompleted() []model.Offer {
	return s.filterOffers(func(o *model.Offer) bool {
		return o.Status == model.StatusCompleted
	})
}

// ListSettlements returns the liquidation receipts, newest first.
func (s *Service) ListSettlements() []model.Settlement {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Settlement, 0, len(s.settlements))
	for _, st := range s.settlements {
		out = append(out, *st)
	}
	return out
}

func (s *Service) filterOffers(keep func(*model.Offer) bool) []model.Offer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Offer{}
	for _, o := range s.offers {
		if keep(o) {
			out = append(out, *o)
		}
	}
	return out
}
