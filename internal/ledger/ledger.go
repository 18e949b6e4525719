// Package ledger owns every user, offer, bag, and settlement in the
// marketplace. All state lives behind one mutex so offer transitions and the
// three-way balance mutation of a liquidation are linearizable; no caller
// ever observes a partial effect.
package ledger

import (
	"fmt"
	"log/slog"
	"sync"

	"ecocash/internal/bag"
	"ecocash/internal/events"
	"ecocash/internal/model"
)

type Service struct {
	mu          sync.Mutex
	users       map[string]*model.User
	offers      []*model.Offer // newest first
	byID        map[string]*model.Offer
	bags        map[string]*bag.List
	settlements []*model.Settlement // newest first

	emitter events.Emitter // optional
	logg    *slog.Logger
}

// New creates an empty ledger. The emitter may be nil; lifecycle events are
// then skipped entirely.
func New(logg *slog.Logger, emitter events.Emitter) *Service {
	if logg == nil {
		logg = slog.Default()
	}
	return &Service{
		users:   make(map[string]*model.User),
		byID:    make(map[string]*model.Offer),
		bags:    make(map[string]*bag.List),
		emitter: emitter,
		logg:    logg,
	}
}

// Seed loads the fixed user roster. Users are never created or deleted after
// startup; only balances change, and only through transferFunds.
func (s *Service) Seed(users ...model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		if u.ID == "" {
			return fmt.Errorf("%w: user id is empty", ErrValidation)
		}
		if _, exists := s.users[u.ID]; exists {
			return fmt.Errorf("%w: duplicate user id %q", ErrValidation, u.ID)
		}
		if !u.Role.Valid() {
			return fmt.Errorf("%w: user %s has unknown role %q", ErrValidation, u.ID, u.Role)
		}
		if u.Balance < 0 {
			return fmt.Errorf("%w: user %s has negative balance", ErrValidation, u.ID)
		}
		seeded := u
		s.users[u.ID] = &seeded
	}
	s.logg.Info("ledger seeded", "users", len(users))
	return nil
}

func (s *Service) GetUser(id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(id)
	if err != nil {
		return model.User{}, err
	}
	return *u, nil
}

func (s *Service) ListUsers() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out
}

// user looks a user up by id. Callers must hold the lock.
func (s *Service) user(id string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, id)
	}
	return u, nil
}

// userWithRole resolves a user and checks its role with an exhaustive match,
// so an unknown role can never slip through a transition silently.
func (s *Service) userWithRole(id string, want model.Role) (*model.User, error) {
	u, err := s.user(id)
	if err != nil {
		return nil, err
	}
	switch u.Role {
	case model.RoleResident, model.RoleCollector, model.RolePoint:
		if u.Role != want {
			return nil, fmt.Errorf("%w: user %s has role %s, operation requires %s",
				ErrValidation, u.ID, u.Role, want)
		}
		return u, nil
	default:
		return nil, fmt.Errorf("%w: user %s has unknown role %q", ErrValidation, u.ID, u.Role)
	}
}

// transferFunds is the single choke point through which every balance change
// flows. It returns false and mutates nothing when the source cannot cover
// the amount. Callers must hold the lock.
func (s *Service) transferFunds(fromID, toID string, amount int64) bool {
	from, ok := s.users[fromID]
	if !ok {
		return false
	}
	to, ok := s.users[toID]
	if !ok {
		return false
	}
	if amount < 0 || from.Balance < amount {
		return false
	}
	from.Balance -= amount
	to.Balance += amount
	return true
}

// emit hands an event to the dispatcher. Emit never blocks, so calling it
// with the lock held is safe.
func (s *Service) emit(kind string, offer model.Offer, settlement *model.Settlement) {
	if s.emitter == nil {
		return
	}
	s.emitter.Emit(newOfferEvent(kind, offer, settlement))
}
