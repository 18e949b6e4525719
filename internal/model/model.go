package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of participant kinds. A user's role is fixed at
// seeding time and never changes.
type Role string

const (
	RoleResident  Role = "RESIDENT"  // lists recyclable material
	RoleCollector Role = "COLLECTOR" // picks material up and weighs it
	RolePoint     Role = "POINT"     // buy-back terminal holding the capital
)

func (r Role) Valid() bool {
	switch r {
	case RoleResident, RoleCollector, RolePoint:
		return true
	}
	return false
}

type User struct {
	ID      string `json:"id"`      // opaque identifier, unique
	Name    string `json:"name"`    // display name
	Role    Role   `json:"role"`    // fixed at creation
	Balance int64  `json:"balance"` // centavos, never negative
}

// OfferStatus is the offer lifecycle state.
type OfferStatus string

const (
	StatusPending   OfferStatus = "PENDING"   // published, visible to collectors
	StatusAccepted  OfferStatus = "ACCEPTED"  // a collector committed to pick it up
	StatusCollected OfferStatus = "COLLECTED" // weighed, awaiting liquidation
	StatusCompleted OfferStatus = "COMPLETED" // paid out, terminal
)

type Offer struct {
	ID              string      `json:"id"`                      // display code, ECO-NNNN
	ResidentID      string      `json:"resident_id"`             // owner, immutable
	CollectorID     string      `json:"collector_id,omitempty"`  // empty until accepted
	Description     string      `json:"description"`             // free-text material description
	EstimatedWeight float64     `json:"estimated_weight"`        // kg, set at creation
	ActualWeight    *float64    `json:"actual_weight,omitempty"` // kg, nil until collected
	Value           int64       `json:"value"`                   // centavos; estimate until collection rescales it
	Status          OfferStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
}

// BagItem is one staged entry in a resident's pre-offer bag.
type BagItem struct {
	Description string  `json:"description"`
	Weight      float64 `json:"weight"` // kg
	Value       int64   `json:"value"`  // centavos
}

// Settlement is the receipt produced by a successful liquidation.
type Settlement struct {
	ID             uuid.UUID `json:"id"`
	OfferID        string    `json:"offer_id"`
	ResidentID     string    `json:"resident_id"`
	CollectorID    string    `json:"collector_id"`
	PointID        string    `json:"point_id"`
	Total          int64     `json:"total"`           // centavos debited from the point
	ResidentShare  int64     `json:"resident_share"`  // 70%
	CollectorShare int64     `json:"collector_share"` // remainder, Total-ResidentShare
	SettledAt      time.Time `json:"settled_at"`
}
