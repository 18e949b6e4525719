package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecocash/internal/config"
	"ecocash/internal/ledger"
	"ecocash/internal/model"
	"ecocash/internal/respond"
)

// Server is the HTTP surface over the ledger. It holds no state of its own;
// every mutation goes through the ledger's operations.
type Server struct {
	Ledger *ledger.Service
	Config config.Config
	Logg   *slog.Logger
}

func NewServer(cfg config.Config, svc *ledger.Service, logg *slog.Logger) *Server {
	if logg == nil {
		logg = slog.Default()
	}
	return &Server{Ledger: svc, Config: cfg, Logg: logg}
}

type createOfferRequest struct {
	ResidentID  string `json:"resident_id"`
	Description string `json:"description"`
}

type acceptOfferRequest struct {
	CollectorID string `json:"collector_id"`
}

type collectOfferRequest struct {
	ActualWeight float64 `json:"actual_weight"` // kg
}

type liquidateOfferRequest struct {
	PointID string `json:"point_id"`
}

type stageItemRequest struct {
	Description string  `json:"description"`
	Weight      float64 `json:"weight"` // kg
}

type publishBagRequest struct {
	ResidentID string `json:"resident_id"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "healthy", nil)
}

func (s *Server) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req createOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "bad request format")
		return
	}

	offer, err := s.Ledger.CreateOffer(req.ResidentID, req.Description)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "offer published", offer)
}

func (s *Server) CreateOfferFromBag(w http.ResponseWriter, r *http.Request) {
	var req publishBagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "bad request format")
		return
	}

	offer, err := s.Ledger.CreateOfferFromBag(req.ResidentID)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "bag published as offer", offer)
}

func (s *Server) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	var req acceptOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "bad request format")
		return
	}

	offer, err := s.Ledger.AcceptOffer(chi.URLParam(r, "id"), req.CollectorID)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "offer accepted", offer)
}

func (s *Server) RecordCollection(w http.ResponseWriter, r *http.Request) {
	var req collectOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "bad request format")
		return
	}

	offer, err := s.Ledger.RecordCollectionWeight(chi.URLParam(r, "id"), req.ActualWeight)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "collection recorded", offer)
}

func (s *Server) LiquidateOffer(w http.ResponseWriter, r *http.Request) {
	var req liquidateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "bad request format")
		return
	}

	settlement, err := s.Ledger.LiquidateOffer(chi.URLParam(r, "id"), req.PointID)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "payment liquidated", settlement)
}

func (s *Server) GetOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := s.Ledger.FindOfferByID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "offer found", offer)
}

// ListOffers serves the dashboard feeds. Filters are mutually exclusive:
// resident_id, collector_id, or status; none returns everything.
func (s *Server) ListOffers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var offers []model.Offer
	switch {
	case q.Get("resident_id") != "":
		offers = s.Ledger.ListOffersByResident(q.Get("resident_id"))
	case q.Get("collector_id") != "":
		offers = s.Ledger.ListOngoingForCollector(q.Get("collector_id"))
	case q.Get("status") != "":
		switch model.OfferStatus(q.Get("status")) {
		case model.StatusPending:
			offers = s.Ledger.ListPendingOffers()
		case model.StatusCollected:
			offers = s.Ledger.ListAwaitingLiquidation()
		case model.StatusCompleted:
			offers = s.Ledger.ListCompleted()
		default:
			respond.Error(w, http.StatusBadRequest, "unknown status filter")
			return
		}
	default:
		offers = s.Ledger.ListOffers()
	}

	respond.JSON(w, http.StatusOK, "offers", offers)
}

func (s *Server) ListSettlements(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "settlements", s.Ledger.ListSettlements())
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "users", s.Ledger.ListUsers())
}

func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.Ledger.GetUser(chi.URLParam(r, "id"))
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "user found", user)
}

func (s *Server) StageBagItem(w http.ResponseWriter, r *http.Request) {
	var req stageItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "bad request format")
		return
	}

	item, err := s.Ledger.StageBagItem(chi.URLParam(r, "residentID"), req.Description, req.Weight)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "item staged", item)
}

func (s *Server) GetBag(w http.ResponseWriter, r *http.Request) {
	items, err := s.Ledger.BagItems(chi.URLParam(r, "residentID"))
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "bag items", items)
}

func (s *Server) ClearBag(w http.ResponseWriter, r *http.Request) {
	if err := s.Ledger.ClearBag(chi.URLParam(r, "residentID")); err != nil {
		s.writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "bag cleared", nil)
}

// writeLedgerError maps the ledger's error taxonomy onto HTTP statuses.
// Insufficient funds keeps the teacher's 402 convention.
func (s *Server) writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalidState):
		respond.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		respond.Error(w, http.StatusPaymentRequired, err.Error())
	default:
		s.Logg.Error("unexpected ledger error", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
