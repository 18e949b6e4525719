package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"ecocash/internal/config"
	"ecocash/internal/handlers"
	"ecocash/internal/middleware"
)

type Server struct {
	Serv *http.Server
	logg *slog.Logger
}

// NewRouter wires the API routes. Exposed separately so tests can drive the
// exact production routing.
func NewRouter(handler *handlers.Server, logg *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.Logging(logg))

	r.Get("/health", handler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/offers", func(r chi.Router) {
			r.Post("/", handler.CreateOffer)
			r.Post("/bag", handler.CreateOfferFromBag)
			r.Get("/", handler.ListOffers)
			r.Get("/{id}", handler.GetOffer)
			r.Post("/{id}/accept", handler.AcceptOffer)
			r.Post("/{id}/collect", handler.RecordCollection)
			r.Post("/{id}/liquidate", handler.LiquidateOffer)
		})

		r.Route("/bag/{residentID}", func(r chi.Router) {
			r.Post("/", handler.StageBagItem)
			r.Get("/", handler.GetBag)
			r.Delete("/", handler.ClearBag)
		})

		r.Get("/users", handler.ListUsers)
		r.Get("/users/{id}", handler.GetUser)
		r.Get("/settlements", handler.ListSettlements)
	})

	return r
}

func New(cfg config.Config, handler *handlers.Server, logg *slog.Logger) *Server {
	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      NewRouter(handler, logg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{Serv: serv, logg: logg}
}

func (s *Server) Start() {
	go func() {
		s.logg.Info("starting server", "address", s.Serv.Addr)
		if err := s.Serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logg.Error("server failed to start", "error", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logg.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.Serv.Shutdown(shutdownCtx); err != nil {
		s.logg.Error("server shutdown error", "error", err)
		return err
	}

	s.logg.Info("server stopped")
	return nil
}
