// Package server exposes a generated trade database over a read-only HTTP
// API for the map viewer.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/uncharted-waters/tradedb/internal/geo"
	"github.com/uncharted-waters/tradedb/internal/model"
	"github.com/uncharted-waters/tradedb/internal/query"
)

// Server serves one immutable document. Handlers only read db, so it is
// shared across requests without locking.
type Server struct {
	db             *model.TradeDatabase
	allowedOrigins []string
}

// New creates a Server. allowedOrigins feeds the CORS policy; an empty list
// allows any origin.
func New(db *model.TradeDatabase, allowedOrigins []string) *Server {
	return &Server{db: db, allowedOrigins: allowedOrigins}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	origins := s.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "id": s.db.Metadata.ID})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/database", s.handleDatabase)
		r.Get("/regions", s.handleRegions)
		r.Get("/cities", s.handleCities)
		r.Get("/cities/{name}", s.handleCity)
		r.Get("/cities/{name}/nearby", s.handleNearby)
		r.Get("/items", s.handleItems)
		r.Get("/items/{name}/prices", s.handleItemPrices)
	})

	return r
}

func (s *Server) handleDatabase(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.db)
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.db.Regions)
}

// handleCities lists cities, optionally narrowed with ?region=<code>.
func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	if code := r.URL.Query().Get("region"); code != "" {
		writeJSON(w, http.StatusOK, query.CitiesInRegion(s.db, code))
		return
	}
	writeJSON(w, http.StatusOK, s.db.Cities)
}

type cityResponse struct {
	model.City
	SpecialtyItems []model.Item `json:"specialty_items"`
}

func (s *Server) handleCity(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	c, ok := s.db.City(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown city "+name)
		return
	}
	items, err := query.CitySpecialtyItems(s.db, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cityResponse{City: c, SpecialtyItems: items})
}

// handleNearby lists the closest ports to a city; ?n= sets how many.
func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	c, ok := s.db.City(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown city "+name)
		return
	}
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = v
	}
	neighbors, err := geo.Nearest(s.db.Cities, c, n)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, neighbors)
}

// handleItems lists items, optionally narrowed with ?category=<name>.
func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	if cat := r.URL.Query().Get("category"); cat != "" {
		writeJSON(w, http.StatusOK, query.ItemsByCategory(s.db, cat))
		return
	}
	writeJSON(w, http.StatusOK, s.db.Items)
}

type pricesResponse struct {
	Item   model.Item        `json:"item"`
	Cities []query.CityPrice `json:"cities"`
}

func (s *Server) handleItemPrices(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	item, ok := query.FindItem(s.db, name, r.URL.Query().Get("category"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown item "+name)
		return
	}
	writeJSON(w, http.StatusOK, pricesResponse{Item: item, Cities: query.PriceRanking(s.db, item)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
