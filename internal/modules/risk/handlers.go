package risk

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers exposes the risk service over HTTP.
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates HTTP handlers for the risk module.
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("component", "risk-handlers").Logger(),
	}
}

// Routes mounts the risk endpoints.
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/report", h.handleReport)
	r.Post("/revalue", h.handleRevalue)
	r.Get("/curves", h.handleCurves)
}

// handleCurves lists the configured curve definitions.
func (h *Handlers) handleCurves(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"curves": h.service.Curves(),
	})
}

// handleReport returns the latest revaluation, computing one if none has
// run yet.
func (h *Handlers) handleReport(w http.ResponseWriter, r *http.Request) {
	report := h.service.LastReport()
	if report == nil {
		var err error
		report, err = h.service.Revalue()
		if err != nil {
			h.log.Error().Err(err).Msg("Revaluation failed")
			h.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	h.writeJSON(w, http.StatusOK, report)
}

// handleRevalue forces a fresh revaluation.
func (h *Handlers) handleRevalue(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Revalue()
	if err != nil {
		h.log.Error().Err(err).Msg("Revaluation failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
