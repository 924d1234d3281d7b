package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kobopay/bvn-bulk-service/internal/core/ports"
	"github.com/kobopay/bvn-bulk-service/internal/health"
	"github.com/kobopay/bvn-bulk-service/internal/log"
)

// Server exposes the bulk verification HTTP surface.
type Server struct {
	bulkService ports.BulkService
	health      *health.Status
}

// NewServer returns an api Server.
func NewServer(bulkService ports.BulkService, health *health.Status) *Server {
	return &Server{
		bulkService: bulkService,
		health:      health,
	}
}

// RegisterRoutes mounts the server routes on the given router.
func (s *Server) RegisterRoutes(mux *chi.Mux) {
	mux.Get("/status", s.GetStatus)
	mux.Route("/v1", func(r chi.Router) {
		r.Post("/bulk-verifications/process", s.ProcessBulk)
	})
}

// ProcessBulk validates the request and hands the bulk over to the service.
// Accepted and rejected initiations both answer 200 with code 0; only an
// unexpected fault answers 500.
func (s *Server) ProcessBulk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ProcessBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ProcessBulkResponse{
			Code:    CodeInternalError,
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	bulkFk := strings.TrimSpace(req.BulkFk)
	if bulkFk == "" {
		writeJSON(w, http.StatusBadRequest, ProcessBulkResponse{
			Code:    CodeInternalError,
			Success: false,
			Message: "bulkFk is required",
		})
		return
	}

	pk, err := strconv.ParseInt(bulkFk, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ProcessBulkResponse{
			Code:    CodeInternalError,
			Success: false,
			Message: "bulkFk must be a numeric identifier",
		})
		return
	}

	res := s.bulkService.Initiate(ctx, pk)
	switch res.Kind {
	case ports.InitiateAccepted:
		writeJSON(w, http.StatusOK, ProcessBulkResponse{Code: CodeOK, Success: true, Message: res.Message})
	case ports.InitiateRejected:
		writeJSON(w, http.StatusOK, ProcessBulkResponse{Code: CodeOK, Success: false, Message: res.Message})
	default:
		log.Error(ctx, "bulk initiation failed", "bulkFk", pk, "message", res.Message)
		writeJSON(w, http.StatusInternalServerError, ProcessBulkResponse{Code: CodeInternalError, Success: false, Message: res.Message})
	}
}

// GetStatus answers with the reachability of each backend.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse(s.health.Status(r.Context())))
}
