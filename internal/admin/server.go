package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ssantos21/mercurylayer/internal/domain/model"
	"github.com/ssantos21/mercurylayer/internal/transfer"
)

const maxRequestBodyBytes = 1 << 20 // 1 MB

// BatchStateProvider is the read-only view the admin API exposes to the
// settlement/expiry process: batch lock state and per-coin membership.
type BatchStateProvider interface {
	IsLocked(ctx context.Context, batchID string) (bool, error)
}

// TransferLookup resolves a coin's settled batch membership.
type TransferLookup interface {
	LookupBatch(ctx context.Context, statechainID string) (*model.BatchMembership, error)
}

// Pinger reports storage reachability for readiness checks.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server provides the operational HTTP API: health, readiness, and
// read-only batch state. The six core transfer operations are not served
// here; their transport lives outside this engine.
type Server struct {
	batches   BatchStateProvider
	transfers TransferLookup
	db        Pinger
	logger    *slog.Logger
}

func NewServer(batches BatchStateProvider, transfers TransferLookup, db Pinger, logger *slog.Logger) *Server {
	return &Server{
		batches:   batches,
		transfers: transfers,
		db:        db,
		logger:    logger.With("component", "admin"),
	}
}

// Handler returns the admin mux wrapped with rate limiting.
func (s *Server) Handler(rl *RateLimitMiddleware) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/readyz", s.handleReadyz)
	mux.HandleFunc("/admin/v1/batches/", s.handleBatchState)
	mux.HandleFunc("/admin/v1/transfers/", s.handleTransferBatch)

	var h http.Handler = mux
	if rl != nil {
		h = rl.Wrap(h)
	}
	return http.MaxBytesHandler(h, maxRequestBodyBytes)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "db unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// GET /admin/v1/batches/{batch_id} -> {"batch_id": ..., "locked": bool}
func (s *Server) handleBatchState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	batchID := strings.TrimPrefix(r.URL.Path, "/admin/v1/batches/")
	if batchID == "" || strings.Contains(batchID, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing batch id"})
		return
	}

	locked, err := s.batches.IsLocked(r.Context(), batchID)
	if err != nil {
		s.writeError(w, fmt.Errorf("batch state: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"batch_id": batchID,
		"locked":   locked,
	})
}

// GET /admin/v1/transfers/{statechain_id}/batch -> membership or 404
func (s *Server) handleTransferBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/admin/v1/transfers/")
	statechainID, ok := strings.CutSuffix(rest, "/batch")
	if !ok || statechainID == "" || strings.Contains(statechainID, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expected /admin/v1/transfers/{statechain_id}/batch"})
		return
	}

	m, err := s.transfers.LookupBatch(r.Context(), statechainID)
	if err != nil {
		s.writeError(w, fmt.Errorf("transfer batch: %w", err))
		return
	}
	if m == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "coin has no batched transfer"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"statechain_id": statechainID,
		"batch_id":      m.BatchID,
		"batch_time":    m.BatchTime.UTC().Format(time.RFC3339Nano),
	})
}

// writeError maps the transfer error taxonomy onto HTTP statuses:
// recoverable negatives become 404/409, everything else is a 5xx the
// caller may retry.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transfer.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, transfer.ErrConflictingWrite):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "superseded"})
	default:
		s.logger.Error("admin request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
