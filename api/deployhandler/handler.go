package deployhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bluegilltech/pca-wizard/api"
	"github.com/bluegilltech/pca-wizard/interfaces"
	"github.com/bluegilltech/pca-wizard/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// StatusProvisioned is reported in api.ProvisionResponse on success.
const StatusProvisioned = "provisioned"

// RequestError provides structured error information for HTTP responses.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

// Handler is the reference implementation of the deployment backend that the
// wizard notifies once an organization has been provisioned.
type Handler struct {
	store    interfaces.StorageBackend
	requests *prometheus.CounterVec
	log      *slog.Logger

	now func() time.Time
}

// NewHandler creates a handler persisting registrations to store.
// requests may be nil when metrics are not collected.
func NewHandler(store interfaces.StorageBackend, requests *prometheus.CounterVec, log *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		requests: requests,
		log:      log,
		now:      time.Now,
	}
}

// RegisterRoutes registers:
//   - POST /provision
//   - GET /registrations/{org_id}
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post(api.ProvisionPath, h.HandleProvision)
	r.Get("/registrations/{org_id}", h.HandleRegistration)
}

// HandleProvision accepts a ProvisionRequest, stores the registration record
// and the OAuth client secret separately, and answers with api.ProvisionResponse.
//
// Status codes:
//   - 200 OK: organization provisioned (an existing registration is replaced)
//   - 400 Bad Request: malformed body or missing field
//   - 500 Internal Server Error: no storage backend accepted the records
func (h *Handler) HandleProvision(w http.ResponseWriter, r *http.Request) {
	resp, err := h.provision(w, r)
	if err != nil {
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			reqErr = &RequestError{StatusCode: http.StatusInternalServerError, Err: err}
		}
		if reqErr.StatusCode == http.StatusBadRequest {
			h.count(metrics.ResultInvalid)
			h.log.Warn("Rejected provision request", "err", reqErr.Err)
		} else {
			h.count(metrics.ResultStorageError)
			h.log.Error("Provisioning failed", "err", reqErr.Err)
		}
		http.Error(w, reqErr.Error(), reqErr.StatusCode)
		return
	}

	h.count(metrics.ResultProvisioned)
	h.log.Info("Organization provisioned", "orgId", resp.OrgID, "requestId", resp.RequestID)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

func (h *Handler) provision(w http.ResponseWriter, r *http.Request) (*api.ProvisionResponse, error) {
	var req api.ProvisionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		return nil, &RequestError{StatusCode: http.StatusBadRequest, Err: fmt.Errorf("Invalid request body: %w", err)}
	}

	if err := api.ValidateProvisionRequest(&req); err != nil {
		return nil, &RequestError{StatusCode: http.StatusBadRequest, Err: err}
	}

	key, err := interfaces.NewRecordKey(req.OrgID)
	if err != nil {
		return nil, &RequestError{StatusCode: http.StatusBadRequest, Err: fmt.Errorf("Invalid orgId: %w", err)}
	}

	requestID := uuid.NewString()
	registration, err := json.Marshal(api.NewRegistration(&req, requestID, h.now().UTC().Format(time.RFC3339)))
	if err != nil {
		return nil, fmt.Errorf("could not encode registration: %w", err)
	}

	ctx := r.Context()
	if err := h.store.Store(ctx, key, []byte(req.OAuthClientSecret), interfaces.SecretType); err != nil {
		return nil, fmt.Errorf("could not store client secret: %w", err)
	}
	if err := h.store.Store(ctx, key, registration, interfaces.RegistrationType); err != nil {
		return nil, fmt.Errorf("could not store registration: %w", err)
	}

	return &api.ProvisionResponse{
		Status:    StatusProvisioned,
		OrgID:     req.OrgID,
		RequestID: requestID,
	}, nil
}

// HandleRegistration returns the stored registration of an organization.
// The OAuth client secret is never part of the response.
//
// URL format: GET /registrations/{org_id}
func (h *Handler) HandleRegistration(w http.ResponseWriter, r *http.Request) {
	key, err := interfaces.NewRecordKey(chi.URLParam(r, "org_id"))
	if err != nil {
		http.Error(w, "Invalid organization id", http.StatusBadRequest)
		return
	}

	data, err := h.store.Fetch(r.Context(), key, interfaces.RegistrationType)
	if errors.Is(err, interfaces.ErrContentNotFound) {
		http.Error(w, "Registration not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("Failed to fetch registration", "err", err, "orgId", key.String())
		http.Error(w, "Failed to fetch registration", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *Handler) count(result string) {
	if h.requests != nil {
		h.requests.WithLabelValues(result).Inc()
	}
}
