package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/naka-gawa/devinsight/internal/domain"
)

// ErrorBody is the JSON payload of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthHandler reports that the server is up.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "Server is running"})
}

// ReportHandlers serves developer reports.
type ReportHandlers struct {
	svc    ReportService
	logger *log.Logger
}

// GetReport handles GET /api/github/{username}.
func (h *ReportHandlers) GetReport(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		h.MissingUsername(w, r)
		return
	}

	report, err := h.svc.Report(r.Context(), username)
	if err != nil {
		h.logger.Printf("GitHub API Error: %v\n", err)
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// MissingUsername rejects requests without an identity.
func (h *ReportHandlers) MissingUsername(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusBadRequest, ErrorBody{Error: "Username is required"})
}

// WriteError maps the domain error classes to HTTP statuses.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "Failed to fetch GitHub data"

	var derr *domain.Error
	if errors.As(err, &derr) {
		msg = derr.Error()
		if derr.Code == domain.CodeNotFound {
			status = http.StatusNotFound
		}
	}
	writeJSON(w, status, ErrorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
