package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tickler/internal/domain"
)

// getPathID extracts a positive integer task id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, paramName)
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidID, paramName, raw)
	}
	return id, nil
}

// parseStatusFilter reads the optional ?status= query parameter.
// It returns (completed, filtered, error).
func parseStatusFilter(r *http.Request) (bool, bool, error) {
	switch status := r.URL.Query().Get("status"); status {
	case "":
		return false, false, nil
	case "pending":
		return false, true, nil
	case "completed":
		return true, true, nil
	default:
		return false, false, fmt.Errorf("%w: status must be pending or completed, got %q", domain.ErrValidation, status)
	}
}
