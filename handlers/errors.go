package handlers

import (
	"errors"
	"net/http"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/pkg/billing"
)

// writeServiceError maps billing errors onto HTTP status codes. Transient
// failures come back as 503 so clients know the whole operation is safe to
// retry.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case billing.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, billing.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, billing.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case billing.IsTransient(err):
		http.Error(w, "temporary storage failure, please retry", http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
