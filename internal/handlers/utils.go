package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evergreen-power/apiserver/internal/services"
)

type contextKey string

const contextSessionKey contextKey = "session"

func sessionFromContext(ctx context.Context) (services.Session, error) {
	sess, ok := ctx.Value(contextSessionKey).(services.Session)
	if !ok {
		return services.Session{}, errors.New("missing session")
	}
	return sess, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
