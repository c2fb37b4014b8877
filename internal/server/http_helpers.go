package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"promptclash/internal/game"
)

func readJSON(body io.Reader, out any) error {
	decoder := json.NewDecoder(io.LimitReader(body, 1<<20))
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses:
// validation 400, precondition 409, not found 404.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case game.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case game.IsPrecondition(err):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
