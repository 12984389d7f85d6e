package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/acmedash/backend/internal/services"
)

const maxFormBytes = 1_048_576

// parseForm reads an urlencoded or multipart body into the form multi-map
func parseForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] Failed to encode response: %v", err)
	}
}

// writeActionResult maps a form action outcome onto the response
func writeActionResult(w http.ResponseWriter, r *http.Request, result *services.ActionResult, err error) {
	if err != nil {
		var dbErr *services.DatabaseError
		if errors.As(err, &dbErr) {
			services.SendErrorResponse(w, dbErr.Error(), http.StatusInternalServerError, nil)
			return
		}
		log.Printf("[HTTP] Unhandled action error on %s %s: %v", r.Method, r.URL.Path, err)
		services.SendErrorResponse(w, "Something went wrong", http.StatusInternalServerError, nil)
		return
	}

	switch result.Outcome {
	case services.OutcomeInvalid:
		writeJSON(w, http.StatusUnprocessableEntity, result.State)
	case services.OutcomeNavigate:
		http.Redirect(w, r, result.Redirect, http.StatusSeeOther)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
