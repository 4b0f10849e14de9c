package main

import (
	"net/http"
	"strings"
)

// GET /api/lookup?phone=%2B15550001234
// Caller-ID lookup: merged identity-and-risk verdict for one number.
// The resolver never fails here, so the only error path is validation.
func handleLookup(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))
	if err := validatePhone(phone); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resolver.Identify(phone))
}
