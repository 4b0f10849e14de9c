package main

import (
	"errors"
	"net/http"
	"strings"
)

type spamReportReq struct {
	PhoneNumber string `json:"phone_number"`
	Reason      string `json:"reason"` // optional free text
}

// POST /api/spam-reports
func handleSpamReport(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor == "" {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in spamReportReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	rep, err := resolver.ReportSpam(actor, in.PhoneNumber, in.Reason)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "report": rep})
}

// GET /api/spam-reports?phone=%2B15550001234
// Ledger for one number, newest first. Empty list on storage trouble.
func handleSpamReports(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))
	if err := validatePhone(phone); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": resolver.GetSpamReports(phone)})
}
