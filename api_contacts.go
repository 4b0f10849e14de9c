package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type addContactReq struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Email       string `json:"email"` // optional
}

// GET /api/contacts
func handleContactsList(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor == "" {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	cs, err := resolver.GetContactsByUser(actor)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": cs})
}

// POST /api/contacts
func handleContactAdd(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor == "" {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in addContactReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	c, err := resolver.AddContact(actor, in.PhoneNumber, in.Name, in.Email)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "contact": c})
}

// PUT /api/contacts/{id}
func handleContactUpdate(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor == "" {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in ContactUpdate
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	c, err := resolver.UpdateContact(chi.URLParam(r, "id"), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			errorJSON(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			errorJSON(w, http.StatusNotFound, "not found")
		default:
			errorJSON(w, http.StatusInternalServerError, "db error")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "contact": c})
}

// DELETE /api/contacts/{id}
func handleContactDelete(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor == "" {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := resolver.DeleteContact(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorJSON(w, http.StatusNotFound, "not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
