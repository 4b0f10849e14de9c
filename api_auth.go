package main

import (
	"errors"
	"net/http"
)

// --------- DTOs ---------

type signInReq struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Email       string `json:"email"` // optional
}

type profileReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// --------- Handlers ---------

// POST /api/auth/sign-in
// Unified sign-in/registration: a known phone number returns the
// stored user untouched, an unknown one registers it.
func handleAuthSignIn(w http.ResponseWriter, r *http.Request) {
	var in signInReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	u, err := resolver.CreateOrGetUser(in.PhoneNumber, in.Name, in.Email)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	tok, err := signToken(u.ID, 24*30) // 30 days
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "token error")
		return
	}
	setAuthCookie(w, tok)
	writeJSON(w, http.StatusOK, u)
}

// POST /api/auth/sign-out
// Clears the session cookie only. The user row stays: the mobile app's
// "delete account" never deleted remote data and neither do we.
func handleAuthSignOut(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// GET /api/auth/me
func handleAuthMe(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor == "" {
		errorJSON(w, http.StatusUnauthorized, "no session")
		return
	}
	u, err := resolver.GetUserByID(actor)
	if err != nil {
		errorJSON(w, http.StatusUnauthorized, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// PUT /api/auth/profile
func handleAuthProfile(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor == "" {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in profileReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	u, err := resolver.UpdateUser(actor, in.Name, in.Email)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
