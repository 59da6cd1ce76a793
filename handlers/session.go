// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/fitlog/auth"
	"github.com/danielhkuo/fitlog/middleware"
	"github.com/danielhkuo/fitlog/models"
)

type SessionHandler struct {
	verifier *auth.Verifier
}

func NewSessionHandler(verifier *auth.Verifier) *SessionHandler {
	return &SessionHandler{verifier: verifier}
}

// GetSession handles GET /api/session. It always answers 200; a missing or
// invalid token reports authenticated=false.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	if !h.verifier.IsAuthenticated(r) {
		middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{Authenticated: false})
		return
	}
	userID, _ := h.verifier.UserID(r)
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{Authenticated: true, UserID: userID})
}
