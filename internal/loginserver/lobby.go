// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/login"
	"github.com/abcwallet/abc-core/internal/store"
)

type createLobbyResult struct {
	ID string `json:"id"`
}

// handleCreateLobby serves POST /v2/lobby: a device publishes its
// ephemeral request key and receives back the id another device will
// poll for to deliver the encrypted reply.
func (h *Handler) handleCreateLobby(w http.ResponseWriter, r *http.Request) {
	var req login.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	id := uuid.NewString()
	ttl := time.Duration(h.lobbyTTL) * time.Second
	if err := h.repos.Lobbies.Create(r.Context(), id, req, ttl); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.ServerError, err, "creating lobby"))
		return
	}
	writeReply(w, createLobbyResult{ID: id})
}

// handleFetchLobby serves GET /v2/lobby/{id}. The requesting device polls
// this until replyBox is populated.
func (h *Handler) handleFetchLobby(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lobby, err := h.repos.Lobbies.Fetch(r.Context(), id)
	if err != nil {
		writeError(w, h.log, mapLobbyErr(err))
		return
	}
	writeReply(w, lobby)
}

// handleUpdateLobby serves PUT /v2/lobby/{id}: the approving device writes
// its ECDH reply into the lobby the requesting device is watching.
func (h *Handler) handleUpdateLobby(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var lobby login.Lobby
	if err := json.NewDecoder(r.Body).Decode(&lobby); err != nil {
		writeError(w, h.log, abcerr.Wrap(abcerr.JsonError, err, "decoding request"))
		return
	}

	if err := h.repos.Lobbies.Update(r.Context(), id, lobby); err != nil {
		writeError(w, h.log, mapLobbyErr(err))
		return
	}
	writeReply(w, nil)
}

// mapLobbyErr maps a lobby store error to the abstract kind the wire reply
// classifies on. A missing or expired lobby is reported the same way an
// unresolvable account is: the caller has no business distinguishing the two.
func mapLobbyErr(err error) error {
	if errors.Is(err, store.ErrLobbyNotFound) {
		return abcerr.New(abcerr.AccountDoesNotExist, "lobby not found or expired")
	}
	return abcerr.Wrap(abcerr.ServerError, err, "store error")
}
