// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package serverclient

import (
	"context"

	"github.com/abcwallet/abc-core/internal/login"
)

type createLobbyResult struct {
	ID string `json:"id"`
}

// CreateLobby implements [login.ServerClient]: publishes a new edge-login
// request and returns the lobby ID the requesting device polls.
func (c *Client) CreateLobby(ctx context.Context, request login.AccountRequest) (string, error) {
	resp, err := c.request().SetContext(ctx).SetBody(request).Post("/v2/lobby")
	r, mapErr := decode(resp, err)
	if mapErr != nil {
		return "", mapErr
	}

	var res createLobbyResult
	if err := unmarshalResults(r, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

// FetchLobby implements [login.ServerClient].
func (c *Client) FetchLobby(ctx context.Context, lobbyID string) (login.Lobby, error) {
	resp, err := c.request().SetContext(ctx).Get("/v2/lobby/" + lobbyID)
	r, mapErr := decode(resp, err)
	if mapErr != nil {
		return login.Lobby{}, mapErr
	}

	var lobby login.Lobby
	if err := unmarshalResults(r, &lobby); err != nil {
		return login.Lobby{}, err
	}
	return lobby, nil
}

// UpdateLobby implements [login.ServerClient]: the approving device's
// write of its ECDH reply box into the lobby the requesting device is
// polling.
func (c *Client) UpdateLobby(ctx context.Context, lobbyID string, lobby login.Lobby) error {
	resp, err := c.request().SetContext(ctx).SetBody(lobby).Put("/v2/lobby/" + lobbyID)
	_, mapErr := decode(resp, err)
	return mapErr
}
