// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package loginserver is the reference auth-server implementation: a
// chi-routed http.Handler serving the server side of every call
// internal/serverclient makes, backed by internal/store.
//
// It is not meant to replace a production Airbitz-style auth server — it
// exists so abc-core's credential flows (internal/login) can be exercised
// end to end against a real HTTP server in tests and in local development,
// without a client ever having to special-case "talking to the reference
// server" vs. "talking to the real one": the wire shapes match
// internal/serverclient exactly.
package loginserver
