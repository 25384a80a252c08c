// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package login implements the credential-store, on-disk package formats,
// and post-authentication Login object that sit at the center of
// abc-core: LoginStore (per-username identity), CarePackage/LoginPackage/
// LoginStash (on-disk schemas), AuthJSON (outgoing request bodies), and the
// password/PIN/recovery/edge-login flows that turn a human credential into
// a dataKey.
//
// Nothing here dials the network directly; every flow is parameterized by
// a ServerClient interface so the package can be tested against a
// hand-written fake and wired in production to internal/serverclient.
package login

import "sync"

// fileMutex serialises every filesystem mutation this package performs, per
// the global mutex ordering: cacheMutex, LoginStore.mu, WalletList.mu,
// fileMutex, debugLogMutex. It is recursive in spirit (call sites never
// re-enter it) and lives at package scope because on-disk account state is
// process-wide, not per-Store.
var fileMutex sync.Mutex
