// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the low-level cryptographic primitives that
// every other package in abc-core builds on: canonical byte encodings,
// hashing, the scrypt key-stretching parameter set, the JSON box
// authenticated-encryption envelope, and the process-wide random source.
//
// # Layering
//
// Nothing in this package knows about usernames, accounts, or the wire
// protocol — it only knows about bytes, keys, and parameter sets. The
// credential-specific key hierarchy (passwordKey, dataKey, rootKey, pin2Key,
// recovery2Key, ...) is built on top of these primitives in package login.
//
// # SNRP and JsonBox
//
// [SNRP] stretches a human-memorable secret into a 32-byte key via scrypt.
// [Box] is the authenticated-encryption envelope every stretched key
// ultimately protects: type 0 is the legacy AES-256-CBC "package" format,
// kept only so data written by older clients still decrypts; type 1 is
// ChaCha20-Poly1305-IETF and is what every new write produces.
package crypto
