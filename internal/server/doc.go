// Package server wires and runs the reference auth-server's HTTP transport.
//
// It provides orchestration for the HTTP server lifecycle, including
// startup, signal handling, and graceful shutdown.
package server
