// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader propagates a trace identifier between caller and server.
const traceIDHeader = "X-Trace-ID"

// withTraceID resolves or generates a trace ID for the request and embeds a
// child logger carrying it into the request context, so every log line
// emitted while handling the request can be correlated without the handler
// threading the id through by hand.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := h.log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}
