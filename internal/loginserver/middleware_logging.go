// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loginserver

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/abcwallet/abc-core/internal/logger"
)

// withLogging emits one structured access-log entry per request. It relies
// on withTraceID having already placed a context-scoped logger on the
// request; absent that, it gets zerolog's DefaultContextLogger, or a
// disabled logger when that is unset.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		if r.Body != nil {
			body, err := io.ReadAll(r.Body)
			if err == nil {
				log.Debug().RawJSON("incoming data", body).Msg("incoming request")
				r.Body = io.NopCloser(bytes.NewReader(body))
			}
		}

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}

// responseWriter decorates [http.ResponseWriter] to capture the status code
// and response size written by a downstream handler.
type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	size        int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
