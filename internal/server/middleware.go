package server

import (
	"net/http"
	"strconv"
	"time"

	"winhouse-quote/internal/common/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// handle registers h under pattern and records its duration, labelled with
// the pattern so path parameters do not explode cardinality.
func (s *Server) handle(pattern string, h http.Handler) {
	s.mux.Handle(pattern, s.instrument(pattern, h))
}

func (s *Server) instrument(route string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				s.logger.Error("handler panicked", map[string]interface{}{
					"route": route,
					"panic": p,
				})
				if !rec.wroteHeader {
					rec.WriteHeader(http.StatusInternalServerError)
				}
			}

			duration := time.Since(start)
			metrics.HTTPRequestDuration.
				WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).
				Observe(duration.Seconds())
			s.obs.RecordRequest(r.Context(), route, rec.status, duration)
		}()

		h.ServeHTTP(rec, r)
	})
}
