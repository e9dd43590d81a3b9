package adapthttp

import (
	"io"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"familyfit/internal/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(p)
}

func recorderFor(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

// panicRecovery turns a handler panic into a 500 and counts it.
func panicRecovery(m *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rec := recorderFor(w)
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("http: panic serving %s: %v\n%s", req.URL.Path, r, debug.Stack())
					if m != nil {
						m.CounterHandleRequestPanic.Inc()
					}
					if !rec.wroteHeader {
						http.Error(rec, "internal error", http.StatusInternalServerError)
					}
				}
			}()

			next.ServeHTTP(rec, req)
		})
	}
}

// logRequest tags every request with an id, echoed in X-Request-ID, and logs
// the outcome.
func logRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id := req.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			start := time.Now()
			rec := recorderFor(w)
			next.ServeHTTP(rec, req)

			log.WithFields(log.Fields{
				"request_id": id,
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     rec.statusCode,
				"duration":   time.Since(start).String(),
			}).Info("request")
		})
	}
}

func requestMetrics(m *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			m.GaugeRequests.Inc()
			defer m.GaugeRequests.Dec()
			defer func(begin time.Time) {
				m.HistRequestDuration.Observe(time.Since(begin).Seconds())
			}(time.Now())

			rec := recorderFor(w)
			next.ServeHTTP(rec, req)

			m.CounterRequests.With(prometheus.Labels{
				"method": req.Method,
				"status": strconv.Itoa(rec.statusCode),
			}).Inc()
		})
	}
}

func drainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
