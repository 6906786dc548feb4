package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// GetRequestID returns the id LoggingMiddleware assigned to the request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggingMiddleware writes one log line per request. A well-formed incoming X-Request-ID
// is reused, otherwise a new uuid is generated. 5xx responses log at error level, 4xx at warn.
func LoggingMiddleware(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(reqID); err != nil {
				reqID = uuid.New().String()
			}
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set(RequestIDHeader, reqID)

			// Auth runs further down the chain; it reports the user back through this holder.
			holder := &userHolder{}
			ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
			ctx = context.WithValue(ctx, userHolderKey{}, holder)

			next.ServeHTTP(rec, r.WithContext(ctx))

			fields := []any{
				"request_id", reqID,
				"method", r.Method,
				"uri", r.RequestURI,
				"remote_ip", clientIP(r),
				"status", rec.status,
				"bytes", rec.bytes,
				"duration", time.Since(start),
			}
			if holder.id != uuid.Nil {
				fields = append(fields, "user_id", holder.id.String())
			}

			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Errorw("request", fields...)
			case rec.status >= http.StatusBadRequest:
				log.Warnw("request", fields...)
			default:
				log.Infow("request", fields...)
			}
		})
	}
}

type userHolderKey struct{}

type userHolder struct {
	id uuid.UUID
}

// noteUser records the authenticated user for the request log line.
func noteUser(ctx context.Context, userID uuid.UUID) {
	if h, ok := ctx.Value(userHolderKey{}).(*userHolder); ok {
		h.id = userID
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if !rec.wroteHeader {
		rec.status = code
		rec.wroteHeader = true
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	rec.wroteHeader = true
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
