package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"
)

// IdempotencyMiddleware replays envelope responses for repeated Idempotency-Key requests.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. A zero ttl
// uses usecase.IdempotencyKeyTTL.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(IdempotencyKeyHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		key := scopedKey(r, header)

		exists, cached, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			log.Error().Err(err).Str("key", header).Msg("idempotency check failed")
			writeJSONError(w, http.StatusInternalServerError, domain.Kind(domain.ErrInternal), "idempotency check failed")
			return
		}

		if exists {
			if len(cached) == 0 || string(cached) == usecase.IdempotencyProcessing {
				writeJSONError(w, http.StatusConflict, domain.Kind(domain.ErrIdempotencyInFlight), domain.Message(domain.ErrIdempotencyInFlight))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(IdempotencyReplayHeader, "true")
			_, _ = w.Write(cached)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		// the request context may already be cancelled once the client is gone
		ctx := context.WithoutCancel(r.Context())

		defer func() {
			if rec := recover(); rec != nil {
				m.release(ctx, key, header)
				panic(rec)
			}
		}()
		next.ServeHTTP(recorder, r)

		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			if err := m.store.Update(ctx, key, recorder.body.Bytes(), m.ttl); err != nil {
				log.Warn().Err(err).Str("key", header).Msg("failed to store idempotent response")
			}
			return
		}
		m.release(ctx, key, header)
	})
}

// release frees key so the client can retry with the same Idempotency-Key.
func (m *IdempotencyMiddleware) release(ctx context.Context, key, header string) {
	if err := m.store.Release(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", header).Msg("failed to release idempotency key")
	}
}

func scopedKey(r *http.Request, key string) string {
	return r.Method + ":" + r.URL.Path + ":" + key
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
