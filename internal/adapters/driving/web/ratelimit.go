package web

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles API requests with a token bucket.
// The burst equals the per-second rate, so a page can fire a short run of
// edits without waiting.
type RateLimiter struct {
	bucket *rate.Limiter
	limit  int
}

// NewRateLimiter allows perSecond requests per second.
// Zero or less disables limiting.
func NewRateLimiter(perSecond int) *RateLimiter {
	if perSecond <= 0 {
		return &RateLimiter{bucket: rate.NewLimiter(rate.Inf, 0)}
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), perSecond),
		limit:  perSecond,
	}
}

// Limit returns the configured requests per second, 0 when unlimited.
func (r *RateLimiter) Limit() int {
	return r.limit
}

// Remaining returns the whole tokens currently available.
func (r *RateLimiter) Remaining() int {
	if r.limit == 0 {
		return math.MaxInt32
	}
	return max(0, int(r.bucket.Tokens()))
}

// Middleware rejects requests over the limit with 429 Too Many Requests.
func (r *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if r.limit == 0 {
			next.ServeHTTP(w, req)
			return
		}

		reservation := r.bucket.Reserve()
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			w.Header().Set(HeaderRateLimit, strconv.Itoa(r.limit))
			w.Header().Set(HeaderRateRemaining, "0")
			w.Header().Set(HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(delay)))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set(HeaderRateLimit, strconv.Itoa(r.limit))
		w.Header().Set(HeaderRateRemaining, strconv.Itoa(r.Remaining()))
		next.ServeHTTP(w, req)
	})
}

// retryAfterSeconds rounds delay up to whole seconds, at least 1.
func retryAfterSeconds(delay time.Duration) int {
	return max(1, int(math.Ceil(delay.Seconds())))
}
