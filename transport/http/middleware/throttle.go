package middleware

import (
	"net/http"
	"sync"
	"time"

	"bms/transport/http/response"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type throttleClient struct {
	limiter *rate.Limiter
	seen    time.Time
}

// throttle keeps one token bucket per client IP. Buckets idle longer than idle are dropped.
type throttle struct {
	mu      sync.Mutex
	clients map[string]*throttleClient
	limit   rate.Limit
	burst   int
	idle    time.Duration
}

func newThrottle(rps float64, burst int, idle time.Duration) *throttle {
	return &throttle{
		clients: make(map[string]*throttleClient),
		limit:   rate.Limit(rps),
		burst:   burst,
		idle:    idle,
	}
}

func (t *throttle) allow(ip string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	client, ok := t.clients[ip]
	if !ok {
		client = &throttleClient{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.clients[ip] = client
	}

	client.seen = now

	return client.limiter.AllowN(now, 1)
}

func (t *throttle) sweep(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for ip, client := range t.clients {
		if now.Sub(client.seen) > t.idle {
			delete(t.clients, ip)
		}
	}
}

func (t *throttle) run() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for now := range ticker.C {
		t.sweep(now)
	}
}

// Throttle guards credential endpoints with an in-process per-IP token bucket, on top of
// the redis backed RateLimit.
func (a *appMiddleware) Throttle() func(http.Handler) http.Handler {
	settings := a.config.App.AuthThrottle

	if !settings.Enable {
		return func(next http.Handler) http.Handler { return next }
	}

	a.throttleOnce.Do(func() {
		a.throttle = newThrottle(settings.RequestsPerSecond, settings.Burst, time.Duration(settings.IdleMinutes)*time.Minute)

		go a.throttle.run()
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := a.getClientIP(r)

			if !a.throttle.allow(clientIP, time.Now()) {
				log.Warn().Str("ip", clientIP).Str("path", r.URL.Path).Msg("auth request throttled")
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
