package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/metrics"
	"golang.org/x/time/rate"
)

// defaultIdleTTL is the shortest time a client bucket is kept without traffic.
const defaultIdleTTL = 10 * time.Minute

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// limiterStore keeps one token bucket per client key. Buckets idle for longer
// than idleTTL are swept out so the store does not grow with every client.
type limiterStore struct {
	m         sync.Map // map[string]*limiterEntry
	rps       float64
	burst     int
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep atomic.Int64
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	s := &limiterStore{rps: rps, burst: burst, now: time.Now}
	// a bucket idle past its full refill time equals a fresh one; with no
	// refill at all it never does, so nothing is evicted
	if rps > 0 {
		s.idleTTL = defaultIdleTTL
		if full := time.Duration(float64(burst) / rps * float64(time.Second)); full > s.idleTTL {
			s.idleTTL = full
		}
	}
	s.lastSweep.Store(s.now().UnixNano())
	return s
}

// get returns (and lazily creates) the limiter for key
func (s *limiterStore) get(key string) *rate.Limiter {
	now := s.now()
	s.sweep(now)
	v, ok := s.m.Load(key)
	if !ok {
		v, _ = s.m.LoadOrStore(key, &limiterEntry{lim: rate.NewLimiter(rate.Limit(s.rps), s.burst)})
	}
	e := v.(*limiterEntry)
	e.lastSeen.Store(now.UnixNano())
	return e.lim
}

// sweep drops idle buckets at most once per idleTTL.
func (s *limiterStore) sweep(now time.Time) {
	if s.idleTTL <= 0 {
		return
	}
	last := s.lastSweep.Load()
	if now.UnixNano()-last < int64(s.idleTTL) || !s.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}
	cutoff := now.Add(-s.idleTTL).UnixNano()
	s.m.Range(func(k, v any) bool {
		if v.(*limiterEntry).lastSeen.Load() < cutoff {
			s.m.Delete(k)
		}
		return true
	})
}

func clientKey(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// RateLimitMiddleware returns a Gin middleware enforcing a token-bucket limit per client IP.
// rps = allowed events per second, burst = maximum tokens in bucket.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	store := newLimiterStore(rps, burst)
	return func(c *gin.Context) {
		if !store.get(clientKey(c)).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
