package ratelimiter

import (
	"context"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/store/memory"

	"github.com/appforge/pipegate/middleware"
	"github.com/appforge/pipegate/util"
)

const (
	logTag        = "[ratelimiter]"
	envRateLimit  = "RATE_LIMIT"
	defaultPerMin = 120
)

var (
	instance *Ratelimiter
	once     sync.Once
)

// Ratelimiter limits the number of requests made per client IP.
// Creating direct instances of Ratelimiter should be avoided;
// ratelimiter.Instance returns the singleton.
type Ratelimiter struct {
	sync.Mutex
	limiters map[string]*limiter.Limiter
	perMin   int64
}

// Instance returns the singleton instance of the ratelimiter,
// configured from the RATE_LIMIT env var (requests per minute per
// IP, 0 disables limiting).
func Instance() *Ratelimiter {
	once.Do(func() {
		perMin := int64(defaultPerMin)
		if env := os.Getenv(envRateLimit); env != "" {
			parsed, err := strconv.ParseInt(env, 10, 64)
			if err != nil {
				log.Errorln(logTag, ":", envRateLimit, "must be an integer:", err)
			} else {
				perMin = parsed
			}
		}
		instance = &Ratelimiter{
			limiters: make(map[string]*limiter.Limiter),
			perMin:   perMin,
		}
	})
	return instance
}

// Limit returns the rate limiting middleware over the singleton.
func Limit() middleware.Middleware {
	return Instance().rateLimit
}

func (rl *Ratelimiter) rateLimit(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rl.perMin <= 0 {
			h(w, r)
			return
		}

		key := remoteIP(r)
		if rl.limitExceeded(key) {
			util.WriteBackMessage(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		h(w, r)
	}
}

func (rl *Ratelimiter) limitExceeded(key string) bool {
	l := rl.getLimiter(key)
	c, err := l.Get(context.Background(), key)
	if err != nil {
		// an error getting the limiter context ...
		log.Errorln(logTag, ":", err)
		return false
	}
	return c.Reached
}

func (rl *Ratelimiter) getLimiter(key string) *limiter.Limiter {
	rl.Lock()
	defer rl.Unlock()
	l, exists := rl.limiters[key]
	if !exists {
		store := memory.NewStore()
		rate := limiter.Rate{
			Limit:  rl.perMin,
			Period: 1 * time.Minute,
		}
		l = limiter.New(store, rate)
		rl.limiters[key] = l
	}
	return l
}

// remoteIP extracts the client address used as the limiter key.
func remoteIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
