package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"tourbook/internal/logger"
	"tourbook/pkg/contextkeys"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		log := logger.FromContext(c.Request.Context())
		fields := []any{
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("duration", duration),
			slog.Int("size_bytes", c.Writer.Size()),
		}
		if user := CurrentUser(c); user != nil {
			fields = append(fields, slog.String("user_id", user.ID))
		}
		switch {
		case c.Writer.Status() >= 500:
			log.Error("HTTP Server Error", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("HTTP Client Error", fields...)
		default:
			log.Info("HTTP Request", fields...)
		}
	}
}

// DB injects the connection pool into the request, so handlers and services
// resolve their handle per request instead of holding one.
func DB(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), db)
		c.Next()
	}
}

// MustDB returns the request's database handle. Routes are always mounted
// behind DB, so a missing handle is a wiring bug.
func MustDB(c *gin.Context) *gorm.DB {
	val, exists := c.Get(string(contextkeys.DBContextKey))
	if !exists {
		panic("middleware: no database handle on request")
	}
	return val.(*gorm.DB)
}

func CORS() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}
	return cors.New(cfg)
}

// RateLimit throttles per client IP with a token bucket. Mounted on the auth
// routes to slow down credential stuffing.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	// drop buckets idle for longer than the refill horizon
	go func() {
		for range time.Tick(5 * time.Minute) {
			mu.Lock()
			for ip, cl := range clients {
				if time.Since(cl.lastSeen) > 10*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		cl, ok := clients[ip]
		if !ok {
			cl = &client{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
			clients[ip] = cl
		}
		cl.lastSeen = time.Now()
		allowed := cl.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "fail",
				"message": "Too many requests from this IP, please try again later",
			})
			return
		}
		c.Next()
	}
}
