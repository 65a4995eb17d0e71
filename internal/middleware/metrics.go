package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clucker_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// PostsCreated counts posts accepted by the post store.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clucker_posts_created_total",
		Help: "Total number of posts created",
	})

	// FollowToggles counts follow toggle outcomes (followed, unfollowed, noop).
	FollowToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clucker_follow_toggles_total",
		Help: "Total number of follow toggles by outcome",
	}, []string{"outcome"})

	// LoginAttempts counts credential verification outcomes (success, failure).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clucker_login_attempts_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})
)

// InitMetrics creates the fiberprometheus middleware for HTTP-level metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the HTTP metrics handler for the given instance.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
