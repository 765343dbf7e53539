package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/careops/hospital-api/internal/handler"
	authHandler "github.com/careops/hospital-api/internal/handler/auth"
	bookingHandler "github.com/careops/hospital-api/internal/handler/booking"
	doctorHandler "github.com/careops/hospital-api/internal/handler/doctor"
	medicineHandler "github.com/careops/hospital-api/internal/handler/medicine"
	paymentHandler "github.com/careops/hospital-api/internal/handler/payment"
	statsHandler "github.com/careops/hospital-api/internal/handler/stats"
	userHandler "github.com/careops/hospital-api/internal/handler/user"
	"github.com/careops/hospital-api/internal/middleware"
	"github.com/careops/hospital-api/internal/service/authz"
)

type Router struct {
	engine    *gin.Engine
	auth      *middleware.AuthMiddleware
	h         *handler.Handler
	authH     *authHandler.Handler
	bookingH  *bookingHandler.Handler
	paymentH  *paymentHandler.Handler
	doctorH   *doctorHandler.Handler
	statsH    *statsHandler.Handler
	userH     *userHandler.Handler
	medicineH *medicineHandler.Handler
	metrics   *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
	Timeout    time.Duration
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	h *handler.Handler,
	authH *authHandler.Handler,
	bookingH *bookingHandler.Handler,
	paymentH *paymentHandler.Handler,
	doctorH *doctorHandler.Handler,
	statsH *statsHandler.Handler,
	userH *userHandler.Handler,
	medicineH *medicineHandler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	registerValidators()
	engine := gin.New()

	r := &Router{
		engine:    engine,
		auth:      auth,
		h:         h,
		authH:     authH,
		bookingH:  bookingH,
		paymentH:  paymentH,
		doctorH:   doctorH,
		statsH:    statsH,
		userH:     userH,
		medicineH: medicineH,
		metrics:   initRouterMetrics(),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.setupHealthCheck(api)

	// Public routes
	r.authH.RegisterRoutes(api)

	// Protected routes: every surface is guarded by the route gate with
	// the allowed-role set derived from the permission rule table.
	dashboard := api.Group("/dashboard")
	dashboard.Use(r.auth.Authenticate())

	bookings := dashboard.Group("/bookings")
	{
		bookings.GET("", r.auth.RequireResource(authz.ResourceBookingsList), r.bookingH.ListBookings)
		bookings.POST("", r.auth.RequireResource(authz.ResourceBookingsCreate), r.bookingH.CreateBooking)
		bookings.POST("/:id/advance", r.auth.RequireResource(authz.ResourceBookingsAdvance), r.bookingH.AdvanceBooking)
	}

	payments := dashboard.Group("/payment")
	{
		payments.GET("", r.auth.RequireResource(authz.ResourcePaymentList), r.paymentH.ListUnpaid)
		payments.GET("/history", r.auth.RequireResource(authz.ResourcePaymentHistory), r.paymentH.ListHistory)
		payments.POST("", r.auth.RequireResource(authz.ResourcePaymentSettle), r.paymentH.Settle)
	}

	dashboard.GET("/doctors", r.auth.RequireResource(authz.ResourceDoctorsList), r.doctorH.ListDoctors)
	dashboard.GET("/departments", r.auth.RequireResource(authz.ResourceDoctorsList), r.doctorH.ListDepartments)
	dashboard.GET("/medicines", r.auth.RequireResource(authz.ResourceMedicinesList), r.medicineH.ListMedicines)

	dashboard.GET("/stats", r.auth.RequireResource(authz.ResourceStatsView), r.statsH.Overview)
	finance := dashboard.Group("/finance")
	{
		finance.GET("/stats", r.auth.RequireResource(authz.ResourceFinanceStats), r.statsH.FinanceStats)
		finance.GET("/dept_stats", r.auth.RequireResource(authz.ResourceFinanceStats), r.statsH.DeptRevenue)
	}

	users := dashboard.Group("/users")
	{
		users.GET("", r.auth.RequireResource(authz.ResourceUsersList), r.userH.ListUsers)
		users.DELETE("/:id", r.auth.RequireResource(authz.ResourceUsersDelete), r.userH.DeleteUser)
	}
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
	}
	rg.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func initRouterMetrics() *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
