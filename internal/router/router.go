package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/pharmaflow/pharmacy-api/internal/handler"
	authHandler "github.com/pharmaflow/pharmacy-api/internal/handler/auth"
	formulaHandler "github.com/pharmaflow/pharmacy-api/internal/handler/formula"
	orderHandler "github.com/pharmaflow/pharmacy-api/internal/handler/order"
	patientHandler "github.com/pharmaflow/pharmacy-api/internal/handler/patient"
	"github.com/pharmaflow/pharmacy-api/internal/middleware"
	"github.com/pharmaflow/pharmacy-api/internal/model"
)

type Config struct {
	RateLimit rate.Limit
	RateBurst int
}

// New wires middleware and routes into a gin engine. Auth routes are
// rate limited; catalog writes, status updates and the patient
// directory are admin-only.
func New(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	formulaH *formulaHandler.Handler,
	orderH *orderHandler.Handler,
	patientH *patientHandler.Handler,
	cfg Config,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return model.OrderStatus(fl.Field().String()).Valid()
		})
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery())

	engine.GET("/healthz", handler.HealthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	public := v1.Group("")
	public.Use(limiter.RateLimit())
	authH.RegisterRoutes(public)

	authed := v1.Group("")
	authed.Use(auth.RequireAuth())
	{
		authed.GET("/formulas", formulaH.List)
		authed.GET("/orders", orderH.List)
		authed.POST("/orders", orderH.Create)
		authed.GET("/patients/me", patientH.Me)
		authed.PUT("/patients/me", patientH.UpdateMe)
	}

	admin := v1.Group("")
	admin.Use(auth.RequireAuth(), auth.RequireRole(model.RoleAdmin))
	{
		admin.POST("/formulas", formulaH.Save)
		admin.DELETE("/formulas/:id", formulaH.Delete)
		admin.PATCH("/orders/:id/status", orderH.SetStatus)
		admin.GET("/patients", patientH.List)
	}

	return engine
}
