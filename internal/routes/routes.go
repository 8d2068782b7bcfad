package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberia-api/internal/audit"
	"github.com/BruksfildServices01/barberia-api/internal/auth"
	"github.com/BruksfildServices01/barberia-api/internal/cache"
	"github.com/BruksfildServices01/barberia-api/internal/config"
	"github.com/BruksfildServices01/barberia-api/internal/domain/identity"
	"github.com/BruksfildServices01/barberia-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barberia-api/internal/infra/repository"
	"github.com/BruksfildServices01/barberia-api/internal/metrics"
	"github.com/BruksfildServices01/barberia-api/internal/middleware"
	"github.com/BruksfildServices01/barberia-api/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barberia-api/internal/usecase/appointment"
	ucDashboard "github.com/BruksfildServices01/barberia-api/internal/usecase/dashboard"
	ucIdentity "github.com/BruksfildServices01/barberia-api/internal/usecase/identity"
	ucServices "github.com/BruksfildServices01/barberia-api/internal/usecase/services"
	ucUsers "github.com/BruksfildServices01/barberia-api/internal/usecase/users"
	"github.com/BruksfildServices01/barberia-api/internal/validators"
)

// Deps are the process-scoped resources the routes share. Cache, Metrics
// and Audit are optional.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Cache   cache.Cache
	Metrics *metrics.Metrics
	Audit   *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	loc := timezone.Location(cfg.Timezone)

	validators.RegisterBinding()

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(d.DB)
	statsRepo := infraRepo.NewStatsGormRepository(d.DB)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	stats := ucDashboard.NewStats(statsRepo, d.Cache, cfg.StatsCacheTTL, d.Metrics)

	appointments := ucAppointment.Deps{
		Repo:     appointmentRepo,
		Audit:    d.Audit,
		Metrics:  d.Metrics,
		Location: loc,
		OnChange: stats.Invalidate,
	}

	register := ucIdentity.NewRegister(userRepo, d.Audit, cfg.BcryptCost, stats.Invalidate)
	login := ucIdentity.NewLogin(userRepo, tokens)
	users := ucUsers.New(userRepo, d.Audit, stats.Invalidate)
	services := ucServices.New(serviceRepo, d.Audit, stats.Invalidate)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	authHandler := handlers.NewAuthHandler(register, login)
	meHandler := handlers.NewMeHandler()
	userHandler := handlers.NewUserHandler(users)
	serviceHandler := handlers.NewServiceHandler(services)
	appointmentHandler := handlers.NewAppointmentHandler(appointments)
	dashboardHandler := handlers.NewDashboardHandler(stats)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB))

	adminOnly := middleware.RoleGate(userRepo, tokens, identity.RoleAdmin)
	anyRole := middleware.RoleGate(userRepo, tokens, identity.RoleAdmin, identity.RoleBarber, identity.RoleCustomer)

	// ------------------------------
	// 🩺 HEALTH / METRICS
	// ------------------------------
	r.GET("/health", healthHandler.Live)
	r.GET("/health/db", healthHandler.DB)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// ------------------------------
	// 🔐 IDENTITY
	// ------------------------------
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/me", anyRole, meHandler.GetMe)

	// ------------------------------
	// USERS
	// ------------------------------
	usuarios := r.Group("/usuarios")
	{
		usuarios.GET("", userHandler.List)
		usuarios.GET("/:id", userHandler.Get)
		usuarios.PUT("/:id", adminOnly, userHandler.Update)
		usuarios.DELETE("/:id", adminOnly, userHandler.Delete)
	}

	// ------------------------------
	// SERVICES
	// ------------------------------
	servicios := r.Group("/servicios")
	{
		servicios.POST("", serviceHandler.Create)
		servicios.GET("", serviceHandler.List)
		servicios.GET("/:id", serviceHandler.Get)
		servicios.PUT("/:id", serviceHandler.Update)
		servicios.DELETE("/:id", serviceHandler.Delete)
	}

	// ------------------------------
	// APPOINTMENTS
	// ------------------------------
	citas := r.Group("/citas")
	{
		citas.POST("", appointmentHandler.Create)
		citas.GET("", appointmentHandler.List)
		citas.GET("/disponibilidad/:fecha_hora", appointmentHandler.Availability)
		citas.GET("/:id", appointmentHandler.Get)
		citas.PUT("/:id", appointmentHandler.Update)
		citas.DELETE("/:id", appointmentHandler.Delete)
		citas.PATCH("/:id/cancelar", appointmentHandler.Cancel)
		citas.PATCH("/:id/completar", appointmentHandler.Complete)
	}

	// ------------------------------
	// 📊 DASHBOARD (ADMIN)
	// ------------------------------
	dash := r.Group("/dashboard", adminOnly)
	{
		dash.POST("/stats", dashboardHandler.Stats)
		dash.POST("/total-usuarios", dashboardHandler.TotalUsers)
		dash.POST("/total-citas", dashboardHandler.TotalAppointments)
		dash.POST("/total-servicios", dashboardHandler.TotalServices)
		dash.POST("/citas-por-estado", dashboardHandler.ByStatus)
		dash.POST("/citas-por-dia", dashboardHandler.ByDay)
		dash.POST("/citas-por-mes", dashboardHandler.ByMonth)
	}

	r.GET("/auditoria", adminOnly, auditLogsHandler.List)
}
