package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/salustele/teleconsult-api/internal/audit"
	"github.com/salustele/teleconsult-api/internal/config"
	"github.com/salustele/teleconsult-api/internal/handlers"
	infraRepo "github.com/salustele/teleconsult-api/internal/infra/repository"
	"github.com/salustele/teleconsult-api/internal/middleware"
	"github.com/salustele/teleconsult-api/internal/redisclient"
	ucTeleconsult "github.com/salustele/teleconsult-api/internal/usecase/teleconsult"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	teleRepo := infraRepo.NewTeleconsultGormRepository(db)
	locker := redisclient.NewAppointmentLocker(rdb, 10*time.Second)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — TELECONSULT
	// ======================================================
	roomUC := ucTeleconsult.NewGetRoomDescriptor(teleRepo, cfg)
	registerUC := ucTeleconsult.NewRegisterDoctorPeer(teleRepo, locker)
	finalizeUC := ucTeleconsult.NewFinalizeSession(teleRepo, locker)
	availabilityUC := ucTeleconsult.NewCheckAvailability(teleRepo)
	startUC := ucTeleconsult.NewStartConsultation(teleRepo, locker, auditDispatcher)
	cancelUC := ucTeleconsult.NewCancelAppointment(teleRepo, locker, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	teleconsultHandler := handlers.NewTeleconsultHandler(
		roomUC,
		registerUC,
		finalizeUC,
		availabilityUC,
		startUC,
		cancelUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// TELECONSULT
			// ------------------------------
			secured.GET("/appointments/:id/teleconsult", teleconsultHandler.Room)
			secured.POST("/appointments/:id/teleconsult/peer", teleconsultHandler.RegisterPeer)
			secured.POST("/appointments/:id/teleconsult/finish", teleconsultHandler.Finish)
			secured.GET("/appointments/:id/teleconsult/availability", teleconsultHandler.Availability)

			secured.POST("/appointments/:id/teleconsult/start", teleconsultHandler.Start)
			secured.POST("/appointments/:id/cancel", teleconsultHandler.Cancel)

			secured.GET("/appointments/:id/audit", auditLogsHandler.List)
		}
	}
}
