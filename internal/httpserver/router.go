package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires all routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	if deps.Uploads != nil {
		router.Static("/files", deps.Uploads.Dir())
	}

	api := router.Group("/api/v1")

	// Unauthenticated staff auth endpoints.
	api.POST("/admin/login", adminLoginHandler(deps, logger))
	api.POST("/admin/password-reset", adminPasswordResetRequestHandler(deps, logger))
	api.POST("/admin/password-reset/confirm", adminPasswordResetConfirmHandler(deps, logger))

	// Wizard endpoints, authenticated solely by the link token.
	ob := api.Group("/onboarding")
	ob.GET("/:token", onboardingResolveHandler(deps, logger))
	ob.PUT("/:token/progress", onboardingSaveHandler(deps, logger))
	ob.POST("/:token/submit", onboardingSubmitHandler(deps, logger))

	// Customer portal.
	portal := api.Group("/portal")
	portal.POST("/register", portalRegisterHandler(deps, logger))
	portal.POST("/login", portalLoginHandler(deps, logger))
	portal.GET("/status", portalAuth(deps, logger), portalStatusHandler(deps, logger))

	// Staff console, behind admin token auth.
	admin := api.Group("", adminAuth(deps, logger))
	admin.POST("/admin/logout", adminLogoutHandler(deps))
	admin.GET("/admin/users", adminListUsersHandler(deps, logger))
	admin.POST("/admin/users", superAdminOnly(), adminCreateUserHandler(deps, logger))
	admin.DELETE("/admin/users/:id", superAdminOnly(), adminDeleteUserHandler(deps, logger))

	admin.GET("/customers", listCustomersHandler(deps, logger))
	admin.POST("/customers", createCustomerHandler(deps, logger))
	admin.GET("/customers/:id", getCustomerHandler(deps, logger))
	admin.PATCH("/customers/:id", updateCustomerHandler(deps, logger))
	admin.DELETE("/customers/:id", deleteCustomerHandler(deps, logger))
	admin.POST("/customers/:id/machines/:machineID/clone", cloneMachineHandler(deps, logger))
	admin.PUT("/customers/:id/tasks/:taskID", setTaskStatusHandler(deps, logger))
	admin.PUT("/customers/:id/stages/:stageID/tasks", setStageTasksHandler(deps, logger))
	admin.PUT("/customers/:id/stage", advanceStageHandler(deps, logger))
	admin.GET("/customers/:id/progress", customerProgressHandler(deps, logger))
	admin.GET("/customers/:id/estimate", estimateHandler(deps, logger))
	admin.POST("/customers/:id/notes", addNoteHandler(deps, logger))
	admin.PATCH("/customers/:id/notes/:noteID", updateNoteHandler(deps, logger))
	admin.DELETE("/customers/:id/notes/:noteID", deleteNoteHandler(deps, logger))

	admin.GET("/reports/commissions", commissionsHandler(deps, logger))
	admin.GET("/settings", getSettingsHandler(deps, logger))
	admin.PUT("/settings", putSettingsHandler(deps, logger))
	admin.POST("/uploads", uploadHandler(deps, logger))
	admin.POST("/email/send", sendEmailHandler(deps, logger))
	admin.POST("/email/test", testEmailHandler(deps, logger))

	return router
}
