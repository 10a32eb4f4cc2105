package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/permit-backend/config"
	"github.com/ikkim/permit-backend/internal/app/controller"
	"github.com/ikkim/permit-backend/internal/middleware"
)

type Router struct {
	applicationController *controller.ApplicationController
	wizardController      *controller.WizardController
	validateController    *controller.ValidateController
	uploadController      *controller.UploadController
	authController        *controller.AuthController
	adminController       *controller.AdminController
	eventsController      *controller.EventsController
	systemController      *controller.SystemController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	applicationController *controller.ApplicationController,
	wizardController *controller.WizardController,
	validateController *controller.ValidateController,
	uploadController *controller.UploadController,
	authController *controller.AuthController,
	adminController *controller.AdminController,
	eventsController *controller.EventsController,
	systemController *controller.SystemController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		applicationController: applicationController,
		wizardController:      wizardController,
		validateController:    validateController,
		uploadController:      uploadController,
		authController:        authController,
		adminController:       adminController,
		eventsController:      eventsController,
		systemController:      systemController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.config.Server.GinMode != "" {
		gin.SetMode(r.config.Server.GinMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS(r.config.CORS.AllowedOrigins))

	router.GET("/health", r.systemController.Health)

	v1 := router.Group("/api/v1")
	{
		applications := v1.Group("/applications")
		{
			applications.POST("", r.applicationController.Create)
			applications.PUT("/modify", r.applicationController.Modify)
			applications.POST("/search", r.applicationController.Search)
			applications.POST("/renew-search", r.applicationController.RenewSearch)
			applications.POST("/renew", r.applicationController.Renew)
		}
		v1.POST("/track", r.applicationController.Track)

		wizard := v1.Group("/wizard")
		{
			wizard.POST("", r.wizardController.Start)
			wizard.GET("/:id", r.wizardController.Get)
			wizard.PUT("/:id/:section", r.wizardController.UpdateSection)
			wizard.POST("/:id/property", r.wizardController.Property)
			wizard.POST("/:id/next", r.wizardController.Next)
			wizard.POST("/:id/previous", r.wizardController.Previous)
			wizard.POST("/:id/offices", r.wizardController.AddOffice)
			wizard.DELETE("/:id/offices/:office", r.wizardController.RemoveOffice)
			wizard.POST("/:id/submit", r.wizardController.Submit)
		}

		v1.POST("/validate/field", r.validateController.Field)

		v1.POST("/upload", r.uploadController.Upload)
		v1.POST("/upload-test", r.uploadController.UploadTest)
		v1.POST("/files/signed-url", r.uploadController.SignedURL)

		v1.GET("/system/database", r.systemController.Database)

		admin := v1.Group("/admin")
		{
			admin.POST("/login", r.authController.Login)

			protected := admin.Group("")
			protected.Use(r.authMiddleware.RequireAdmin())
			{
				protected.POST("/logout", r.authController.Logout)
				protected.GET("/applications", r.adminController.List)
				protected.PUT("/applications", r.adminController.Update)
				protected.DELETE("/applications", r.adminController.Delete)
				protected.GET("/applications/export", r.adminController.Export)
				protected.POST("/applications/import", r.adminController.Import)
				protected.GET("/events", r.eventsController.Stream)
			}
		}
	}

	return router
}
