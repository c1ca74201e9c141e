package transport

import (
	"html/template"

	"eventboard/internal/service"
	"eventboard/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(eventHandler *EventHandler, authHandler *AuthHandler, authService service.AuthService, templatesGlob string) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))
	router.Use(middleware.Identify(authService))

	if templatesGlob != "" {
		router.SetFuncMap(template.FuncMap{
			"add": func(a, b int) int { return a + b },
			"sub": func(a, b int) int { return a - b },
		})
		router.LoadHTMLGlob(templatesGlob)

		// Web interface routes. The listing pages accept the same query
		// parameters as the JSON listing, so every page is re-enterable.
		router.GET("/", eventHandler.RenderEventsPage)
		router.GET("/events", eventHandler.RenderEventsPage)
	}

	// API routes
	api := router.Group("/api/v1")
	{
		events := api.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("/manage", eventHandler.ManageEvent)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/users/:id/authorize", authHandler.AuthorizeUser)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
