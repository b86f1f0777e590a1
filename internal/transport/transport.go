package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DanekaBm/eventhub/internal/transport/middleware"
)

type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Event      *EventHandler
	Engagement *EngagementHandler
	Ticket     *TicketHandler
}

func InitRoutes(h *Handlers, auth middleware.Authenticator, uploadsDir string, timeout time.Duration) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(timeout))

	// Stored images
	router.Static("/uploads", uploadsDir)

	requireAuth := middleware.Auth(auth)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/logout", requireAuth, h.Auth.Logout)
			authGroup.GET("/me", requireAuth, h.Auth.Me)
		}

		// Event routes
		events := api.Group("/events")
		{
			events.GET("", h.Event.GetAllEvents)
			events.GET("/:id", h.Event.GetEvent)
			events.POST("", requireAuth, h.Event.CreateEvent)
			events.PUT("/:id", requireAuth, h.Event.UpdateEvent)
			events.DELETE("/:id", requireAuth, h.Event.DeleteEvent)
			events.POST("/:id/image", requireAuth, h.Event.UploadEventImage)

			// Engagement routes
			events.POST("/:id/like", requireAuth, h.Engagement.ToggleLike)
			events.POST("/:id/dislike", requireAuth, h.Engagement.ToggleDislike)
			events.POST("/:id/comment", requireAuth, h.Engagement.AddComment)
			events.DELETE("/:id/comment/:comment_id", requireAuth, h.Engagement.RemoveComment)

			// Purchase routes
			events.POST("/:id/buy-tickets", requireAuth, h.Ticket.BuyTickets)
		}

		// Ticket routes
		tickets := api.Group("/tickets")
		{
			tickets.GET("/my", requireAuth, h.Ticket.MyTickets)
			tickets.GET("/:id", requireAuth, h.Ticket.GetTicket)
		}

		// User routes
		users := api.Group("/users")
		{
			users.GET("/:id", h.User.GetUser)
			users.PUT("/me", requireAuth, h.User.UpdateProfile)
			users.PUT("/me/password", requireAuth, h.User.ChangePassword)
			users.POST("/me/avatar", requireAuth, h.User.UploadAvatar)

			// Admin routes
			users.GET("", requireAuth, h.User.GetAllUsers)
			users.DELETE("/:id", requireAuth, h.User.DeleteUser)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
