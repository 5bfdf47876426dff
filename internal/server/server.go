package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hakimfr/reservia/config"
	"github.com/hakimfr/reservia/internal/handlers"
	"github.com/hakimfr/reservia/internal/middleware"
	"github.com/hakimfr/reservia/internal/queue"
	"github.com/hakimfr/reservia/internal/renderer"
	"github.com/hakimfr/reservia/internal/repositories"
	"github.com/hakimfr/reservia/internal/services"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	eventRepo := repositories.NewEventRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)

	var notifier services.Notifier
	if cfg.RabbitMQURL != "" {
		notifier = queue.NewPublisher(cfg.RabbitMQURL)
	}

	reservationService := services.NewReservationService(eventRepo, reservationRepo, notifier, cfg.TicketDir)
	ticketService := services.NewTicketService(ticketRepo, renderer.NewPDFRenderer(cfg.JWTSecret))

	r := gin.Default()

	setupRoutes(r, db, reservationService, ticketService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, reservationService *services.ReservationService, ticketService *services.TicketService) {
	r.Use(middleware.DatabaseMiddleware(db))

	reservations := handlers.NewReservationHandler(reservationService)
	tickets := handlers.NewTicketHandler(ticketService)

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		eventProtected := protected.Group("/events")
		{
			eventProtected.GET("/manage", handlers.ListAllEvents)
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.PATCH("/:id/status", handlers.ChangeEventStatus)
			eventProtected.DELETE("/:id", handlers.DeleteEvent)
		}

		reservationProtected := protected.Group("/reservations")
		{
			reservationProtected.POST("", reservations.Create)
			reservationProtected.GET("", reservations.ListAll)
			reservationProtected.GET("/my", reservations.ListMine)
			reservationProtected.GET("/:id", reservations.GetOne)
			reservationProtected.PATCH("/:id/status", reservations.UpdateStatus)
			reservationProtected.PATCH("/:id/cancel", reservations.Cancel)
		}

		ticketProtected := protected.Group("/tickets")
		{
			ticketProtected.GET("", tickets.ListAll)
			ticketProtected.GET("/my", tickets.ListMine)
			ticketProtected.GET("/:id", tickets.GetOne)
			ticketProtected.GET("/:id/download", tickets.Download)
			ticketProtected.DELETE("/:id", tickets.Delete)
		}
	}
}
