package routes

import (
	"github.com/kev405/toolflow/config"
	"github.com/kev405/toolflow/internal/api/handlers"
	"github.com/kev405/toolflow/internal/api/middleware"
	"github.com/kev405/toolflow/internal/models"
	"github.com/kev405/toolflow/internal/s3"
	"github.com/kev405/toolflow/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires handlers, middleware and CORS for the dashboard API.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	userHandler := &handlers.UserHandler{DB: db}
	headquarterHandler := &handlers.HeadquarterHandler{DB: db}
	toolHandler := &handlers.ToolHandler{DB: db, S3Uploader: s3Uploader}
	partHandler := &handlers.VehiclePartHandler{DB: db}
	vehicleHandler := &handlers.VehicleHandler{DB: db, S3Uploader: s3Uploader}
	loanHandler := &handlers.LoanHandler{DB: db}
	transferHandler := &handlers.TransferHandler{DB: db, Hub: wsHub}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	// WebSocket feed (token passed as query parameter).
	router.GET("/ws", webSocketHandler.ServeWs)

	// Public authentication route.
	router.POST("/api/auth/login", userHandler.Login)

	// Every other route goes through JWT auth plus the role -> path table.
	protected := router.Group("/")
	protected.Use(middleware.Authenticate())
	protected.Use(middleware.AuthorizeRoutes())
	{
		// Scoped availability queries keep their historical paths.
		protected.GET("/tools/all", toolHandler.GetAllTools)
		protected.GET("/tools/available-for-transfer", toolHandler.GetAvailableForTransfer)
		protected.GET("/vehicle/available-for-transfer", vehicleHandler.GetAvailableForTransfer)

		api := protected.Group("/api")
		{
			headquarters := api.Group("/headquarters")
			{
				headquarters.POST("", headquarterHandler.CreateHeadquarter)
				headquarters.GET("", headquarterHandler.GetAllHeadquarters)
				headquarters.GET("/:id", headquarterHandler.GetHeadquarterByID)
				headquarters.PUT("/:id", headquarterHandler.UpdateHeadquarter)
				headquarters.DELETE("/:id", headquarterHandler.DeleteHeadquarter)
			}

			tools := api.Group("/tools")
			{
				tools.POST("", toolHandler.CreateTool)
				tools.GET("", toolHandler.GetAllTools)
				tools.GET("/:id", toolHandler.GetToolByID)
				tools.PUT("/:id", toolHandler.UpdateTool)
				tools.DELETE("/:id", toolHandler.DeleteTool)
				tools.POST("/:id/photo", toolHandler.UploadToolPhoto)
			}

			parts := api.Group("/vehicle-parts")
			{
				parts.GET("/available-for-transfer", partHandler.GetAvailableForTransfer)
				parts.POST("", partHandler.CreateVehiclePart)
				parts.GET("", partHandler.GetAllVehicleParts)
				parts.GET("/:id", partHandler.GetVehiclePartByID)
				parts.PUT("/:id", partHandler.UpdateVehiclePart)
				parts.DELETE("/:id", partHandler.DeleteVehiclePart)
			}

			vehicles := api.Group("/vehicles")
			{
				vehicles.POST("", vehicleHandler.CreateVehicle)
				vehicles.GET("", vehicleHandler.GetAllVehicles)
				vehicles.GET("/:id", vehicleHandler.GetVehicleByID)
				vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
				vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
				vehicles.POST("/:id/photo", vehicleHandler.UploadVehiclePhoto)
			}

			loans := api.Group("/loans")
			{
				loans.POST("", loanHandler.CreateLoan)
				loans.GET("", loanHandler.GetAllLoans)
				loans.GET("/:id", loanHandler.GetLoanByID)
				loans.PUT("/:id/return", loanHandler.ReturnLoan)
				loans.DELETE("/:id", loanHandler.DeleteLoan)
			}

			transfers := api.Group("/transfers")
			{
				transfers.POST("", transferHandler.CreateTransfer)
				transfers.GET("", transferHandler.ListTransfers)
				transfers.GET("/:id", transferHandler.GetTransferByID)
				transfers.PUT("/:id", transferHandler.UpdateTransfer)
				transfers.PUT("/:id/accept", transferHandler.AcceptTransfer)
				transfers.PUT("/:id/cancel", transferHandler.CancelTransfer)
			}

			// User management is restricted to administrators on top of
			// the path table.
			users := api.Group("/users")
			users.Use(middleware.Authorize(models.RoleAdministrator))
			{
				users.POST("", userHandler.CreateUser)
				users.GET("", userHandler.GetAllUsers)
				users.GET("/:id", userHandler.GetUserByID)
				users.PUT("/:id", userHandler.UpdateUser)
				users.DELETE("/:id", userHandler.DeleteUser)
			}
		}
	}

	return router
}
