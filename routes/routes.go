package routes

import (
	"wastebank/controllers"
	"wastebank/handlers"
	"wastebank/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func InitializeRoutes(router *gin.Engine) {
	loginLimiter := middleware.NewRateLimiter(rate.Limit(1), 5)
	resetLimiter := middleware.NewRateLimiter(rate.Limit(0.2), 3)

	router.POST("/login", loginLimiter.Limit(), controllers.Login)
	router.POST("/registration", controllers.Register)
	router.GET("/auth/me", controllers.AuthMe)

	router.POST("/forgot-password", resetLimiter.Limit(), controllers.RequestPasswordReset)
	router.POST("/verify-code", controllers.VerifyCode)
	router.POST("/reset-password", controllers.ResetPassword)

	router.GET("/waste-prices", handlers.GetWastePrices)
	router.GET("/receipt/:token", controllers.GetReceiptByToken)

	router.Static("/uploads", "./uploads")

	user := router.Group("/user")
	user.Use(middleware.AuthMiddleware("client"))
	{
		user.GET("/profile", handlers.GetMyProfile)
		user.PUT("/profile", handlers.UpdateMyProfile)
		user.GET("/transactions", handlers.GetMyTransactions)
		user.POST("/calculator", handlers.ExchangeCalculator)
		user.GET("/notifications", handlers.GetMyNotifications)
		user.PUT("/notifications/:id/read", handlers.MarkNotificationRead)
		user.GET("/notifications/ws", handlers.NotificationsWS)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware("admin"))
	{
		admin.GET("/users", controllers.ListUsers)
		admin.GET("/users/:id", controllers.GetUser)
		admin.PUT("/users/:id", controllers.UpdateUser)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.POST("/waste-products", controllers.CreateWasteProduct)
		admin.GET("/waste-products", controllers.GetAllWasteProducts)
		admin.GET("/waste-products/:id", controllers.GetWasteProduct)
		admin.PUT("/waste-products/:id", controllers.EditWasteProduct)
		admin.DELETE("/waste-products/:id", controllers.DeleteWasteProduct)

		admin.POST("/transactions", controllers.CreateTransaction)
		admin.GET("/transactions", controllers.GetAllTransactions)
		admin.GET("/transactions/:id", controllers.GetTransaction)
		admin.PUT("/transactions/:id", controllers.UpdateTransaction)
		admin.DELETE("/transactions/:id", controllers.DeleteTransaction)
		admin.GET("/transactions/:id/receipt", controllers.PrintTransactionReceipt)

		admin.POST("/notifications", controllers.CreateNotification)
		admin.GET("/notifications", controllers.GetAllNotifications)
		admin.PUT("/notifications/:id", controllers.UpdateNotification)
		admin.DELETE("/notifications/:id", controllers.DeleteNotification)

		admin.GET("/dashboard", controllers.Dashboard)
	}
}
