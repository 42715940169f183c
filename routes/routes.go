package routes

import (
	"coachpro-backend/config"
	"coachpro-backend/controllers"
	"coachpro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://admin.coachpro.app",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Payment-plan endpoints keep the path shapes the admin frontend
	// already calls, including the legacy /detalle fallback.
	payments := r.Group("/payments")
	payments.Use(utils.AuthMiddleware())
	{
		payments.POST("/create/payment", controllers.CreatePlan)
		payments.GET("/get/payment", controllers.GetPlans)
		payments.GET("/get/payment/:planCode", controllers.GetPlan)
		payments.GET("/get/payment/:planCode/status", controllers.GetPlanStatus)
		payments.PUT("/update/payment/:planCode", controllers.UpdatePlan)
		payments.PUT("/update/payment/:planCode/:detailCode", controllers.UpdateInstallment)
		payments.PUT("/update/payment/:planCode/detalle/:detailCode", controllers.UpdateInstallment)
		payments.POST("/create/payment/:planCode/detalle", controllers.AddInstallment)
		payments.DELETE("/delete/payment/:planCode/detalle/:detailCode", controllers.DeleteInstallment)

		payments.POST("/update/payment/:planCode/split/:detailCode", controllers.SplitInstallment)
		payments.POST("/update/payment/:planCode/reschedule", controllers.ReschedulePlan)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		// Program routes
		programs := api.Group("/programs")
		{
			programs.POST("", controllers.CreateProgram)
			programs.GET("", controllers.GetPrograms)
			programs.GET("/:id", controllers.GetProgram)
			programs.PUT("/:id", controllers.UpdateProgram)
			programs.DELETE("/:id", controllers.DeleteProgram)
		}

		// Payment history routes
		history := api.Group("/paymentsHistory")
		{
			history.POST("", controllers.RecordPayment)
			history.GET("", controllers.GetPayments)
			history.PUT("/:id", controllers.UpdatePayment)
			history.DELETE("/:id", controllers.DeletePayment)
		}

		// Tickets board routes
		tickets := api.Group("/tickets")
		{
			tickets.POST("", controllers.CreateTicket)
			tickets.GET("", controllers.GetTickets)
			tickets.PUT("/:id", controllers.UpdateTicket)
			tickets.PUT("/:id/move", controllers.MoveTicket)
			tickets.DELETE("/:id", controllers.DeleteTicket)
		}

		// User management (admin only)
		users := api.Group("/users")
		users.Use(utils.RequireRole("admin"))
		{
			users.GET("", controllers.GetUsers)
			users.POST("", controllers.AddUser)
			users.PUT("/:id", controllers.UpdateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
