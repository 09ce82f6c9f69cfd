package routes

import (
	"restropos-backend/config"
	"restropos-backend/controllers"
	"restropos-backend/services"
	"restropos-backend/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg config.Config, domainStore *store.Store, recommender *services.RecommendationService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	menuController := &controllers.MenuController{Store: domainStore}
	tableController := &controllers.TableController{Store: domainStore}
	orderController := &controllers.OrderController{Store: domainStore}
	staffController := &controllers.StaffController{Store: domainStore}
	attendanceController := &controllers.AttendanceController{Store: domainStore}
	settingsController := &controllers.SettingsController{Store: domainStore}
	reportController := &controllers.ReportController{Store: domainStore}
	dashboardController := &controllers.DashboardController{Store: domainStore}
	recommendationController := &controllers.RecommendationController{Store: domainStore, Service: recommender}

	api := r.Group("/api")
	{
		// Menu routes
		menu := api.Group("/menu")
		{
			menu.GET("", menuController.GetMenu)
			menu.POST("/items", menuController.CreateMenuItem)
			menu.PUT("/items/:id", menuController.UpdateMenuItem)
			menu.DELETE("/items/:id", menuController.DeleteMenuItem)
			menu.POST("/categories", menuController.CreateCategory)
			menu.PUT("/categories/:id", menuController.RenameCategory)
			menu.DELETE("/categories/:id", menuController.DeleteCategory)
		}

		// Table routes
		tables := api.Group("/tables")
		{
			tables.POST("", tableController.CreateTable)
			tables.GET("", tableController.GetTables)
			tables.PUT("/:id", tableController.UpdateTable)
			tables.DELETE("/:id", tableController.DeleteTable)
			tables.PUT("/:id/status", tableController.UpdateTableStatus)
			tables.PUT("/:id/waiter", tableController.AssignWaiter)
			tables.PUT("/:id/items", tableController.SetTableItem)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", orderController.PlaceOrder)
			orders.GET("", orderController.GetOrders)
			orders.GET("/:id", orderController.GetOrder)
			orders.PUT("/:id/status", orderController.UpdateOrderStatus)
			orders.PUT("/:id/payment", orderController.UpdatePayment)
			orders.GET("/:id/bill", orderController.GetBill)
			orders.GET("/:id/kot", orderController.GetKitchenTicket)
		}

		// Staff routes
		staff := api.Group("/staff")
		{
			staff.POST("", staffController.AddStaff)
			staff.GET("", staffController.GetStaff)
			staff.PUT("/:id", staffController.UpdateStaff)
			staff.DELETE("/:id", staffController.DeleteStaff)
		}

		// Attendance routes
		attendance := api.Group("/attendance")
		{
			attendance.POST("/check-in", attendanceController.CheckIn)
			attendance.POST("/check-out", attendanceController.CheckOut)
			attendance.POST("/break/start", attendanceController.StartBreak)
			attendance.POST("/break/end", attendanceController.EndBreak)
			attendance.GET("/logs", attendanceController.GetTimeLogs)
			attendance.GET("/summary", attendanceController.GetSummary)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", settingsController.GetSettings)
			settings.PUT("", settingsController.UpdateSettings)
		}

		// Reports routes
		api.GET("/reports", reportController.GetReportAnalytics)
		api.GET("/reports/daily", reportController.GetDailyRevenue)

		// Dashboard routes
		api.GET("/dashboard", dashboardController.GetDashboardOverview)

		// Recommendation routes
		api.GET("/recommendations", recommendationController.GetRecommendation)
	}

	return r
}
