package routes

import (
	"os"
	"strings"

	"crmportal-backend/config"
	"crmportal-backend/controllers"
	"crmportal-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
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
		auth.POST("/logout", controllers.Logout)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer portal routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
		api.GET("/services", controllers.GetMyServices)
		api.GET("/invoices", controllers.GetMyInvoices)

		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
		}

		// Administration routes
		admin := api.Group("/admin")
		admin.Use(utils.AdminMiddleware())
		{
			customers := admin.Group("/customers")
			{
				customers.POST("", controllers.CreateCustomer)
				customers.GET("", controllers.GetCustomers)
				customers.GET("/eligible-users", controllers.GetEligibleUsers)
				customers.GET("/:id", controllers.GetCustomer)
				customers.PUT("/:id", controllers.UpdateCustomer)
				customers.DELETE("/:id", controllers.DeleteCustomer)
				customers.GET("/:id/services", controllers.GetCustomerServices)
				customers.GET("/:id/invoices", controllers.GetCustomerInvoices)
				customers.GET("/:id/activities", controllers.GetCustomerActivities)
			}

			services := admin.Group("/services")
			{
				services.POST("", controllers.CreateService)
				services.PUT("/:id", controllers.UpdateService)
			}

			invoices := admin.Group("/invoices")
			{
				invoices.POST("", controllers.CreateInvoice)
				invoices.PUT("/:id", controllers.UpdateInvoice)
			}

			activities := admin.Group("/activities")
			{
				activities.POST("", controllers.CreateActivity)
				activities.GET("", controllers.GetActivities)
				activities.POST("/:id/complete", controllers.CompleteActivity)
			}

			admin.GET("/crm/overview", controllers.GetCRMOverview)
		}
	}

	return r
}
