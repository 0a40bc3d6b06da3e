package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/amara-chambers/amara-law-api/config"
	"github.com/amara-chambers/amara-law-api/controllers"
	"github.com/amara-chambers/amara-law-api/middleware"
	"github.com/amara-chambers/amara-law-api/models"
	"github.com/amara-chambers/amara-law-api/services"
)

func main() {
	log.Println("Starting Amara Chambers API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.User{}, &models.Appointment{}, &models.Blog{}, &models.Case{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Blog images need S3; everything else works without it
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		log.Println("S3 service initialized")
	} else {
		log.Println("AWS_S3_BUCKET not set, blog image uploads disabled")
	}

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires middleware and the full route table
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	auth := middleware.EnsureValidToken(cfg)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	lawyerOnly := middleware.RequireRoles(models.RoleLawyer)
	adminOrLawyer := middleware.RequireRoles(models.RoleAdmin, models.RoleLawyer)
	publicLimiter := middleware.NewRateLimiter(cfg.PublicRateLimit, int(cfg.PublicRateLimit)*2).Middleware()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// User profiles
		users := v1.Group("/users", auth)
		{
			users.POST("", controllers.CreateUser)
			users.GET("/me", controllers.GetMyProfile)
			users.PUT("/me", controllers.UpdateMyProfile)
		}

		// Appointments
		appointments := v1.Group("/appointments")
		{
			appointments.POST("", publicLimiter, controllers.CreateAppointment)
			appointments.GET("", auth, controllers.ListAppointments)
			appointments.GET("/pending", auth, adminOnly, controllers.ListPendingAppointments)
			appointments.GET("/lawyer/:lawyerId", auth, controllers.ListLawyerAppointments)
			appointments.GET("/client/:clientId", auth, controllers.ListClientAppointments)
			appointments.GET("/:id", auth, controllers.GetAppointment)
			appointments.PUT("/:id/assign-lawyer", auth, adminOnly, controllers.AssignLawyerAndApprove)
			appointments.PUT("/:id/reject", auth, adminOnly, controllers.RejectAppointment)
			appointments.PUT("/:id/status", auth, adminOnly, controllers.UpdateAppointmentStatus)
			appointments.PUT("/:id", auth, adminOnly, controllers.UpdateAppointment)
			appointments.DELETE("/:id", auth, adminOnly, controllers.DeleteAppointment)
		}

		// Blogs
		blogs := v1.Group("/blogs")
		{
			blogs.GET("/public", publicLimiter, controllers.ListApprovedBlogs)
			blogs.GET("/public/:id", publicLimiter, controllers.GetApprovedBlog)

			blogs.POST("", auth, lawyerOnly, controllers.CreateBlog)
			blogs.GET("/my-blogs", auth, lawyerOnly, controllers.ListMyBlogs)
			blogs.PUT("/my-blogs/:id", auth, lawyerOnly, controllers.UpdateMyBlog)
			blogs.DELETE("/my-blogs/:id", auth, lawyerOnly, controllers.DeleteMyBlog)
			blogs.POST("/my-blogs/:id/image", auth, lawyerOnly, controllers.UploadBlogImage)

			blogs.GET("/admin/all", auth, adminOnly, controllers.ListAllBlogs)
			blogs.PATCH("/admin/:id/approve", auth, adminOnly, controllers.ApproveBlog)
			blogs.PATCH("/admin/:id/reject", auth, adminOnly, controllers.RejectBlog)

			blogs.GET("/:id", auth, adminOrLawyer, controllers.GetBlog)
		}

		// Dashboard statistics
		statistics := v1.Group("/statistics", auth, adminOnly)
		{
			statistics.GET("/appointments", controllers.GetAppointmentStatistics)
			statistics.GET("/blogs", controllers.GetBlogStatistics)
			statistics.GET("/cases", controllers.GetCaseStatistics)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Amara Chambers API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
