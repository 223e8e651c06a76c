package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/controllers"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/middleware"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Student   *controllers.StudentController
	Drive     *controllers.DriveController
	Dashboard *controllers.DashboardController
	Report    *controllers.ReportController
	Health    *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter middleware.Limiter,
) {
	api := router.Group("/api")

	// --- Public routes ---
	api.GET("/health", c.Health.Health)

	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter, "login"), c.Auth.Login)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin)))

	authenticated.GET("/dashboard/overview", c.Dashboard.Overview)

	students := authenticated.Group("/students")
	{
		students.GET("", c.Student.SearchStudents)
		students.POST("", c.Student.CreateStudent)
		students.POST("/bulk-upload", c.Student.BulkUpload)
		students.GET("/:id", c.Student.GetStudent)
		students.PUT("/:id", c.Student.UpdateStudent)
		students.POST("/:id/vaccination", c.Student.RecordVaccination)
	}

	drives := authenticated.Group("/drives")
	{
		drives.GET("", c.Drive.ListDrives)
		drives.POST("", c.Drive.CreateDrive)
		drives.GET("/:id", c.Drive.GetDrive)
		drives.PUT("/:id", c.Drive.UpdateDrive)
	}

	reports := authenticated.Group("/reports")
	{
		reports.GET("", c.Report.ListRecords)
		reports.GET("/export", c.Report.Export)
	}
}
