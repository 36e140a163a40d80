package routes

import (
	"github.com/Adribv/Placement-Site-Backend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func authRoutes(router fiber.Router, admin *controllers.AdminController) {
	auth := router.Group("/auth")
	auth.Post("/admin/register", admin.RegisterAdmin)
	auth.Post("/admin/login", controllers.AdminLogin)
	auth.Post("/staff/login", controllers.StaffLogin)
	auth.Post("/student/login", controllers.StudentLogin)
}
