package routes

import (
	"github.com/Adribv/Placement-Site-Backend/src/controllers"
	"github.com/Adribv/Placement-Site-Backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func staffRoutes(router fiber.Router, staff *controllers.StaffController) {
	group := router.Group("/staff")
	group.Use(middleware.AuthJWT, middleware.RequireRole("staff"))

	group.Get("/profile", staff.GetProfile)
	group.Post("/profile/picture", staff.UploadProfilePicture)
	group.Get("/modules", staff.GetAssignedModules)
	group.Get("/modules/:id/students", staff.GetModuleStudents)
	group.Post("/modules/:id/attendance", staff.MarkAttendance)
}
