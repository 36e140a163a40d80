package routes

import (
	"github.com/Adribv/Placement-Site-Backend/src/controllers"
	"github.com/Adribv/Placement-Site-Backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// attendanceRoutes exposes the attendance views to admin and staff alike.
func attendanceRoutes(router fiber.Router, attendance *controllers.AttendanceController) {
	group := router.Group("/attendance")
	group.Use(middleware.AuthJWT, middleware.RequireAnyRole("admin", "staff"))

	group.Get("/students/:id", attendance.GetStudentAttendance)
	group.Get("/modules/:id", attendance.GetModuleAttendance)
}
