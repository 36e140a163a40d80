package routes

import (
	"github.com/Adribv/Placement-Site-Backend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// Controllers bundles the wired controller instances the routes mount.
type Controllers struct {
	Admin      *controllers.AdminController
	Staff      *controllers.StaffController
	Student    *controllers.StudentController
	Attendance *controllers.AttendanceController
}

func InitRoutes(app *fiber.App, ctl Controllers) {
	api := app.Group("/api")

	authRoutes(api, ctl.Admin)
	adminRoutes(api, ctl.Admin, ctl.Staff, ctl.Attendance)
	staffRoutes(api, ctl.Staff)
	studentRoutes(api, ctl.Student)
	attendanceRoutes(api, ctl.Attendance)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running...")
	})
}
