package routes

import (
	"github.com/Adribv/Placement-Site-Backend/src/controllers"
	"github.com/Adribv/Placement-Site-Backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func adminRoutes(router fiber.Router, admin *controllers.AdminController, staff *controllers.StaffController, attendance *controllers.AttendanceController) {
	group := router.Group("/admin")
	group.Use(middleware.AuthJWT, middleware.RequireRole("admin"))

	group.Post("/students", admin.RegisterStudent)
	group.Get("/students", admin.GetStudents)
	group.Post("/students/bulk-upload", admin.BulkUploadStudents)
	group.Put("/students/batch", admin.UpdateStudentBatch)
	group.Get("/students/:id", admin.GetStudentDetails)
	group.Delete("/students/:id", admin.DeleteStudent)

	group.Post("/modules", admin.AddTrainingModule)
	group.Get("/modules", admin.GetModules)
	group.Post("/modules/assign-staff", admin.AssignStaffToModule)
	group.Put("/modules/:id", admin.UpdateModuleDetails)
	group.Put("/modules/:id/complete", admin.CompleteModule)
	group.Get("/modules/:id/students", admin.GetModuleStudents)
	group.Get("/modules/:id/leaderboard", admin.GetModuleLeaderboard)
	group.Post("/modules/:id/scores/bulk-upload", admin.BulkUploadScores)

	group.Put("/scores", admin.UpdateExamScore)
	group.Post("/maintenance/backfill-progress", admin.BackfillProgress)
	group.Get("/leaderboard", admin.GetLeaderboard)
	group.Put("/attendance/bulk", attendance.BulkUpdateAttendance)

	group.Post("/staffs", staff.RegisterStaff)
	group.Get("/staffs", staff.GetStaffs)
	group.Delete("/staffs/:id", staff.DeleteStaff)
}
