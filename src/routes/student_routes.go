package routes

import (
	"github.com/Adribv/Placement-Site-Backend/src/controllers"
	"github.com/Adribv/Placement-Site-Backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func studentRoutes(router fiber.Router, student *controllers.StudentController) {
	group := router.Group("/student")
	group.Use(middleware.AuthJWT, middleware.RequireRole("student"))

	group.Get("/profile", student.GetProfile)
	group.Get("/performance/:moduleId", student.GetPerformance)
	group.Get("/attendance", student.GetMyAttendance)
	group.Get("/leaderboard", student.GetLeaderboard)
}
