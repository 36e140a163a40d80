package controllers

import (
	"github.com/Adribv/Placement-Site-Backend/src/services/leaderboard"
	"github.com/Adribv/Placement-Site-Backend/src/services/progress"
	"github.com/Adribv/Placement-Site-Backend/src/services/students"
	"github.com/Adribv/Placement-Site-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentController owns the endpoints a signed-in student uses to see
// their own standing.
type StudentController struct {
	students    *students.Service
	progress    *progress.Service
	leaderboard *leaderboard.Service
}

func NewStudentController(st *students.Service, pg *progress.Service, lb *leaderboard.Service) *StudentController {
	return &StudentController{students: st, progress: pg, leaderboard: lb}
}

func (sc *StudentController) selfID(c *fiber.Ctx) (primitive.ObjectID, error) {
	hex, _ := c.Locals("userId").(string)
	return parseObjectID(hex)
}

// GetProfile godoc
// @Summary The signed-in student's profile with enrolled modules
// @Tags student
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /student/profile [get]
func (sc *StudentController) GetProfile(c *fiber.Ctx) error {
	id, err := sc.selfID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	student, enrolled, err := sc.students.Details(c.Context(), id)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"student": student,
		"modules": enrolled,
	})
}

// GetPerformance godoc
// @Summary The signed-in student's progress in one module
// @Tags student
// @Produce json
// @Param moduleId path string true "Module ID"
// @Success 200 {object} models.TrainingProgress
// @Failure 404 {object} models.ErrorResponse
// @Router /student/performance/{moduleId} [get]
func (sc *StudentController) GetPerformance(c *fiber.Ctx) error {
	id, err := sc.selfID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	moduleID, err := parseObjectID(c.Params("moduleId"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}
	p, err := sc.progress.Performance(c.Context(), id, moduleID)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(p)
}

// GetMyAttendance godoc
// @Summary The signed-in student's attendance history
// @Tags student
// @Produce json
// @Param moduleId query string false "Restrict to one module"
// @Param startDate query string false "Start of date range"
// @Param endDate query string false "End of date range (inclusive)"
// @Success 200 {array} models.AttendanceLog
// @Failure 401 {object} models.ErrorResponse
// @Router /student/attendance [get]
func (sc *StudentController) GetMyAttendance(c *fiber.Ctx) error {
	id, err := sc.selfID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var filter progress.AttendanceFilter
	if hex := c.Query("moduleId"); hex != "" {
		moduleID, err := parseObjectID(hex)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
		}
		filter.ModuleID = &moduleID
	}
	if s := c.Query("startDate"); s != "" {
		t, err := utils.ParseDate(s)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid startDate")
		}
		filter.Start = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := utils.ParseDate(s)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid endDate")
		}
		filter.End = &t
	}

	logs, err := sc.progress.StudentAttendance(c.Context(), id, filter)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(logs)
}

// GetLeaderboard godoc
// @Summary Overall leaderboard, visible to students
// @Tags student
// @Produce json
// @Success 200 {array} models.LeaderboardEntry
// @Router /student/leaderboard [get]
func (sc *StudentController) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := sc.leaderboard.Overall(c.Context())
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(entries)
}
