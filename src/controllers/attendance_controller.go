package controllers

import (
	"time"

	"github.com/Adribv/Placement-Site-Backend/src/services/progress"
	"github.com/Adribv/Placement-Site-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AttendanceController owns the attendance reconciliation endpoint and the
// attendance views.
type AttendanceController struct {
	progress *progress.Service
}

func NewAttendanceController(pg *progress.Service) *AttendanceController {
	return &AttendanceController{progress: pg}
}

// BulkUpdateAttendance godoc
// @Summary Reconcile a day's attendance for a whole module roster
// @Description The listed students get isPresent for the date; every other enrolled student gets the opposite
// @Tags attendance
// @Accept json
// @Produce json
// @Param body body object true "moduleId, studentIds, date and isPresent"
// @Success 200 {object} models.AttendanceReport
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/attendance/bulk [put]
func (tc *AttendanceController) BulkUpdateAttendance(c *fiber.Ctx) error {
	var req struct {
		ModuleID   string   `json:"moduleId"`
		StudentIDs []string `json:"studentIds"`
		Date       string   `json:"date"`
		IsPresent  bool     `json:"isPresent"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	moduleID, err := parseObjectID(req.ModuleID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}
	targetIDs, err := parseObjectIDs(req.StudentIDs)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid student ID in studentIds")
	}

	date := time.Now()
	if req.Date != "" {
		date, err = utils.ParseDate(req.Date)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid date format")
		}
	}

	report, err := tc.progress.BulkUpdateAttendance(c.Context(), moduleID, targetIDs, date, req.IsPresent)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(report)
}

// GetStudentAttendance godoc
// @Summary One student's attendance history across modules
// @Tags attendance
// @Produce json
// @Param id path string true "Student ID"
// @Param moduleId query string false "Restrict to one module"
// @Param startDate query string false "Start of date range"
// @Param endDate query string false "End of date range (inclusive)"
// @Success 200 {array} models.AttendanceLog
// @Failure 400 {object} models.ErrorResponse
// @Router /attendance/students/{id} [get]
func (tc *AttendanceController) GetStudentAttendance(c *fiber.Ctx) error {
	studentID, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid student ID")
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

	logs, err := tc.progress.StudentAttendance(c.Context(), studentID, filter)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(logs)
}

// GetModuleAttendance godoc
// @Summary Every roster member's attendance for one module
// @Tags attendance
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {array} models.AttendanceLog
// @Failure 404 {object} models.ErrorResponse
// @Router /attendance/modules/{id} [get]
func (tc *AttendanceController) GetModuleAttendance(c *fiber.Ctx) error {
	moduleID, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}
	logs, err := tc.progress.ModuleAttendance(c.Context(), moduleID)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(logs)
}
