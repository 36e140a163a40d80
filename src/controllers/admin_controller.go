package controllers

import (
	"os"

	"github.com/Adribv/Placement-Site-Backend/src/database"
	"github.com/Adribv/Placement-Site-Backend/src/jobs"
	"github.com/Adribv/Placement-Site-Backend/src/models"
	"github.com/Adribv/Placement-Site-Backend/src/services/admins"
	"github.com/Adribv/Placement-Site-Backend/src/services/leaderboard"
	"github.com/Adribv/Placement-Site-Backend/src/services/modules"
	"github.com/Adribv/Placement-Site-Backend/src/services/progress"
	"github.com/Adribv/Placement-Site-Backend/src/services/students"
	"github.com/Adribv/Placement-Site-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminController owns the admin-facing endpoints: student rosters, module
// lifecycle and the spreadsheet bulk operations.
type AdminController struct {
	admins      *admins.Service
	students    *students.Service
	modules     *modules.Service
	progress    *progress.Service
	leaderboard *leaderboard.Service
}

func NewAdminController(ad *admins.Service, st *students.Service, md *modules.Service, pg *progress.Service, lb *leaderboard.Service) *AdminController {
	return &AdminController{admins: ad, students: st, modules: md, progress: pg, leaderboard: lb}
}

// RegisterAdmin godoc
// @Summary Register an admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param admin body admins.RegisterAdminRequest true "Admin details"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/admin/register [post]
func (ac *AdminController) RegisterAdmin(c *fiber.Ctx) error {
	var req admins.RegisterAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	admin, err := ac.admins.Register(c.Context(), req)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse{Message: "Admin registered successfully", Data: admin})
}

// RegisterStudent godoc
// @Summary Register a single student
// @Tags admin
// @Accept json
// @Produce json
// @Param student body students.RegisterStudentRequest true "Student details"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/students [post]
func (ac *AdminController) RegisterStudent(c *fiber.Ctx) error {
	var req students.RegisterStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ac.students.Register(c.Context(), req); err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse{Message: "Student registered successfully"})
}

// BulkUploadStudents godoc
// @Summary Bulk import students from a spreadsheet
// @Description Accepts an xlsx file and imports each row as a student; the response reports per-row errors
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet"
// @Success 200 {object} models.ImportReport
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/students/bulk-upload [post]
func (ac *AdminController) BulkUploadStudents(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "No file uploaded")
	}

	path, err := utils.SaveUploadedFile(fileHeader, tmpUploadDir)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to save uploaded file")
	}
	defer os.Remove(path)

	rows, err := utils.ParseSheetRows(path)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Failed to parse spreadsheet")
	}

	report, err := ac.students.BulkImport(c.Context(), rows)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(report)
}

// GetStudents godoc
// @Summary List students
// @Tags admin
// @Produce json
// @Param batch query string false "Filter by batch"
// @Param location query string false "Filter by location"
// @Success 200 {array} models.Student
// @Router /admin/students [get]
func (ac *AdminController) GetStudents(c *fiber.Ctx) error {
	filter := models.StudentFilter{
		Batch:    c.Query("batch"),
		Location: c.Query("location"),
	}
	list, err := ac.students.List(c.Context(), filter)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(list)
}

// GetStudentDetails godoc
// @Summary Get one student with their enrolled modules
// @Tags admin
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/students/{id} [get]
func (ac *AdminController) GetStudentDetails(c *fiber.Ctx) error {
	id, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid student ID")
	}
	student, enrolled, err := ac.students.Details(c.Context(), id)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"student": student,
		"modules": enrolled,
	})
}

// DeleteStudent godoc
// @Summary Delete a student and their progress records
// @Tags admin
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/students/{id} [delete]
func (ac *AdminController) DeleteStudent(c *fiber.Ctx) error {
	id, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid student ID")
	}
	student, err := ac.students.Delete(c.Context(), id)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(models.SuccessResponse{Message: "Student deleted successfully", Data: student})
}

// UpdateStudentBatch godoc
// @Summary Reassign a batch label for a set of students
// @Tags admin
// @Accept json
// @Produce json
// @Param body body object true "studentIds and newBatch"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/students/batch [put]
func (ac *AdminController) UpdateStudentBatch(c *fiber.Ctx) error {
	var req struct {
		StudentIDs []string `json:"studentIds"`
		NewBatch   string   `json:"newBatch"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	ids, err := parseObjectIDs(req.StudentIDs)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid student ID in studentIds")
	}

	matched, modified, err := ac.students.UpdateBatchForStudents(c.Context(), ids, req.NewBatch)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":       "Batch updated successfully",
		"matchedCount":  matched,
		"modifiedCount": modified,
	})
}

// AddTrainingModule godoc
// @Summary Create a training module and enroll students
// @Tags admin
// @Accept json
// @Produce json
// @Param module body object true "Module details plus studentIds"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/modules [post]
func (ac *AdminController) AddTrainingModule(c *fiber.Ctx) error {
	var req struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		DurationDays int      `json:"durationDays"`
		ExamsCount   int      `json:"examsCount"`
		Location     string   `json:"location"`
		StudentIDs   []string `json:"studentIds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	ids, err := parseObjectIDs(req.StudentIDs)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid student ID in studentIds")
	}

	module, assigned, err := ac.modules.Create(c.Context(), modules.CreateModuleRequest{
		Title:        req.Title,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		ExamsCount:   req.ExamsCount,
		Location:     req.Location,
		StudentIDs:   ids,
	})
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":          "Training module added successfully",
		"module":           module,
		"studentsAssigned": assigned,
	})
}

// GetModules godoc
// @Summary List training modules
// @Tags admin
// @Produce json
// @Success 200 {array} models.Module
// @Router /admin/modules [get]
func (ac *AdminController) GetModules(c *fiber.Ctx) error {
	list, err := ac.modules.All(c.Context())
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(list)
}

// UpdateModuleDetails godoc
// @Summary Update a module's details
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Module ID"
// @Param module body modules.UpdateModuleRequest true "New details"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/modules/{id} [put]
func (ac *AdminController) UpdateModuleDetails(c *fiber.Ctx) error {
	id, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}
	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		DurationDays int    `json:"durationDays"`
		ExamsCount   int    `json:"examsCount"`
		IsCompleted  bool   `json:"isCompleted"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	module, err := ac.modules.Update(c.Context(), id, modules.UpdateModuleRequest{
		Title:        req.Title,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		ExamsCount:   req.ExamsCount,
		IsCompleted:  req.IsCompleted,
	})
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(models.SuccessResponse{Message: "Module updated successfully", Data: module})
}

// CompleteModule godoc
// @Summary Mark a module complete
// @Description Sets the completion flag and bumps every enrolled student's completed-training counter
// @Tags admin
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/modules/{id}/complete [put]
func (ac *AdminController) CompleteModule(c *fiber.Ctx) error {
	id, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}
	module, updated, err := ac.modules.Complete(c.Context(), id)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":         "Module marked as completed",
		"module":          module,
		"studentsUpdated": updated,
	})
}

// GetModuleStudents godoc
// @Summary List a module's roster with progress
// @Tags admin
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {array} modules.StudentWithProgress
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/modules/{id}/students [get]
func (ac *AdminController) GetModuleStudents(c *fiber.Ctx) error {
	id, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}
	roster, err := ac.modules.StudentsWithProgress(c.Context(), id)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(roster)
}

// AssignStaffToModule godoc
// @Summary Assign a staff member to a module
// @Tags admin
// @Accept json
// @Produce json
// @Param body body object true "moduleId and staffId"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/modules/assign-staff [post]
func (ac *AdminController) AssignStaffToModule(c *fiber.Ctx) error {
	var req struct {
		ModuleID string `json:"moduleId"`
		StaffID  string `json:"staffId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	moduleID, err := parseObjectID(req.ModuleID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}
	staffID, err := parseObjectID(req.StaffID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid staff ID")
	}

	if err := ac.modules.AssignStaff(c.Context(), moduleID, staffID); err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(models.SuccessResponse{Message: "Staff assigned to module successfully"})
}

// BulkUploadScores godoc
// @Summary Upload one exam's marks for a module from a spreadsheet
// @Description Each row needs regNo, name and mark columns; stored scores are the mark doubled
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Module ID"
// @Param examNumber formData int true "1-based exam number"
// @Param file formData file true "Spreadsheet"
// @Success 200 {object} models.ScoreReport
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/modules/{id}/scores/bulk-upload [post]
func (ac *AdminController) BulkUploadScores(c *fiber.Ctx) error {
	moduleID, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}
	examNumber, err := utils.ParseExamNumber(c.FormValue("examNumber"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid exam number")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	path, err := utils.SaveUploadedFile(fileHeader, tmpUploadDir)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to save uploaded file")
	}
	defer os.Remove(path)

	rows, err := utils.ParseSheetRows(path)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Failed to parse spreadsheet")
	}

	report, err := ac.progress.BulkUploadScores(c.Context(), moduleID, examNumber, rows)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(report)
}

// UpdateExamScore godoc
// @Summary Set one exam score for one student
// @Tags admin
// @Accept json
// @Produce json
// @Param body body object true "studentId, moduleId, examNumber and score"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/scores [put]
func (ac *AdminController) UpdateExamScore(c *fiber.Ctx) error {
	var req struct {
		StudentID  string  `json:"studentId"`
		ModuleID   string  `json:"moduleId"`
		ExamNumber any     `json:"examNumber"`
		Score      float64 `json:"score"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	studentID, err := parseObjectID(req.StudentID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid student ID")
	}
	moduleID, err := parseObjectID(req.ModuleID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}
	examNumber, err := utils.ParseExamNumber(req.ExamNumber)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid exam number")
	}

	p, err := ac.progress.UpdateExamScore(c.Context(), studentID, moduleID, examNumber, req.Score)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(models.SuccessResponse{Message: "Exam score updated successfully", Data: p})
}

// BackfillProgress godoc
// @Summary Schedule a progress backfill run
// @Description Seeds missing progress records and recomputes stored averages in the background; scoped to one module when moduleId is given
// @Tags admin
// @Accept json
// @Produce json
// @Param body body object false "Optional moduleId"
// @Success 202 {object} models.SuccessResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /admin/maintenance/backfill-progress [post]
func (ac *AdminController) BackfillProgress(c *fiber.Ctx) error {
	var req struct {
		ModuleID string `json:"moduleId"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
		}
	}
	if req.ModuleID != "" {
		if _, err := parseObjectID(req.ModuleID); err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
		}
	}
	if database.AsynqClient == nil {
		return utils.HandleError(c, fiber.StatusServiceUnavailable, "Background jobs are not available")
	}

	jobs.EnqueueBackfillProgress(req.ModuleID)
	return c.Status(fiber.StatusAccepted).JSON(models.SuccessResponse{Message: "Backfill scheduled"})
}

// GetLeaderboard godoc
// @Summary Overall leaderboard across all trainings
// @Tags admin
// @Produce json
// @Success 200 {array} models.LeaderboardEntry
// @Router /admin/leaderboard [get]
func (ac *AdminController) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := ac.leaderboard.Overall(c.Context())
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(entries)
}

// GetModuleLeaderboard godoc
// @Summary Leaderboard for one module
// @Tags admin
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {array} models.LeaderboardEntry
// @Router /admin/modules/{id}/leaderboard [get]
func (ac *AdminController) GetModuleLeaderboard(c *fiber.Ctx) error {
	id, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}
	entries, err := ac.leaderboard.ForModule(c.Context(), id)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(entries)
}
