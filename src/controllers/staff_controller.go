package controllers

import (
	"strings"
	"time"

	"github.com/Adribv/Placement-Site-Backend/src/models"
	"github.com/Adribv/Placement-Site-Backend/src/services/progress"
	"github.com/Adribv/Placement-Site-Backend/src/services/staffs"
	"github.com/Adribv/Placement-Site-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

const maxProfilePictureSize = 5 << 20

// StaffController owns staff management (admin side) and the staff member's
// own workflows: assigned modules, location rosters, attendance marking.
type StaffController struct {
	staffs   *staffs.Service
	progress *progress.Service
}

func NewStaffController(sf *staffs.Service, pg *progress.Service) *StaffController {
	return &StaffController{staffs: sf, progress: pg}
}

func staffIDFromToken(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("userId").(string)
	return id, ok && id != ""
}

// RegisterStaff godoc
// @Summary Register a staff member
// @Description New staff accounts start with the default password
// @Tags staff
// @Accept json
// @Produce json
// @Param staff body staffs.RegisterStaffRequest true "Staff details"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/staffs [post]
func (sc *StaffController) RegisterStaff(c *fiber.Ctx) error {
	var req staffs.RegisterStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	staff, err := sc.staffs.Register(c.Context(), req)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse{Message: "Staff registered successfully", Data: staff})
}

// GetStaffs godoc
// @Summary List staff members
// @Tags staff
// @Produce json
// @Success 200 {array} models.Staff
// @Router /admin/staffs [get]
func (sc *StaffController) GetStaffs(c *fiber.Ctx) error {
	list, err := sc.staffs.All(c.Context())
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(list)
}

// DeleteStaff godoc
// @Summary Delete a staff member
// @Tags staff
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/staffs/{id} [delete]
func (sc *StaffController) DeleteStaff(c *fiber.Ctx) error {
	id, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid staff ID")
	}
	if err := sc.staffs.Delete(c.Context(), id); err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(models.SuccessResponse{Message: "Staff deleted successfully"})
}

// GetProfile godoc
// @Summary The signed-in staff member's profile
// @Tags staff
// @Produce json
// @Success 200 {object} models.Staff
// @Failure 401 {object} models.ErrorResponse
// @Router /staff/profile [get]
func (sc *StaffController) GetProfile(c *fiber.Ctx) error {
	hex, ok := staffIDFromToken(c)
	if !ok {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	id, err := parseObjectID(hex)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid token subject")
	}
	staff, err := sc.staffs.Profile(c.Context(), id)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(staff)
}

// GetAssignedModules godoc
// @Summary Modules assigned to the signed-in staff member
// @Tags staff
// @Produce json
// @Success 200 {array} models.Module
// @Failure 401 {object} models.ErrorResponse
// @Router /staff/modules [get]
func (sc *StaffController) GetAssignedModules(c *fiber.Ctx) error {
	hex, ok := staffIDFromToken(c)
	if !ok {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	id, err := parseObjectID(hex)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid token subject")
	}
	list, err := sc.staffs.AssignedModules(c.Context(), id)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(list)
}

// GetModuleStudents godoc
// @Summary A module's roster restricted to the staff member's location
// @Tags staff
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {array} models.Student
// @Failure 401 {object} models.ErrorResponse
// @Router /staff/modules/{id}/students [get]
func (sc *StaffController) GetModuleStudents(c *fiber.Ctx) error {
	hex, ok := staffIDFromToken(c)
	if !ok {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	staffID, err := parseObjectID(hex)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid token subject")
	}
	moduleID, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}

	list, err := sc.staffs.StudentsForModule(c.Context(), staffID, moduleID)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(list)
}

// MarkAttendance godoc
// @Summary Mark attendance for the listed students only
// @Description Unlike the admin reconciliation, unlisted roster members are left untouched; missing progress records are created on the fly
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Module ID"
// @Param body body object true "studentIds, date, present and optional remarks"
// @Success 200 {object} models.AttendanceReport
// @Failure 400 {object} models.ErrorResponse
// @Router /staff/modules/{id}/attendance [post]
func (sc *StaffController) MarkAttendance(c *fiber.Ctx) error {
	moduleID, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid module ID")
	}
	var req struct {
		StudentIDs []string `json:"studentIds"`
		Date       string   `json:"date"`
		Present    bool     `json:"present"`
		Remarks    string   `json:"remarks"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if len(req.StudentIDs) == 0 {
		return utils.HandleError(c, fiber.StatusBadRequest, "studentIds must be a non-empty array")
	}
	studentIDs, err := parseObjectIDs(req.StudentIDs)
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

	report, err := sc.progress.MarkAttendanceForStudents(c.Context(), moduleID, studentIDs, date, req.Present, req.Remarks)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(report)
}

// UploadProfilePicture godoc
// @Summary Upload the signed-in staff member's profile picture
// @Tags staff
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /staff/profile/picture [post]
func (sc *StaffController) UploadProfilePicture(c *fiber.Ctx) error {
	hex, ok := staffIDFromToken(c)
	if !ok {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	staffID, err := parseObjectID(hex)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid token subject")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return utils.HandleError(c, fiber.StatusBadRequest, "Only image files are allowed")
	}
	if fileHeader.Size > maxProfilePictureSize {
		return utils.HandleError(c, fiber.StatusBadRequest, "Image must be 5MB or smaller")
	}
	path, err := utils.SaveUploadedFile(fileHeader, uploadDir)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to save uploaded file")
	}

	staff, err := sc.staffs.UpdateProfilePicture(c.Context(), staffID, path)
	if err != nil {
		return utils.HandleAppError(c, err)
	}
	return c.JSON(models.SuccessResponse{Message: "Profile picture updated", Data: staff})
}
