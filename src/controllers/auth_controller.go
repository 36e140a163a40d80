package controllers

import (
	"github.com/Adribv/Placement-Site-Backend/src/services"
	"github.com/Adribv/Placement-Site-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Email    string `json:"email"`
	RegNo    string `json:"regNo"`
	Password string `json:"password"`
}

// AdminLogin godoc
// @Summary Admin login
// @Description Authenticate an admin and issue a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Admin credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/admin/login [post]
func AdminLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "Email and password are required")
	}

	admin, err := services.AuthenticateAdmin(c.Context(), req.Email, req.Password)
	if err != nil {
		return utils.HandleAppError(c, err)
	}

	token, err := utils.GenerateJWT(admin.ID.Hex(), admin.Email, "admin")
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Token generation failed")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"admin": fiber.Map{
			"id":    admin.ID.Hex(),
			"name":  admin.Name,
			"email": admin.Email,
		},
	})
}

// StaffLogin godoc
// @Summary Staff login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Staff credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/staff/login [post]
func StaffLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "Email and password are required")
	}

	staff, err := services.AuthenticateStaff(c.Context(), req.Email, req.Password)
	if err != nil {
		return utils.HandleAppError(c, err)
	}

	token, err := utils.GenerateJWT(staff.ID.Hex(), staff.Email, "staff")
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Token generation failed")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"staff": fiber.Map{
			"id":       staff.ID.Hex(),
			"name":     staff.Name,
			"email":    staff.Email,
			"location": staff.Location,
		},
	})
}

// StudentLogin godoc
// @Summary Student login
// @Description Students sign in with their registration number; the initial password is the registration number itself
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Student credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/student/login [post]
func StudentLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if req.RegNo == "" || req.Password == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "Registration number and password are required")
	}

	student, err := services.AuthenticateStudent(c.Context(), req.RegNo, req.Password)
	if err != nil {
		return utils.HandleAppError(c, err)
	}

	token, err := utils.GenerateJWT(student.ID.Hex(), student.Email, "student")
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Token generation failed")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"student": fiber.Map{
			"id":    student.ID.Hex(),
			"name":  student.Name,
			"regNo": student.RegNo,
			"email": student.Email,
			"batch": student.Batch,
		},
	})
}
