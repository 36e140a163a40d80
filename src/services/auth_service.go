package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/Adribv/Placement-Site-Backend/src/database"
	"github.com/Adribv/Placement-Site-Backend/src/errs"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = errs.New("UNAUTHORIZED", http.StatusUnauthorized, "Invalid credentials")

// AuthenticateAdmin checks an admin login by email.
func AuthenticateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	var admin models.Admin
	err := database.AdminCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&admin)
	if err != nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	admin.Password = ""
	return &admin, nil
}

// AuthenticateStaff checks a staff login by email.
func AuthenticateStaff(ctx context.Context, email, password string) (*models.Staff, error) {
	var staff models.Staff
	err := database.StaffCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&staff)
	if err != nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	staff.Password = ""
	return &staff, nil
}

// AuthenticateStudent checks a student login by registration number. New
// accounts start with the registration number itself as the credential.
func AuthenticateStudent(ctx context.Context, regNo, password string) (*models.Student, error) {
	var student models.Student
	err := database.StudentCollection.FindOne(ctx, bson.M{"regNo": strings.TrimSpace(regNo)}).Decode(&student)
	if err != nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	student.Password = ""
	return &student, nil
}
