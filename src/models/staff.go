package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff - a trainer. Email is unique. Modules mirrors Module.StaffAssigned;
// deleting a staff member does not clean the module side (see DESIGN.md).
type Staff struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password,omitempty" json:"-"`
	ProfilePicture string               `bson:"profilePicture" json:"profilePicture"`
	Role           string               `bson:"role" json:"role"`
	Location       string               `bson:"location" json:"location"`
	Modules        []primitive.ObjectID `bson:"modules" json:"modules"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
}
