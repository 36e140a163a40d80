package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Module - a training module. Completion is one-way: once true it stays true.
type Module struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description" json:"description"`
	DurationDays  int                  `bson:"durationDays" json:"durationDays"`
	ExamsCount    int                  `bson:"examsCount" json:"examsCount"`
	Location      string               `bson:"location" json:"location"`
	StaffAssigned []primitive.ObjectID `bson:"staffAssigned" json:"staffAssigned"`
	IsCompleted   bool                 `bson:"isCompleted" json:"isCompleted"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
}
