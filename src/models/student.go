package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Training is one enrollment entry inside a student document.
type Training struct {
	ModuleID primitive.ObjectID `bson:"moduleId" json:"moduleId"`
}

// Student - a placement candidate. RegNo is unique across the collection.
type Student struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                  string             `bson:"name" json:"name"`
	RegNo                 string             `bson:"regNo" json:"regNo"`
	Email                 string             `bson:"email" json:"email"`
	Password              string             `bson:"password,omitempty" json:"-"`
	Batch                 string             `bson:"batch" json:"batch"`
	PassoutYear           string             `bson:"passoutYear" json:"passoutYear"`
	Department            string             `bson:"department" json:"department"`
	Location              string             `bson:"location" json:"location"`
	Trainings             []Training         `bson:"trainings" json:"trainings"`
	NumTrainingsCompleted int                `bson:"numTrainingsCompleted" json:"numTrainingsCompleted"`
}

// StudentFilter narrows student listings. Empty fields are ignored.
type StudentFilter struct {
	Batch    string
	Location string
}
