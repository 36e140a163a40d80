package controllers

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// uploadDir holds profile pictures, served statically from /uploads.
// Spreadsheets land under tmpUploadDir and are removed after parsing.
const (
	uploadDir    = "./uploads"
	tmpUploadDir = "./uploads/tmp"
)

func parseObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q", hex)
	}
	return id, nil
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := parseObjectID(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
