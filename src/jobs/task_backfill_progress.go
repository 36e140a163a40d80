package jobs

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Adribv/Placement-Site-Backend/src/database"
	"github.com/Adribv/Placement-Site-Backend/src/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleBackfillProgressTask repairs module data after imports or schema
// drift: modules get a staffAssigned array if missing, every enrolled
// student gets a progress record sized to the module's exam count, and
// stored averages are recomputed from the exam scores.
func HandleBackfillProgressTask(ctx context.Context, t *asynq.Task) error {
	var payload BackfillPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	filter := bson.M{}
	if payload.ModuleID != "" {
		id, err := primitive.ObjectIDFromHex(payload.ModuleID)
		if err != nil {
			log.Println("backfill: invalid module id in payload, skipping:", payload.ModuleID)
			return nil
		}
		filter["_id"] = id
	}

	cursor, err := database.ModuleCollection.Find(ctx, filter)
	if err != nil {
		return err
	}
	var moduleList []models.Module
	if err := cursor.All(ctx, &moduleList); err != nil {
		return err
	}

	for _, module := range moduleList {
		if err := backfillModule(ctx, module); err != nil {
			log.Println("backfill: module", module.ID.Hex(), "failed:", err)
		}
	}
	return nil
}

func backfillModule(ctx context.Context, module models.Module) error {
	_, err := database.ModuleCollection.UpdateOne(ctx,
		bson.M{"_id": module.ID, "staffAssigned": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"staffAssigned": []primitive.ObjectID{}}},
	)
	if err != nil {
		return err
	}

	cursor, err := database.StudentCollection.Find(ctx,
		bson.M{"trainings.moduleId": module.ID},
	)
	if err != nil {
		return err
	}
	var roster []models.Student
	if err := cursor.All(ctx, &roster); err != nil {
		return err
	}

	for _, student := range roster {
		if err := ensureProgress(ctx, student.ID, module); err != nil {
			log.Println("backfill: student", student.ID.Hex(), "failed:", err)
		}
	}
	return nil
}

func ensureProgress(ctx context.Context, studentID primitive.ObjectID, module models.Module) error {
	var p models.TrainingProgress
	err := database.ProgressCollection.FindOne(ctx,
		bson.M{"student": studentID, "training": module.ID},
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		scores := make([]models.ExamScore, module.ExamsCount)
		for i := range scores {
			scores[i] = models.ExamScore{Exam: i + 1}
		}
		_, err = database.ProgressCollection.InsertOne(ctx, models.TrainingProgress{
			ID:         primitive.NewObjectID(),
			Student:    studentID,
			Training:   module.ID,
			Attendance: []models.AttendanceEntry{},
			ExamScores: scores,
		})
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return err
	}
	if err != nil {
		return err
	}

	// recompute the stored average; old records drifted when scores were
	// edited without the average being touched
	avg := 0.0
	if len(p.ExamScores) > 0 {
		sum := 0.0
		for _, s := range p.ExamScores {
			sum += s.Score
		}
		avg = sum / float64(len(p.ExamScores))
	}
	if avg != p.AverageScore {
		_, err = database.ProgressCollection.UpdateOne(ctx,
			bson.M{"_id": p.ID},
			bson.M{"$set": bson.M{"averageScore": avg}},
		)
		return err
	}
	return nil
}
