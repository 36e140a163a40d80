package database

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client     *mongo.Client
	once       sync.Once
	connectErr error

	DatabaseName string

	StudentCollection  *mongo.Collection
	ModuleCollection   *mongo.Collection
	StaffCollection    *mongo.Collection
	AdminCollection    *mongo.Collection
	ProgressCollection *mongo.Collection
)

// ConnectMongoDB connects once, binds the collections and ensures indexes.
func ConnectMongoDB() error {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: no .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		return errors.New("MONGO_URI environment variable not set")
	}

	DatabaseName = os.Getenv("DATABASE_NAME")
	if DatabaseName == "" {
		DatabaseName = "PlacementDB"
	}

	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, connectErr = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if connectErr != nil {
			return
		}

		if connectErr = client.Ping(ctx, readpref.Primary()); connectErr != nil {
			return
		}

		db := client.Database(DatabaseName)
		StudentCollection = db.Collection("students")
		ModuleCollection = db.Collection("modules")
		StaffCollection = db.Collection("staffs")
		AdminCollection = db.Collection("admins")
		ProgressCollection = db.Collection("trainingprogresses")

		connectErr = ensureIndexes(ctx)
		if connectErr == nil {
			log.Println("MongoDB connected:", DatabaseName)
		}
	})

	return connectErr
}

// ensureIndexes enforces the uniqueness constraints the services rely on:
// one student per regNo, one staff/admin per email, and at most one
// progress record per (student, training) pair.
func ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	if _, err := StudentCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "regNo", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}

	if _, err := StaffCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}

	if _, err := AdminCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}

	_, err := ProgressCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "student", Value: 1}, {Key: "training", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// GetCollection returns a collection from the connected database.
func GetCollection(name string) *mongo.Collection {
	if client == nil {
		log.Fatal("MongoDB client is nil")
	}
	return client.Database(DatabaseName).Collection(name)
}

// DisconnectMongoDB tears the connection down on shutdown.
func DisconnectMongoDB() {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Println("error disconnecting MongoDB:", err)
	}
}
