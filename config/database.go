package config

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var DB *mongo.Database

// ConnectDB connects to MongoDB using MONGODB_URI and keeps the database
// handle in the package-level DB. MONGO_DEBUG=true turns on command-level
// logging of everything the driver sends.
func ConnectDB() {
	godotenv.Load()
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017/mingle_db"
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "mingle_db"
	}

	clientOptions := options.Client().ApplyURI(mongoURI)

	if os.Getenv("MONGO_DEBUG") == "true" {
		logrus.SetLevel(logrus.DebugLevel)
		clientOptions.SetMonitor(commandLogger())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MongoDB")
	}

	if err = client.Ping(ctx, nil); err != nil {
		logrus.WithError(err).Fatal("Failed to ping MongoDB")
	}

	logrus.WithField("database", dbName).Info("Connected to MongoDB")

	DB = client.Database(dbName)
}

func GetCollection(collectionName string) *mongo.Collection {
	return DB.Collection(collectionName)
}

// CreateIndexes declares the indexes the models rely on. Uniqueness of
// user emails is enforced here, at write time, by the server.
func CreateIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := GetCollection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create unique email index")
	}

	_, err = GetCollection("posts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author", Value: 1}},
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create post author index")
	}
}

func commandLogger() *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			logrus.WithFields(logrus.Fields{
				"command":    evt.CommandName,
				"database":   evt.DatabaseName,
				"request_id": evt.RequestID,
			}).Debug(evt.Command.String())
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			logrus.WithFields(logrus.Fields{
				"command":    evt.CommandName,
				"request_id": evt.RequestID,
			}).Debug(evt.Failure)
		},
	}
}
