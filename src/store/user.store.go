package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mingle.app/src/models"
)

// AgeStat is one bucket of the age distribution aggregation.
type AgeStat struct {
	Age   int   `json:"age" bson:"_id"`
	Count int64 `json:"count" bson:"count"`
}

// UserStore is the persistence surface the user handlers talk to.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Find(ctx context.Context, q ListQuery) ([]models.User, error)
	Count(ctx context.Context, q ListQuery) (int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindWithPosts(ctx context.Context, id primitive.ObjectID) (*models.PopulatedUser, error)
	AgeStats(ctx context.Context) ([]AgeStat, error)
}

type mongoUserStore struct {
	collection *mongo.Collection
}

func NewUserStore(collection *mongo.Collection) UserStore {
	return &mongoUserStore{collection: collection}
}

// Insert hashes the password, stamps the document and writes it. The
// unique email index rejects duplicates here.
func (s *mongoUserStore) Insert(ctx context.Context, user *models.User) error {
	if err := user.SetPassword(user.Password); err != nil {
		return err
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Posts == nil {
		user.Posts = []primitive.ObjectID{}
	}

	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return err
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUserStore) Find(ctx context.Context, q ListQuery) ([]models.User, error) {
	cursor, err := s.collection.Find(ctx, q.Filter(), q.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUserStore) Count(ctx context.Context, q ListQuery) (int64, error) {
	return s.collection.CountDocuments(ctx, q.Filter())
}

// UpdateFields applies a partial $set of the given fields.
func (s *mongoUserStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *mongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindWithPosts resolves the user's post references into full documents
// with a $lookup against the posts collection.
func (s *mongoUserStore) FindWithPosts(ctx context.Context, id primitive.ObjectID) (*models.PopulatedUser, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"_id": id}},
		{"$lookup": bson.M{
			"from":         "posts",
			"localField":   "posts",
			"foreignField": "_id",
			"as":           "post_docs",
		}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.PopulatedUser
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &results[0], nil
}

// AgeStats groups users by age and counts each bucket.
func (s *mongoUserStore) AgeStats(ctx context.Context) ([]AgeStat, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"age": bson.M{"$gt": 0}}},
		{"$group": bson.M{
			"_id":   "$age",
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := []AgeStat{}
	if err = cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
