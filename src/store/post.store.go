package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mingle.app/src/models"
)

// PostStore is the persistence surface the post handlers talk to.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoPostStore struct {
	posts  *mongo.Collection
	users  *mongo.Collection
	client *mongo.Client
}

func NewPostStore(db *mongo.Database) PostStore {
	return &mongoPostStore{
		posts:  db.Collection("posts"),
		users:  db.Collection("users"),
		client: db.Client(),
	}
}

// Create inserts the post and pushes its id onto the author's posts array
// in one transaction. Any failure aborts both writes.
func (s *mongoPostStore) Create(ctx context.Context, post *models.Post) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		post.CreatedAt = time.Now()

		result, err := s.posts.InsertOne(sc, post)
		if err != nil {
			return nil, err
		}
		post.ID = result.InsertedID.(primitive.ObjectID)

		update, err := s.users.UpdateOne(sc,
			bson.M{"_id": post.Author},
			bson.M{
				"$push": bson.M{"posts": post.ID},
				"$set":  bson.M{"updated_at": time.Now()},
			})
		if err != nil {
			return nil, err
		}
		if update.MatchedCount == 0 {
			return nil, mongo.ErrNoDocuments
		}
		return nil, nil
	})
	return err
}

func (s *mongoPostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *mongoPostStore) FindByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Post, error) {
	cursor, err := s.posts.Find(ctx, bson.M{"author": author})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes the post and pulls its id from the author's posts array
// in one transaction.
func (s *mongoPostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var post models.Post
		if err := s.posts.FindOne(sc, bson.M{"_id": id}).Decode(&post); err != nil {
			return nil, err
		}

		if _, err := s.posts.DeleteOne(sc, bson.M{"_id": id}); err != nil {
			return nil, err
		}

		_, err := s.users.UpdateOne(sc,
			bson.M{"_id": post.Author},
			bson.M{"$pull": bson.M{"posts": id}})
		return nil, err
	})
	return err
}
