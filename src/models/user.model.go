package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name" form:"name" binding:"required"`
	Email        string               `json:"email" bson:"email" form:"email" binding:"required,email"`
	Age          int                  `json:"age" bson:"age" form:"age" binding:"omitempty,gte=18,lte=100"`
	Password     string               `json:"-" bson:"password"`
	ProfileImage []byte               `json:"-" bson:"profile_image,omitempty"`
	Posts        []primitive.ObjectID `json:"posts" bson:"posts"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updated_at"`
}

// SetPassword replaces the plaintext password with its bcrypt hash.
// Called right before the user document is written.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword compares a plaintext candidate against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// MarshalJSON adds the computed post_count and has_image fields. Neither
// is persisted; they are derived from the document on every encode.
func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	return json.Marshal(struct {
		alias
		PostCount int  `json:"post_count"`
		HasImage  bool `json:"has_image"`
	}{
		alias:     alias(u),
		PostCount: len(u.Posts),
		HasImage:  len(u.ProfileImage) > 0,
	})
}

// PopulatedUser is a User with its post references resolved into full
// Post documents by a $lookup.
type PopulatedUser struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Age       int                `json:"age" bson:"age"`
	Posts     []Post             `json:"posts" bson:"post_docs"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
