package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUser_SetPassword(t *testing.T) {
	user := User{}

	err := user.SetPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.Password)
	assert.NotEqual(t, "correct horse battery staple", user.Password)

	assert.True(t, user.CheckPassword("correct horse battery staple"))
	assert.False(t, user.CheckPassword("wrong password"))
}

func TestUser_MarshalJSON(t *testing.T) {
	user := User{
		ID:           primitive.NewObjectID(),
		Name:         "Alice",
		Email:        "alice@example.com",
		Age:          30,
		Password:     "$2a$10$somehash",
		ProfileImage: []byte{0xff, 0xd8},
		Posts:        []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()},
	}

	data, err := json.Marshal(user)
	assert.NoError(t, err)

	var out map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, float64(2), out["post_count"])
	assert.Equal(t, true, out["has_image"])
	assert.Equal(t, "alice@example.com", out["email"])

	// The hash and the raw image never leave the server.
	assert.NotContains(t, out, "password")
	assert.NotContains(t, out, "profile_image")
	assert.NotContains(t, string(data), "somehash")
}

func TestUser_MarshalJSON_NoPosts(t *testing.T) {
	data, err := json.Marshal(User{Name: "Bob", Email: "bob@example.com"})
	assert.NoError(t, err)

	var out map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, float64(0), out["post_count"])
	assert.Equal(t, false, out["has_image"])
}
