package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func boolPtr(v bool) *bool { return &v }

func TestListQuery_Filter(t *testing.T) {
	tests := []struct {
		name     string
		query    ListQuery
		expected bson.M
	}{
		{
			name:     "empty query matches everything",
			query:    ListQuery{},
			expected: bson.M{},
		},
		{
			name:     "single name clause is not wrapped",
			query:    ListQuery{Name: "ali"},
			expected: bson.M{"name": bson.M{"$regex": "ali", "$options": "i"}},
		},
		{
			name:     "exact email match",
			query:    ListQuery{Email: "a@b.com"},
			expected: bson.M{"email": "a@b.com"},
		},
		{
			name:     "age bounds merge into one range",
			query:    ListQuery{MinAge: 18, MaxAge: 30},
			expected: bson.M{"age": bson.M{"$gte": 18, "$lte": 30}},
		},
		{
			name:     "only lower bound",
			query:    ListQuery{MinAge: 21},
			expected: bson.M{"age": bson.M{"$gte": 21}},
		},
		{
			name:     "has_posts true checks first element",
			query:    ListQuery{HasPosts: boolPtr(true)},
			expected: bson.M{"posts.0": bson.M{"$exists": true}},
		},
		{
			name:     "has_posts false",
			query:    ListQuery{HasPosts: boolPtr(false)},
			expected: bson.M{"posts.0": bson.M{"$exists": false}},
		},
		{
			name:  "multiple clauses combine with $and by default",
			query: ListQuery{Name: "ali", MinAge: 18},
			expected: bson.M{"$and": []bson.M{
				{"name": bson.M{"$regex": "ali", "$options": "i"}},
				{"age": bson.M{"$gte": 18}},
			}},
		},
		{
			name:  "match any combines with $or",
			query: ListQuery{Name: "ali", Email: "a@b.com", MatchAny: true},
			expected: bson.M{"$or": []bson.M{
				{"name": bson.M{"$regex": "ali", "$options": "i"}},
				{"email": "a@b.com"},
			}},
		},
		{
			name:     "match any with a single clause stays flat",
			query:    ListQuery{Email: "a@b.com", MatchAny: true},
			expected: bson.M{"email": "a@b.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.query.Filter())
		})
	}
}

func TestListQuery_FindOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := ListQuery{}.FindOptions()

		assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, opts.Sort)
		assert.Equal(t, int64(0), *opts.Skip)
		assert.Equal(t, int64(defaultLimit), *opts.Limit)
	})

	t.Run("ascending sort by field", func(t *testing.T) {
		opts := ListQuery{SortBy: "age"}.FindOptions()

		assert.Equal(t, bson.D{{Key: "age", Value: 1}}, opts.Sort)
	})

	t.Run("descending sort by field", func(t *testing.T) {
		opts := ListQuery{SortBy: "age:desc"}.FindOptions()

		assert.Equal(t, bson.D{{Key: "age", Value: -1}}, opts.Sort)
	})

	t.Run("pagination computes skip from page and limit", func(t *testing.T) {
		opts := ListQuery{Page: 3, Limit: 10}.FindOptions()

		assert.Equal(t, int64(20), *opts.Skip)
		assert.Equal(t, int64(10), *opts.Limit)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		opts := ListQuery{Limit: 10000}.FindOptions()

		assert.Equal(t, int64(maxLimit), *opts.Limit)
	})
}
