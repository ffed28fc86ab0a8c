package store

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListQuery carries the filtering, sorting and pagination knobs of a user
// listing. Zero values mean "not filtered".
type ListQuery struct {
	Name     string // case-insensitive substring match
	Email    string // exact match
	MinAge   int
	MaxAge   int
	HasPosts *bool
	MatchAny bool   // combine clauses with $or instead of $and
	SortBy   string // "field" or "field:desc"
	Page     int
	Limit    int
}

// Filter builds the bson filter document for the query.
func (q ListQuery) Filter() bson.M {
	var clauses []bson.M

	if q.Name != "" {
		clauses = append(clauses, bson.M{"name": bson.M{"$regex": q.Name, "$options": "i"}})
	}

	if q.Email != "" {
		clauses = append(clauses, bson.M{"email": q.Email})
	}

	age := bson.M{}
	if q.MinAge > 0 {
		age["$gte"] = q.MinAge
	}
	if q.MaxAge > 0 {
		age["$lte"] = q.MaxAge
	}
	if len(age) > 0 {
		clauses = append(clauses, bson.M{"age": age})
	}

	if q.HasPosts != nil {
		clauses = append(clauses, bson.M{"posts.0": bson.M{"$exists": *q.HasPosts}})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	}

	if q.MatchAny {
		return bson.M{"$or": clauses}
	}
	return bson.M{"$and": clauses}
}

// FindOptions builds the sort and pagination options. Sort defaults to
// newest first; limit is clamped to maxLimit.
func (q ListQuery) FindOptions() *options.FindOptions {
	sort := bson.D{{Key: "created_at", Value: -1}}
	if q.SortBy != "" {
		field, dir, _ := strings.Cut(q.SortBy, ":")
		order := 1
		if dir == "desc" {
			order = -1
		}
		sort = bson.D{{Key: field, Value: order}}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	return options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
}
