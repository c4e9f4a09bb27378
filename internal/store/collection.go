package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoDocument is returned by Collection implementations when a lookup
// matches nothing.
var ErrNoDocument = errors.New("no document found")

// FindOptions narrows a Find call to a sorted window of the matching set.
type FindOptions struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

// Collection is the document-store contract the entity store is built on.
// The Mongo adapter in internal/infrastructure/mongodb implements it for
// production; tests use an in-memory implementation. A handle is injected at
// store construction, never looked up from ambient state.
type Collection interface {
	InsertOne(ctx context.Context, doc Record) (primitive.ObjectID, error)
	InsertMany(ctx context.Context, docs []Record) ([]primitive.ObjectID, error)
	FindOne(ctx context.Context, filter bson.M) (Record, error)
	Find(ctx context.Context, filter bson.M, opts FindOptions) ([]Record, error)
	UpdateOne(ctx context.Context, filter bson.M, set bson.M) (matched int64, err error)
	DeleteOne(ctx context.Context, filter bson.M) (deleted int64, err error)
	CountDocuments(ctx context.Context, filter bson.M) (int64, error)
	Distinct(ctx context.Context, field string, filter bson.M) ([]interface{}, error)
	Aggregate(ctx context.Context, pipeline []bson.M) ([]Record, error)
}
