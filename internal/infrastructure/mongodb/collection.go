package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fretops/fretops-api/internal/store"
)

// Collection adapts *mongo.Collection to the store.Collection contract.
type Collection struct {
	c *mongo.Collection
}

func NewCollection(c *mongo.Collection) *Collection {
	return &Collection{c: c}
}

var _ store.Collection = (*Collection)(nil)

func (a *Collection) InsertOne(ctx context.Context, doc store.Record) (primitive.ObjectID, error) {
	res, err := a.c.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, cast := res.InsertedID.(primitive.ObjectID)
	if !cast {
		return primitive.NilObjectID, errors.New("inserted id is not an ObjectID")
	}
	return id, nil
}

func (a *Collection) InsertMany(ctx context.Context, docs []store.Record) ([]primitive.ObjectID, error) {
	payload := make([]interface{}, len(docs))
	for i, d := range docs {
		payload[i] = bson.M(d)
	}
	res, err := a.c.InsertMany(ctx, payload)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, raw := range res.InsertedIDs {
		if id, cast := raw.(primitive.ObjectID); cast {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (a *Collection) FindOne(ctx context.Context, filter bson.M) (store.Record, error) {
	var out store.Record
	err := a.c.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return normalize(out), nil
}

func (a *Collection) Find(ctx context.Context, filter bson.M, fo store.FindOptions) ([]store.Record, error) {
	opts := options.Find()
	if len(fo.Sort) > 0 {
		opts.SetSort(fo.Sort)
	}
	if fo.Skip > 0 {
		opts.SetSkip(fo.Skip)
	}
	if fo.Limit > 0 {
		opts.SetLimit(fo.Limit)
	}

	cur, err := a.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []store.Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = normalize(out[i])
	}
	return out, nil
}

func (a *Collection) UpdateOne(ctx context.Context, filter bson.M, set bson.M) (int64, error) {
	res, err := a.c.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (a *Collection) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	res, err := a.c.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (a *Collection) CountDocuments(ctx context.Context, filter bson.M) (int64, error) {
	return a.c.CountDocuments(ctx, filter)
}

func (a *Collection) Distinct(ctx context.Context, field string, filter bson.M) ([]interface{}, error) {
	return a.c.Distinct(ctx, field, filter)
}

func (a *Collection) Aggregate(ctx context.Context, pipeline []bson.M) ([]store.Record, error) {
	cur, err := a.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []store.Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// normalize converts BSON datetimes back to time.Time so timestamps render as
// RFC 3339 strings in JSON instead of epoch milliseconds.
func normalize(rec store.Record) store.Record {
	for k, v := range rec {
		if dt, isDT := v.(primitive.DateTime); isDT {
			rec[k] = dt.Time().UTC()
		}
	}
	return rec
}
