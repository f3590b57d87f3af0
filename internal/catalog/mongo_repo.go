package catalog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo reads documents from a MongoDB database; the document id is _id.
type MongoRepo struct {
	db      *mongo.Database
	timeout time.Duration
}

func NewMongoRepo(db *mongo.Database, timeout time.Duration) *MongoRepo {
	return &MongoRepo{db: db, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) ListAll(ctx context.Context, collection string) ([]Document, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.db.Collection(collection).Find(timeoutCtx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cur.Close(timeoutCtx)

	var out []Document
	for cur.Next(timeoutCtx) {
		var m bson.M
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		id := mongoID(m["_id"])
		delete(m, "_id")
		out = append(out, Document{ID: id, Fields: m})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

func (r *MongoRepo) Upsert(ctx context.Context, collection string, doc Document) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	replacement := bson.M{"_id": doc.ID}
	for k, v := range doc.Fields {
		replacement[k] = v
	}
	_, err := r.db.Collection(collection).ReplaceOne(timeoutCtx,
		bson.M{"_id": doc.ID},
		replacement,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", doc.ID, err)
	}
	return nil
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

func mongoID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}
