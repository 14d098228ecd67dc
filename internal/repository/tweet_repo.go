package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/panditashushukl/ESamaaj/internal/models"
)

type TweetRepository interface {
	Create(ctx context.Context, t *models.Tweet) (*models.Tweet, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Tweet, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Tweet, error)
}

type mongoTweetRepo struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewMongoTweetRepo(db *mongo.Database, opTimeout time.Duration) TweetRepository {
	col := db.Collection("tweets")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return &mongoTweetRepo{col: col, timeout: opTimeout}
}

func (r *mongoTweetRepo) Create(ctx context.Context, t *models.Tweet) (*models.Tweet, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.ContentImages == nil {
		t.ContentImages = []string{}
	}
	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return t, nil
}

func (r *mongoTweetRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var t models.Tweet
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *mongoTweetRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Tweet, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	patch["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Tweet
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *mongoTweetRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTweetRepo) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Tweet, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tweets := []models.Tweet{}
	if err := cur.All(ctx, &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}
