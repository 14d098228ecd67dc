package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/panditashushukl/ESamaaj/internal/models"
)

type LikeRepository interface {
	FindOne(ctx context.Context, filter bson.M) (*models.Like, error)
	Create(ctx context.Context, l *models.Like) (*models.Like, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	CountByVideos(ctx context.Context, videoIDs []primitive.ObjectID) (int64, error)
	LikedVideos(ctx context.Context, likedBy primitive.ObjectID) ([]models.VideoListItem, error)
}

type mongoLikeRepo struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewMongoLikeRepo(db *mongo.Database, opTimeout time.Duration) LikeRepository {
	col := db.Collection("likes")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "likedBy", Value: 1}},
	})
	return &mongoLikeRepo{col: col, timeout: opTimeout}
}

func (r *mongoLikeRepo) FindOne(ctx context.Context, filter bson.M) (*models.Like, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var l models.Like
	err := r.col.FindOne(ctx, filter).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *mongoLikeRepo) Create(ctx context.Context, l *models.Like) (*models.Like, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	l.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, l)
	if err != nil {
		return nil, err
	}
	l.ID = res.InsertedID.(primitive.ObjectID)
	return l, nil
}

func (r *mongoLikeRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
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

func (r *mongoLikeRepo) CountByVideos(ctx context.Context, videoIDs []primitive.ObjectID) (int64, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"video": bson.M{"$in": videoIDs}})
}

func (r *mongoLikeRepo) LikedVideos(ctx context.Context, likedBy primitive.ObjectID) ([]models.VideoListItem, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	p := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"likedBy": likedBy, "video": bson.M{"$exists": true}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "videos"},
			{Key: "localField", Value: "video"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "video"},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: playlistVideoProjection}}}},
		}}},
		{{Key: "$unwind", Value: "$video"}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$video"}}}},
	}
	cur, err := r.col.Aggregate(ctx, p)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	videos := []models.VideoListItem{}
	if err := cur.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}
