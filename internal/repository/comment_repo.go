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

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Comment, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int) ([]models.CommentListItem, error)
	CountByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error)
	DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) error
}

type mongoCommentRepo struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewMongoCommentRepo(db *mongo.Database, opTimeout time.Duration) CommentRepository {
	col := db.Collection("comments")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return &mongoCommentRepo{col: col, timeout: opTimeout}
}

func (r *mongoCommentRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return c, nil
}

func (r *mongoCommentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var c models.Comment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoCommentRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Comment, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	patch["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Comment
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoCommentRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
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

func (r *mongoCommentRepo) ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int) ([]models.CommentListItem, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, CommentListPipeline(videoID, page, limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []models.CommentListItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoCommentRepo) CountByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"video": videoID})
}

// DeleteByVideo removes a deleted video's comments.
func (r *mongoCommentRepo) DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"video": videoID})
	return err
}
