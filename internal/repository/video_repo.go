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

type VideoRepository interface {
	Create(ctx context.Context, v *models.Video) (*models.Video, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Video, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, opts ListOptions) ([]models.VideoListItem, error)
	Count(ctx context.Context, opts ListOptions) (int64, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	StatsByOwner(ctx context.Context, owner primitive.ObjectID) (totalVideos, totalViews int64, err error)
	IDsByOwner(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error)
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Video, error)
}

type mongoVideoRepo struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewMongoVideoRepo(db *mongo.Database, opTimeout time.Duration) VideoRepository {
	col := db.Collection("videos")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "title", Value: "text"}}},
	})
	return &mongoVideoRepo{col: col, timeout: opTimeout}
}

func (r *mongoVideoRepo) Create(ctx context.Context, v *models.Video) (*models.Video, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, v)
	if err != nil {
		return nil, err
	}
	v.ID = res.InsertedID.(primitive.ObjectID)
	return v, nil
}

func (r *mongoVideoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var v models.Video
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *mongoVideoRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Video, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	patch["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var v models.Video
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *mongoVideoRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
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

func (r *mongoVideoRepo) List(ctx context.Context, opts ListOptions) ([]models.VideoListItem, error) {
	pipeline, err := VideoListPipeline(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []models.VideoListItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Count runs against the same pre-join filter the list pipeline matches on.
func (r *mongoVideoRepo) Count(ctx context.Context, opts ListOptions) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return r.col.CountDocuments(ctx, opts.Filter())
}

func (r *mongoVideoRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

func (r *mongoVideoRepo) StatsByOwner(ctx context.Context, owner primitive.ObjectID) (int64, int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner": owner}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$views"}}},
			{Key: "totalVideos", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		TotalViews  int64 `bson:"totalViews"`
		TotalVideos int64 `bson:"totalVideos"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].TotalVideos, rows[0].TotalViews, nil
}

func (r *mongoVideoRepo) IDsByOwner(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (r *mongoVideoRepo) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Video, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	videos := []models.Video{}
	if err := cur.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}
