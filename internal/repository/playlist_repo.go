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

type PlaylistRepository interface {
	Create(ctx context.Context, p *models.Playlist) (*models.Playlist, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Playlist, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Playlist, error)
	PushVideo(ctx context.Context, id, videoID primitive.ObjectID) error
	PullVideo(ctx context.Context, id, videoID primitive.ObjectID) error
	Detail(ctx context.Context, id primitive.ObjectID) (*models.PlaylistDetail, error)
}

type mongoPlaylistRepo struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewMongoPlaylistRepo(db *mongo.Database, opTimeout time.Duration) PlaylistRepository {
	col := db.Collection("playlists")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	return &mongoPlaylistRepo{col: col, timeout: opTimeout}
}

func (r *mongoPlaylistRepo) Create(ctx context.Context, p *models.Playlist) (*models.Playlist, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Videos == nil {
		p.Videos = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

func (r *mongoPlaylistRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Playlist
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPlaylistRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Playlist, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	patch["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Playlist
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPlaylistRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
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

func (r *mongoPlaylistRepo) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Playlist, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	playlists := []models.Playlist{}
	if err := cur.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *mongoPlaylistRepo) PushVideo(ctx context.Context, id, videoID primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"videos": videoID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPlaylistRepo) PullVideo(ctx context.Context, id, videoID primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"videos": videoID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPlaylistRepo) Detail(ctx context.Context, id primitive.ObjectID) (*models.PlaylistDetail, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, PlaylistDetailPipeline(id))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var details []models.PlaylistDetail
	if err := cur.All(ctx, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNotFound
	}
	return &details[0], nil
}
