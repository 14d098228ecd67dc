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

type SubscriptionRepository interface {
	FindByPair(ctx context.Context, channel, subscriber primitive.ObjectID) (*models.Subscription, error)
	Create(ctx context.Context, s *models.Subscription) (*models.Subscription, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	CountByChannel(ctx context.Context, channel primitive.ObjectID) (int64, error)
	SubscribersOf(ctx context.Context, channel primitive.ObjectID) ([]models.SubscriberEntry, error)
	ChannelsOf(ctx context.Context, subscriber primitive.ObjectID) ([]models.ChannelEntry, error)
}

type mongoSubscriptionRepo struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewMongoSubscriptionRepo(db *mongo.Database, opTimeout time.Duration) SubscriptionRepository {
	col := db.Collection("subscriptions")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "channel", Value: 1}}},
		{Keys: bson.D{{Key: "subscriber", Value: 1}}},
	})
	return &mongoSubscriptionRepo{col: col, timeout: opTimeout}
}

func (r *mongoSubscriptionRepo) FindByPair(ctx context.Context, channel, subscriber primitive.ObjectID) (*models.Subscription, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var s models.Subscription
	err := r.col.FindOne(ctx, bson.M{"channel": channel, "subscriber": subscriber}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *mongoSubscriptionRepo) Create(ctx context.Context, s *models.Subscription) (*models.Subscription, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	s.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return nil, err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return s, nil
}

func (r *mongoSubscriptionRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
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

func (r *mongoSubscriptionRepo) CountByChannel(ctx context.Context, channel primitive.ObjectID) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"channel": channel})
}

func (r *mongoSubscriptionRepo) SubscribersOf(ctx context.Context, channel primitive.ObjectID) ([]models.SubscriberEntry, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	p := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"channel": channel}}},
	}
	p = append(p, userLookupStages("subscriber")...)

	cur, err := r.col.Aggregate(ctx, p)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []models.SubscriberEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mongoSubscriptionRepo) ChannelsOf(ctx context.Context, subscriber primitive.ObjectID) ([]models.ChannelEntry, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	p := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"subscriber": subscriber}}},
	}
	p = append(p, userLookupStages("channel")...)

	cur, err := r.col.Aggregate(ctx, p)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []models.ChannelEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
