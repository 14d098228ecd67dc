package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription links a subscriber to a channel. At most one per pair,
// maintained by toggle logic rather than a unique index.
type Subscription struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// SubscriberEntry is a subscription with the subscriber user joined.
type SubscriberEntry struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Subscriber *PublicUser        `bson:"subscriber,omitempty" json:"subscriber,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// ChannelEntry is a subscription with the channel user joined.
type ChannelEntry struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Channel   *PublicUser        `bson:"channel,omitempty" json:"channel,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
