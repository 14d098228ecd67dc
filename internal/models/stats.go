package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ChannelStats is the dashboard summary for a channel. Counters are always
// computed from the store; any caching sits in front of this shape.
type ChannelStats struct {
	ChannelID        primitive.ObjectID `json:"channelId"`
	Username         string             `json:"username"`
	FullName         string             `json:"fullName"`
	Avatar           string             `json:"avatar"`
	CoverImage       string             `json:"coverImage,omitempty"`
	TotalSubscribers int64              `json:"totalSubscribers"`
	TotalVideos      int64              `json:"totalVideos"`
	TotalViews       int64              `json:"totalViews"`
	TotalLikes       int64              `json:"totalLikes"`
}
