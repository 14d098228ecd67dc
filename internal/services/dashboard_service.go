package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/repository"
)

const statsCachePrefix = "channel_stats:"

type DashboardService interface {
	Stats(ctx context.Context, channelUsername string) (*models.ChannelStats, error)
	Videos(ctx context.Context, channelUsername string) ([]models.Video, error)
}

type dashboardService struct {
	users  repository.UserRepository
	videos repository.VideoRepository
	subs   repository.SubscriptionRepository
	likes  repository.LikeRepository
	cache  *redis.Client // nil disables caching
	ttl    time.Duration
}

func NewDashboardService(
	users repository.UserRepository,
	videos repository.VideoRepository,
	subs repository.SubscriptionRepository,
	likes repository.LikeRepository,
	cache *redis.Client,
	ttl time.Duration,
) DashboardService {
	return &dashboardService{users: users, videos: videos, subs: subs, likes: likes, cache: cache, ttl: ttl}
}

// Stats computes the channel summary from count queries. The redis layer
// is a short-TTL cache in front of the computed values, never the source
// of truth.
func (s *dashboardService) Stats(ctx context.Context, channelUsername string) (*models.ChannelStats, error) {
	channelUsername = strings.ToLower(strings.TrimSpace(channelUsername))

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCachePrefix+channelUsername).Result(); err == nil {
			var cached models.ChannelStats
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	channel, err := s.users.FindByUsername(ctx, channelUsername)
	if err != nil {
		return nil, storeErr(err, "channel does not exist")
	}

	totalSubscribers, err := s.subs.CountByChannel(ctx, channel.ID)
	if err != nil {
		return nil, storeErr(err, "channel does not exist")
	}
	totalVideos, totalViews, err := s.videos.StatsByOwner(ctx, channel.ID)
	if err != nil {
		return nil, storeErr(err, "channel does not exist")
	}
	videoIDs, err := s.videos.IDsByOwner(ctx, channel.ID)
	if err != nil {
		return nil, storeErr(err, "channel does not exist")
	}
	totalLikes, err := s.likes.CountByVideos(ctx, videoIDs)
	if err != nil {
		return nil, storeErr(err, "channel does not exist")
	}

	stats := &models.ChannelStats{
		ChannelID:        channel.ID,
		Username:         channel.Username,
		FullName:         channel.FullName,
		Avatar:           channel.Avatar,
		CoverImage:       channel.CoverImage,
		TotalSubscribers: totalSubscribers,
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalLikes:       totalLikes,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			_ = s.cache.Set(ctx, statsCachePrefix+channelUsername, raw, s.ttl).Err()
		}
	}
	return stats, nil
}

func (s *dashboardService) Videos(ctx context.Context, channelUsername string) ([]models.Video, error) {
	channel, err := s.users.FindByUsername(ctx, strings.ToLower(channelUsername))
	if err != nil {
		return nil, storeErr(err, "channel does not exist")
	}
	videos, err := s.videos.FindByOwner(ctx, channel.ID)
	if err != nil {
		return nil, storeErr(err, "videos not found")
	}
	return videos, nil
}
