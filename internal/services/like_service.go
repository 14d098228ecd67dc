package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type LikeService interface {
	ToggleVideo(ctx context.Context, caller models.Caller, videoID string) (bool, error)
	ToggleComment(ctx context.Context, caller models.Caller, commentID string) (bool, error)
	ToggleTweet(ctx context.Context, caller models.Caller, tweetID string) (bool, error)
	LikedVideos(ctx context.Context, caller models.Caller) ([]models.VideoListItem, error)
}

type likeService struct {
	likes    repository.LikeRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	tweets   repository.TweetRepository
}

func NewLikeService(likes repository.LikeRepository, videos repository.VideoRepository, comments repository.CommentRepository, tweets repository.TweetRepository) LikeService {
	return &likeService{likes: likes, videos: videos, comments: comments, tweets: tweets}
}

func (s *likeService) ToggleVideo(ctx context.Context, caller models.Caller, videoID string) (bool, error) {
	id, err := repository.ParseObjectID(videoID)
	if err != nil {
		return false, utils.BadRequest("invalid video id")
	}
	if _, err := s.videos.FindByID(ctx, id); err != nil {
		return false, storeErr(err, "video not found")
	}
	return s.toggle(ctx, caller, bson.M{"video": id, "likedBy": caller.ID}, &models.Like{Video: &id, LikedBy: caller.ID})
}

func (s *likeService) ToggleComment(ctx context.Context, caller models.Caller, commentID string) (bool, error) {
	id, err := repository.ParseObjectID(commentID)
	if err != nil {
		return false, utils.BadRequest("invalid comment id")
	}
	if _, err := s.comments.FindByID(ctx, id); err != nil {
		return false, storeErr(err, "comment not found")
	}
	return s.toggle(ctx, caller, bson.M{"comment": id, "likedBy": caller.ID}, &models.Like{Comment: &id, LikedBy: caller.ID})
}

func (s *likeService) ToggleTweet(ctx context.Context, caller models.Caller, tweetID string) (bool, error) {
	id, err := repository.ParseObjectID(tweetID)
	if err != nil {
		return false, utils.BadRequest("invalid tweet id")
	}
	if _, err := s.tweets.FindByID(ctx, id); err != nil {
		return false, storeErr(err, "tweet not found")
	}
	return s.toggle(ctx, caller, bson.M{"tweet": id, "likedBy": caller.ID}, &models.Like{Tweet: &id, LikedBy: caller.ID})
}

// toggle flips one (target, likedBy) pair: present deletes, absent creates.
func (s *likeService) toggle(ctx context.Context, caller models.Caller, filter bson.M, like *models.Like) (bool, error) {
	existing, err := s.likes.FindOne(ctx, filter)
	switch {
	case err == nil:
		if err := s.likes.DeleteByID(ctx, existing.ID); err != nil {
			return false, storeErr(err, "like not found")
		}
		return false, nil
	case errors.Is(err, repository.ErrNotFound):
		if _, err := s.likes.Create(ctx, like); err != nil {
			return false, storeErr(err, "like not found")
		}
		return true, nil
	default:
		return false, storeErr(err, "like not found")
	}
}

func (s *likeService) LikedVideos(ctx context.Context, caller models.Caller) ([]models.VideoListItem, error) {
	videos, err := s.likes.LikedVideos(ctx, caller.ID)
	if err != nil {
		return nil, storeErr(err, "videos not found")
	}
	return videos, nil
}
