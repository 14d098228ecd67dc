package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/storage"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type TweetService interface {
	Create(ctx context.Context, caller models.Caller, content string, images []FileUpload) (*models.Tweet, error)
	ListByUsername(ctx context.Context, username string) ([]models.Tweet, error)
	Update(ctx context.Context, caller models.Caller, tweetID, content string) (*models.Tweet, error)
	Delete(ctx context.Context, caller models.Caller, tweetID string) error
}

type tweetService struct {
	tweets repository.TweetRepository
	users  repository.UserRepository
	store  storage.Store
}

func NewTweetService(tweets repository.TweetRepository, users repository.UserRepository, store storage.Store) TweetService {
	return &tweetService{tweets: tweets, users: users, store: store}
}

// Create uploads content images concurrently with fail-fast semantics:
// the first failed upload cancels the rest and the whole request fails.
func (s *tweetService) Create(ctx context.Context, caller models.Caller, content string, images []FileUpload) (*models.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, utils.BadRequest("content is required")
	}

	urls := make([]string, len(images))
	keys := make([]string, len(images))
	thumbURLs := make([]string, len(images))
	thumbKeys := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	for i := range images {
		i := i
		g.Go(func() error {
			img := images[i]
			key := storage.NewKey(caller.ID.Hex(), img.Name)
			obj, err := s.store.Upload(gctx, key, img.ContentType, img.Data, nil)
			if err != nil {
				return err
			}
			urls[i] = obj.URL
			keys[i] = key
			// thumbnails are best effort, a non-image payload just skips them
			if thumb, terr := storage.Thumbnail(img.Data); terr == nil {
				if tobj, terr := s.store.Upload(gctx, key+"_thumb.jpg", "image/jpeg", thumb, nil); terr == nil {
					thumbURLs[i] = tobj.URL
					thumbKeys[i] = key + "_thumb.jpg"
				}
			}
			return nil
		})
	}
	cleanup := func() {
		for i := range keys {
			if keys[i] != "" {
				_ = s.store.Delete(ctx, keys[i])
			}
			if thumbKeys[i] != "" {
				_ = s.store.Delete(ctx, thumbKeys[i])
			}
		}
	}
	if err := g.Wait(); err != nil {
		cleanup()
		return nil, utils.Upstream("error uploading image")
	}

	tweet, err := s.tweets.Create(ctx, &models.Tweet{
		Content:            content,
		ContentImages:      urls,
		ContentImageThumbs: thumbURLs,
		Owner:              caller.ID,
	})
	if err != nil {
		cleanup()
		return nil, storeErr(err, "tweet not found")
	}
	return tweet, nil
}

func (s *tweetService) ListByUsername(ctx context.Context, username string) ([]models.Tweet, error) {
	user, err := s.users.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, storeErr(err, "user not found")
	}
	tweets, err := s.tweets.FindByOwner(ctx, user.ID)
	if err != nil {
		return nil, storeErr(err, "tweets not found")
	}
	return tweets, nil
}

func (s *tweetService) Update(ctx context.Context, caller models.Caller, tweetID, content string) (*models.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, utils.BadRequest("content is required")
	}
	tweet, err := s.ownedTweet(ctx, caller, tweetID)
	if err != nil {
		return nil, err
	}
	updated, err := s.tweets.UpdateByID(ctx, tweet.ID, bson.M{"content": content})
	if err != nil {
		return nil, storeErr(err, "tweet not found")
	}
	return updated, nil
}

func (s *tweetService) Delete(ctx context.Context, caller models.Caller, tweetID string) error {
	tweet, err := s.ownedTweet(ctx, caller, tweetID)
	if err != nil {
		return err
	}
	if err := s.tweets.DeleteByID(ctx, tweet.ID); err != nil {
		return storeErr(err, "tweet not found")
	}
	return nil
}

func (s *tweetService) ownedTweet(ctx context.Context, caller models.Caller, tweetID string) (*models.Tweet, error) {
	id, err := repository.ParseObjectID(tweetID)
	if err != nil {
		return nil, utils.BadRequest("invalid tweet id")
	}
	tweet, err := s.tweets.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "tweet not found")
	}
	if tweet.Owner != caller.ID {
		return nil, utils.Forbidden("you are not the owner of this tweet")
	}
	return tweet, nil
}
