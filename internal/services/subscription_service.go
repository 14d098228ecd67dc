package services

import (
	"context"
	"strings"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

// ToggleResult reports the state after a subscription toggle.
type ToggleResult struct {
	Subscribed   bool                 `json:"subscribed"`
	Subscription *models.Subscription `json:"subscription,omitempty"`
}

type SubscriptionService interface {
	Toggle(ctx context.Context, caller models.Caller, channelUsername string) (*ToggleResult, error)
	Subscribers(ctx context.Context, channelUsername string) ([]models.SubscriberEntry, error)
	Subscriptions(ctx context.Context, username string) ([]models.ChannelEntry, error)
}

type subscriptionService struct {
	subs  repository.SubscriptionRepository
	users repository.UserRepository
}

func NewSubscriptionService(subs repository.SubscriptionRepository, users repository.UserRepository) SubscriptionService {
	return &subscriptionService{subs: subs, users: users}
}

// Toggle is the one entry point for the subscribe flip. The
// find-then-create-or-delete inside is not atomic; concurrent toggles can
// race, which the storage layer may later fix with an upsert-or-delete
// without changing this signature.
func (s *subscriptionService) Toggle(ctx context.Context, caller models.Caller, channelUsername string) (*ToggleResult, error) {
	channelUsername = strings.ToLower(strings.TrimSpace(channelUsername))
	if channelUsername == "" {
		return nil, utils.BadRequest("please provide channel username")
	}

	channel, err := s.users.FindByUsername(ctx, channelUsername)
	if err != nil {
		return nil, storeErr(err, "channel is not present")
	}
	if channel.ID == caller.ID {
		return nil, utils.BadRequest("you cannot subscribe to your own channel")
	}

	existing, err := s.subs.FindByPair(ctx, channel.ID, caller.ID)
	switch {
	case err == nil:
		if err := s.subs.DeleteByID(ctx, existing.ID); err != nil {
			return nil, storeErr(err, "subscription not found")
		}
		return &ToggleResult{Subscribed: false}, nil
	case err == repository.ErrNotFound:
		sub, err := s.subs.Create(ctx, &models.Subscription{
			Channel:    channel.ID,
			Subscriber: caller.ID,
		})
		if err != nil {
			return nil, storeErr(err, "subscription not found")
		}
		return &ToggleResult{Subscribed: true, Subscription: sub}, nil
	default:
		return nil, storeErr(err, "subscription not found")
	}
}

func (s *subscriptionService) Subscribers(ctx context.Context, channelUsername string) ([]models.SubscriberEntry, error) {
	channel, err := s.users.FindByUsername(ctx, strings.ToLower(channelUsername))
	if err != nil {
		return nil, storeErr(err, "channel not found")
	}
	entries, err := s.subs.SubscribersOf(ctx, channel.ID)
	if err != nil {
		return nil, storeErr(err, "subscribers not found")
	}
	return entries, nil
}

func (s *subscriptionService) Subscriptions(ctx context.Context, username string) ([]models.ChannelEntry, error) {
	subscriber, err := s.users.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, storeErr(err, "subscriber not found")
	}
	entries, err := s.subs.ChannelsOf(ctx, subscriber.ID)
	if err != nil {
		return nil, storeErr(err, "channels not found")
	}
	return entries, nil
}
