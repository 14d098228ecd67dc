package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

func TestSubscriptionToggle(t *testing.T) {
	alice := &models.User{Username: "alice", FullName: "Alice"}
	bob := &models.User{Username: "bob", FullName: "Bob"}
	users := newFakeUserRepo(alice, bob)
	subs := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(subs, users)

	caller := models.Caller{ID: bob.ID, Username: "bob"}

	first, err := svc.Toggle(context.Background(), caller, "alice")
	require.NoError(t, err)
	assert.True(t, first.Subscribed)
	require.NotNil(t, first.Subscription)
	assert.Equal(t, alice.ID, first.Subscription.Channel)
	assert.Equal(t, bob.ID, first.Subscription.Subscriber)
	assert.Len(t, subs.subs, 1)

	second, err := svc.Toggle(context.Background(), caller, "alice")
	require.NoError(t, err)
	assert.False(t, second.Subscribed)
	assert.Nil(t, second.Subscription)
	assert.Empty(t, subs.subs)
}

func TestSubscriptionToggleMixedCaseUsername(t *testing.T) {
	alice := &models.User{Username: "alice"}
	bob := &models.User{Username: "bob"}
	users := newFakeUserRepo(alice, bob)
	svc := NewSubscriptionService(newFakeSubscriptionRepo(), users)

	res, err := svc.Toggle(context.Background(), models.Caller{ID: bob.ID}, "  Alice ")
	require.NoError(t, err)
	assert.True(t, res.Subscribed)
}

func TestSubscriptionToggleOwnChannel(t *testing.T) {
	alice := &models.User{Username: "alice"}
	users := newFakeUserRepo(alice)
	subs := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(subs, users)

	_, err := svc.Toggle(context.Background(), models.Caller{ID: alice.ID, Username: "alice"}, "alice")
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Empty(t, subs.subs)
}

func TestSubscriptionToggleUnknownChannel(t *testing.T) {
	bob := &models.User{Username: "bob"}
	users := newFakeUserRepo(bob)
	svc := NewSubscriptionService(newFakeSubscriptionRepo(), users)

	_, err := svc.Toggle(context.Background(), models.Caller{ID: bob.ID}, "ghost")
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestSubscribersAndSubscriptions(t *testing.T) {
	alice := &models.User{Username: "alice"}
	bob := &models.User{Username: "bob"}
	users := newFakeUserRepo(alice, bob)
	subs := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(subs, users)

	_, err := svc.Toggle(context.Background(), models.Caller{ID: bob.ID}, "alice")
	require.NoError(t, err)

	subscribers, err := svc.Subscribers(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, subscribers, 1)

	channels, err := svc.Subscriptions(context.Background(), "bob")
	require.NoError(t, err)
	assert.Len(t, channels, 1)

	none, err := svc.Subscriptions(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, none)
}
