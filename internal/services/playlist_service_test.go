package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

func playlistFixture(t *testing.T) (PlaylistService, *fakePlaylistRepo, *models.Playlist, *models.Video, models.Caller) {
	t.Helper()
	owner := primitive.NewObjectID()
	video := &models.Video{Title: "t1", Owner: owner, IsPublished: true}
	videos := newFakeVideoRepo(video)
	playlist := &models.Playlist{Name: "watch later", Owner: owner}
	playlists := newFakePlaylistRepo(playlist)
	users := newFakeUserRepo()
	return NewPlaylistService(playlists, videos, users), playlists, playlist, video, models.Caller{ID: owner}
}

func TestPlaylistAddVideo(t *testing.T) {
	svc, _, playlist, video, caller := playlistFixture(t)

	updated, err := svc.AddVideo(context.Background(), caller, playlist.ID.Hex(), video.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{video.ID}, updated.Videos)
}

func TestPlaylistAddVideoDuplicate(t *testing.T) {
	svc, _, playlist, video, caller := playlistFixture(t)

	_, err := svc.AddVideo(context.Background(), caller, playlist.ID.Hex(), video.ID.Hex())
	require.NoError(t, err)

	_, err = svc.AddVideo(context.Background(), caller, playlist.ID.Hex(), video.ID.Hex())
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
	assert.Len(t, playlist.Videos, 1)
}

func TestPlaylistAddVideoUnknownVideo(t *testing.T) {
	svc, _, playlist, _, caller := playlistFixture(t)

	_, err := svc.AddVideo(context.Background(), caller, playlist.ID.Hex(), primitive.NewObjectID().Hex())
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestPlaylistRemoveVideoAbsent(t *testing.T) {
	svc, _, playlist, video, caller := playlistFixture(t)

	_, err := svc.RemoveVideo(context.Background(), caller, playlist.ID.Hex(), video.ID.Hex())
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestPlaylistRemoveVideo(t *testing.T) {
	svc, _, playlist, video, caller := playlistFixture(t)

	_, err := svc.AddVideo(context.Background(), caller, playlist.ID.Hex(), video.ID.Hex())
	require.NoError(t, err)

	updated, err := svc.RemoveVideo(context.Background(), caller, playlist.ID.Hex(), video.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, updated.Videos)
}

func TestPlaylistOwnershipEnforced(t *testing.T) {
	svc, playlists, playlist, video, _ := playlistFixture(t)
	stranger := models.Caller{ID: primitive.NewObjectID()}

	var apiErr *utils.APIError

	_, err := svc.Update(context.Background(), stranger, playlist.ID.Hex(), "renamed", "")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
	assert.Equal(t, "watch later", playlist.Name)

	err = svc.Delete(context.Background(), stranger, playlist.ID.Hex())
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
	assert.Len(t, playlists.playlists, 1)

	_, err = svc.AddVideo(context.Background(), stranger, playlist.ID.Hex(), video.ID.Hex())
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
	assert.Empty(t, playlist.Videos)
}

func TestPlaylistCreateRequiresName(t *testing.T) {
	svc, _, _, _, caller := playlistFixture(t)

	_, err := svc.Create(context.Background(), caller, "   ", "desc")
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestPlaylistInvalidID(t *testing.T) {
	svc, _, _, _, caller := playlistFixture(t)

	_, err := svc.Get(context.Background(), "nope")
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)

	_, err = svc.Update(context.Background(), caller, "nope", "x", "")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}
