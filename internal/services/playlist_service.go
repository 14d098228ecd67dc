package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type PlaylistService interface {
	Create(ctx context.Context, caller models.Caller, name, description string) (*models.Playlist, error)
	ListByUsername(ctx context.Context, username string) ([]models.Playlist, error)
	Get(ctx context.Context, playlistID string) (*models.PlaylistDetail, error)
	Update(ctx context.Context, caller models.Caller, playlistID, name, description string) (*models.Playlist, error)
	Delete(ctx context.Context, caller models.Caller, playlistID string) error
	AddVideo(ctx context.Context, caller models.Caller, playlistID, videoID string) (*models.Playlist, error)
	RemoveVideo(ctx context.Context, caller models.Caller, playlistID, videoID string) (*models.Playlist, error)
}

type playlistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
	users     repository.UserRepository
}

func NewPlaylistService(playlists repository.PlaylistRepository, videos repository.VideoRepository, users repository.UserRepository) PlaylistService {
	return &playlistService{playlists: playlists, videos: videos, users: users}
}

func (s *playlistService) Create(ctx context.Context, caller models.Caller, name, description string) (*models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.BadRequest("name is required")
	}
	playlist, err := s.playlists.Create(ctx, &models.Playlist{
		Name:        name,
		Description: description,
		Owner:       caller.ID,
	})
	if err != nil {
		return nil, storeErr(err, "playlist not found")
	}
	return playlist, nil
}

func (s *playlistService) ListByUsername(ctx context.Context, username string) ([]models.Playlist, error) {
	user, err := s.users.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, storeErr(err, "user not found")
	}
	playlists, err := s.playlists.FindByOwner(ctx, user.ID)
	if err != nil {
		return nil, storeErr(err, "playlists not found")
	}
	return playlists, nil
}

func (s *playlistService) Get(ctx context.Context, playlistID string) (*models.PlaylistDetail, error) {
	id, err := repository.ParseObjectID(playlistID)
	if err != nil {
		return nil, utils.BadRequest("invalid playlist id")
	}
	detail, err := s.playlists.Detail(ctx, id)
	if err != nil {
		return nil, storeErr(err, "playlist not found")
	}
	return detail, nil
}

func (s *playlistService) Update(ctx context.Context, caller models.Caller, playlistID, name, description string) (*models.Playlist, error) {
	if name == "" && description == "" {
		return nil, utils.BadRequest("name or description is required")
	}
	playlist, err := s.ownedPlaylist(ctx, caller, playlistID)
	if err != nil {
		return nil, err
	}
	patch := bson.M{}
	if name != "" {
		patch["name"] = name
	}
	if description != "" {
		patch["description"] = description
	}
	updated, err := s.playlists.UpdateByID(ctx, playlist.ID, patch)
	if err != nil {
		return nil, storeErr(err, "playlist not found")
	}
	return updated, nil
}

func (s *playlistService) Delete(ctx context.Context, caller models.Caller, playlistID string) error {
	playlist, err := s.ownedPlaylist(ctx, caller, playlistID)
	if err != nil {
		return err
	}
	if err := s.playlists.DeleteByID(ctx, playlist.ID); err != nil {
		return storeErr(err, "playlist not found")
	}
	return nil
}

// AddVideo rejects duplicates with a Conflict before pushing. The
// check-then-push is not atomic; concurrent adds of the same video can
// race, a known consistency gap.
func (s *playlistService) AddVideo(ctx context.Context, caller models.Caller, playlistID, videoID string) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, caller, playlistID)
	if err != nil {
		return nil, err
	}
	vid, err := repository.ParseObjectID(videoID)
	if err != nil {
		return nil, utils.BadRequest("invalid video id")
	}
	if _, err := s.videos.FindByID(ctx, vid); err != nil {
		return nil, storeErr(err, "video not found")
	}
	for _, existing := range playlist.Videos {
		if existing == vid {
			return nil, utils.Conflict("video already in playlist")
		}
	}
	if err := s.playlists.PushVideo(ctx, playlist.ID, vid); err != nil {
		return nil, storeErr(err, "playlist not found")
	}
	updated, err := s.playlists.FindByID(ctx, playlist.ID)
	if err != nil {
		return nil, storeErr(err, "playlist not found")
	}
	return updated, nil
}

func (s *playlistService) RemoveVideo(ctx context.Context, caller models.Caller, playlistID, videoID string) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, caller, playlistID)
	if err != nil {
		return nil, err
	}
	vid, err := repository.ParseObjectID(videoID)
	if err != nil {
		return nil, utils.BadRequest("invalid video id")
	}
	found := false
	for _, existing := range playlist.Videos {
		if existing == vid {
			found = true
			break
		}
	}
	if !found {
		return nil, utils.NotFound("video not in playlist")
	}
	if err := s.playlists.PullVideo(ctx, playlist.ID, vid); err != nil {
		return nil, storeErr(err, "playlist not found")
	}
	updated, err := s.playlists.FindByID(ctx, playlist.ID)
	if err != nil {
		return nil, storeErr(err, "playlist not found")
	}
	return updated, nil
}

func (s *playlistService) ownedPlaylist(ctx context.Context, caller models.Caller, playlistID string) (*models.Playlist, error) {
	id, err := repository.ParseObjectID(playlistID)
	if err != nil {
		return nil, utils.BadRequest("invalid playlist id")
	}
	playlist, err := s.playlists.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "playlist not found")
	}
	if playlist.Owner != caller.ID {
		return nil, utils.Forbidden("you are not the owner of this playlist")
	}
	return playlist, nil
}
