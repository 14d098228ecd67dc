package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/services"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type fakeVideoService struct {
	listResult *services.VideoListResult
	listErr    error
	video      *models.Video
	getErr     error
	lastParams services.VideoListParams
}

func (s *fakeVideoService) List(_ context.Context, _ *models.Caller, params services.VideoListParams) (*services.VideoListResult, error) {
	s.lastParams = params
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listResult, nil
}

func (s *fakeVideoService) Get(_ context.Context, videoID string) (*models.Video, error) {
	if _, err := repository.ParseObjectID(videoID); err != nil {
		return nil, utils.BadRequest("video id is required")
	}
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.video, nil
}

func (s *fakeVideoService) Publish(context.Context, models.Caller, services.PublishInput) (*models.Video, error) {
	return s.video, nil
}

func (s *fakeVideoService) Update(context.Context, models.Caller, string, string, string) (*models.Video, error) {
	return s.video, nil
}

func (s *fakeVideoService) Delete(context.Context, models.Caller, string) error {
	return nil
}

func (s *fakeVideoService) TogglePublish(context.Context, models.Caller, string) (*models.Video, error) {
	return s.video, nil
}

func newTestApp(svc services.VideoService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler(zap.NewNop().Sugar())})
	h := NewVideoHandler(svc)
	app.Get("/api/v1/videos", h.List)
	app.Get("/api/v1/videos/:videoId", h.Get)
	return app
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func TestVideoListEnvelope(t *testing.T) {
	owner := primitive.NewObjectID()
	svc := &fakeVideoService{
		listResult: &services.VideoListResult{
			Videos: []models.VideoListItem{{
				ID:    primitive.NewObjectID(),
				Title: "t1",
				Owner: &models.PublicUser{ID: owner, Username: "alice"},
			}},
			Pagination: repository.Paginate(1, 10, 1),
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest("GET", "/api/v1/videos?username=alice", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.Equal(t, 200, env.StatusCode)
	assert.Equal(t, "Videos fetched successfully", env.Message)

	var data struct {
		CurrentPage int                    `json:"currentPage"`
		TotalPages  int                    `json:"totalPages"`
		TotalVideos int64                  `json:"totalVideos"`
		Videos      []models.VideoListItem `json:"videos"`
		HasNextPage bool                   `json:"hasNextPage"`
		HasPrevPage bool                   `json:"hasPrevPage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.CurrentPage)
	assert.Equal(t, 1, data.TotalPages)
	assert.Equal(t, int64(1), data.TotalVideos)
	require.Len(t, data.Videos, 1)
	require.NotNil(t, data.Videos[0].Owner)
	assert.Equal(t, "alice", data.Videos[0].Owner.Username)
	assert.False(t, data.HasNextPage)

	assert.Equal(t, "alice", svc.lastParams.Username)
	assert.Equal(t, 1, svc.lastParams.Page)
	assert.Equal(t, 10, svc.lastParams.Limit)
}

func TestVideoListPassesQueryParams(t *testing.T) {
	svc := &fakeVideoService{listResult: &services.VideoListResult{}}
	app := newTestApp(svc)

	req := httptest.NewRequest("GET", "/api/v1/videos?query=go&page=3&limit=5&sortBy=views&sortType=asc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	assert.Equal(t, "go", svc.lastParams.Query)
	assert.Equal(t, 3, svc.lastParams.Page)
	assert.Equal(t, 5, svc.lastParams.Limit)
	assert.Equal(t, "views", svc.lastParams.SortBy)
	assert.Equal(t, "asc", svc.lastParams.SortType)
}

func TestVideoListNonNumericPageFallsBack(t *testing.T) {
	svc := &fakeVideoService{listResult: &services.VideoListResult{}}
	app := newTestApp(svc)

	req := httptest.NewRequest("GET", "/api/v1/videos?query=go&page=abc&limit=-2", nil)
	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 1, svc.lastParams.Page)
	assert.Equal(t, 1, svc.lastParams.Limit)
}

func TestVideoGetInvalidIDEnvelope(t *testing.T) {
	app := newTestApp(&fakeVideoService{})

	req := httptest.NewRequest("GET", "/api/v1/videos/not-an-id", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.False(t, env.Success)
	assert.Equal(t, 400, env.StatusCode)
	assert.NotEmpty(t, env.Message)
	assert.NotNil(t, env.Errors)
	assert.Empty(t, env.Errors)
}

func TestVideoListServiceErrorEnvelope(t *testing.T) {
	svc := &fakeVideoService{listErr: utils.NotFound("user not found")}
	app := newTestApp(svc)

	req := httptest.NewRequest("GET", "/api/v1/videos?username=ghost", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.False(t, env.Success)
	assert.Equal(t, "user not found", env.Message)
}
