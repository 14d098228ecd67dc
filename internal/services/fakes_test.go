package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/storage"
)

// In-memory repository fakes. They keep just enough behavior for the
// service tests: identity lookups, ownership, and toggle bookkeeping.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	u.ID = primitive.NewObjectID()
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByEmailOrUsername(_ context.Context, email, username string) (*models.User, error) {
	for _, u := range r.users {
		if (email != "" && u.Email == email) || (username != "" && strings.EqualFold(u.Username, username)) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateByID(_ context.Context, id primitive.ObjectID, _ bson.M) (*models.User, error) {
	return r.FindByID(context.Background(), id)
}

func (r *fakeUserRepo) SetRefreshToken(_ context.Context, id primitive.ObjectID, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshToken = hash
	return nil
}

type fakeStore struct {
	mu      sync.Mutex
	uploads map[string][]byte
	deleted []string
	failOn  string // uploads whose key contains this substring fail
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploads: make(map[string][]byte)}
}

func (s *fakeStore) Upload(_ context.Context, key, _ string, data []byte, _ map[string]string) (storage.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && strings.Contains(key, s.failOn) {
		return storage.Object{}, errors.New("upload failed")
	}
	s.uploads[key] = data
	return storage.Object{URL: "https://media.test/" + key, Key: key}, nil
}

func (s *fakeStore) Probe(_ context.Context, _ string) (float64, error) {
	return 0, nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, key)
	s.deleted = append(s.deleted, key)
	return nil
}

type fakeSubscriptionRepo struct {
	subs map[primitive.ObjectID]*models.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[primitive.ObjectID]*models.Subscription)}
}

func (r *fakeSubscriptionRepo) FindByPair(_ context.Context, channel, subscriber primitive.ObjectID) (*models.Subscription, error) {
	for _, s := range r.subs {
		if s.Channel == channel && s.Subscriber == subscriber {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, s *models.Subscription) (*models.Subscription, error) {
	s.ID = primitive.NewObjectID()
	r.subs[s.ID] = s
	return s, nil
}

func (r *fakeSubscriptionRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.subs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.subs, id)
	return nil
}

func (r *fakeSubscriptionRepo) CountByChannel(_ context.Context, channel primitive.ObjectID) (int64, error) {
	var n int64
	for _, s := range r.subs {
		if s.Channel == channel {
			n++
		}
	}
	return n, nil
}

func (r *fakeSubscriptionRepo) SubscribersOf(_ context.Context, channel primitive.ObjectID) ([]models.SubscriberEntry, error) {
	var out []models.SubscriberEntry
	for _, s := range r.subs {
		if s.Channel == channel {
			out = append(out, models.SubscriberEntry{ID: s.ID, CreatedAt: s.CreatedAt})
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) ChannelsOf(_ context.Context, subscriber primitive.ObjectID) ([]models.ChannelEntry, error) {
	var out []models.ChannelEntry
	for _, s := range r.subs {
		if s.Subscriber == subscriber {
			out = append(out, models.ChannelEntry{ID: s.ID, CreatedAt: s.CreatedAt})
		}
	}
	return out, nil
}

type fakeVideoRepo struct {
	videos   map[primitive.ObjectID]*models.Video
	listed   []models.VideoListItem
	total    int64
	lastOpts repository.ListOptions
}

func newFakeVideoRepo(videos ...*models.Video) *fakeVideoRepo {
	r := &fakeVideoRepo{videos: make(map[primitive.ObjectID]*models.Video)}
	for _, v := range videos {
		if v.ID.IsZero() {
			v.ID = primitive.NewObjectID()
		}
		r.videos[v.ID] = v
	}
	return r
}

func (r *fakeVideoRepo) Create(_ context.Context, v *models.Video) (*models.Video, error) {
	v.ID = primitive.NewObjectID()
	r.videos[v.ID] = v
	return v, nil
}

func (r *fakeVideoRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// a decoded copy, like the driver returns
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) UpdateByID(_ context.Context, id primitive.ObjectID, patch bson.M) (*models.Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if title, ok := patch["title"].(string); ok {
		v.Title = title
	}
	if desc, ok := patch["description"].(string); ok {
		v.Description = desc
	}
	if pub, ok := patch["isPublished"].(bool); ok {
		v.IsPublished = pub
	}
	return v, nil
}

func (r *fakeVideoRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.videos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.videos, id)
	return nil
}

func (r *fakeVideoRepo) List(_ context.Context, opts repository.ListOptions) ([]models.VideoListItem, error) {
	r.lastOpts = opts
	return r.listed, nil
}

func (r *fakeVideoRepo) Count(_ context.Context, opts repository.ListOptions) (int64, error) {
	r.lastOpts = opts
	return r.total, nil
}

func (r *fakeVideoRepo) IncrementViews(_ context.Context, id primitive.ObjectID) error {
	v, ok := r.videos[id]
	if !ok {
		return repository.ErrNotFound
	}
	v.Views++
	return nil
}

func (r *fakeVideoRepo) StatsByOwner(_ context.Context, owner primitive.ObjectID) (int64, int64, error) {
	var videos, views int64
	for _, v := range r.videos {
		if v.Owner == owner {
			videos++
			views += v.Views
		}
	}
	return videos, views, nil
}

func (r *fakeVideoRepo) IDsByOwner(_ context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	var out []primitive.ObjectID
	for id, v := range r.videos {
		if v.Owner == owner {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Video, error) {
	var out []models.Video
	for _, v := range r.videos {
		if v.Owner == owner {
			out = append(out, *v)
		}
	}
	return out, nil
}

type fakePlaylistRepo struct {
	playlists map[primitive.ObjectID]*models.Playlist
}

func newFakePlaylistRepo(playlists ...*models.Playlist) *fakePlaylistRepo {
	r := &fakePlaylistRepo{playlists: make(map[primitive.ObjectID]*models.Playlist)}
	for _, p := range playlists {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.playlists[p.ID] = p
	}
	return r
}

func (r *fakePlaylistRepo) Create(_ context.Context, p *models.Playlist) (*models.Playlist, error) {
	p.ID = primitive.NewObjectID()
	r.playlists[p.ID] = p
	return p, nil
}

func (r *fakePlaylistRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	p, ok := r.playlists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakePlaylistRepo) UpdateByID(_ context.Context, id primitive.ObjectID, patch bson.M) (*models.Playlist, error) {
	p, ok := r.playlists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if name, ok := patch["name"].(string); ok {
		p.Name = name
	}
	if desc, ok := patch["description"].(string); ok {
		p.Description = desc
	}
	return p, nil
}

func (r *fakePlaylistRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.playlists[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.playlists, id)
	return nil
}

func (r *fakePlaylistRepo) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Playlist, error) {
	var out []models.Playlist
	for _, p := range r.playlists {
		if p.Owner == owner {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlaylistRepo) PushVideo(_ context.Context, id, videoID primitive.ObjectID) error {
	p, ok := r.playlists[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Videos = append(p.Videos, videoID)
	return nil
}

func (r *fakePlaylistRepo) PullVideo(_ context.Context, id, videoID primitive.ObjectID) error {
	p, ok := r.playlists[id]
	if !ok {
		return repository.ErrNotFound
	}
	kept := p.Videos[:0]
	for _, v := range p.Videos {
		if v != videoID {
			kept = append(kept, v)
		}
	}
	p.Videos = kept
	return nil
}

func (r *fakePlaylistRepo) Detail(_ context.Context, id primitive.ObjectID) (*models.PlaylistDetail, error) {
	p, ok := r.playlists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.PlaylistDetail{ID: p.ID, Name: p.Name, Description: p.Description, Owner: p.Owner}, nil
}

type fakeLikeRepo struct {
	likes map[primitive.ObjectID]*models.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[primitive.ObjectID]*models.Like)}
}

func (r *fakeLikeRepo) FindOne(_ context.Context, filter bson.M) (*models.Like, error) {
	likedBy, _ := filter["likedBy"].(primitive.ObjectID)
	for _, l := range r.likes {
		if l.LikedBy != likedBy {
			continue
		}
		if v, ok := filter["video"].(primitive.ObjectID); ok && (l.Video == nil || *l.Video != v) {
			continue
		}
		if c, ok := filter["comment"].(primitive.ObjectID); ok && (l.Comment == nil || *l.Comment != c) {
			continue
		}
		if t, ok := filter["tweet"].(primitive.ObjectID); ok && (l.Tweet == nil || *l.Tweet != t) {
			continue
		}
		return l, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeLikeRepo) Create(_ context.Context, l *models.Like) (*models.Like, error) {
	l.ID = primitive.NewObjectID()
	r.likes[l.ID] = l
	return l, nil
}

func (r *fakeLikeRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.likes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.likes, id)
	return nil
}

func (r *fakeLikeRepo) CountByVideos(_ context.Context, videoIDs []primitive.ObjectID) (int64, error) {
	var n int64
	for _, l := range r.likes {
		if l.Video == nil {
			continue
		}
		for _, id := range videoIDs {
			if *l.Video == id {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *fakeLikeRepo) LikedVideos(_ context.Context, _ primitive.ObjectID) ([]models.VideoListItem, error) {
	return nil, nil
}

type fakeCommentRepo struct {
	comments map[primitive.ObjectID]*models.Comment
}

func newFakeCommentRepo(comments ...*models.Comment) *fakeCommentRepo {
	r := &fakeCommentRepo{comments: make(map[primitive.ObjectID]*models.Comment)}
	for _, c := range comments {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		r.comments[c.ID] = c
	}
	return r
}

func (r *fakeCommentRepo) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	c.ID = primitive.NewObjectID()
	r.comments[c.ID] = c
	return c, nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *fakeCommentRepo) UpdateByID(_ context.Context, id primitive.ObjectID, patch bson.M) (*models.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if content, ok := patch["content"].(string); ok {
		c.Content = content
	}
	return c, nil
}

func (r *fakeCommentRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) ListByVideo(_ context.Context, videoID primitive.ObjectID, _, _ int) ([]models.CommentListItem, error) {
	var out []models.CommentListItem
	for _, c := range r.comments {
		if c.Video == videoID {
			out = append(out, models.CommentListItem{ID: c.ID, Content: c.Content, Video: c.Video})
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) CountByVideo(_ context.Context, videoID primitive.ObjectID) (int64, error) {
	var n int64
	for _, c := range r.comments {
		if c.Video == videoID {
			n++
		}
	}
	return n, nil
}

func (r *fakeCommentRepo) DeleteByVideo(_ context.Context, videoID primitive.ObjectID) error {
	for id, c := range r.comments {
		if c.Video == videoID {
			delete(r.comments, id)
		}
	}
	return nil
}

type fakeTweetRepo struct {
	tweets map[primitive.ObjectID]*models.Tweet
}

func newFakeTweetRepo(tweets ...*models.Tweet) *fakeTweetRepo {
	r := &fakeTweetRepo{tweets: make(map[primitive.ObjectID]*models.Tweet)}
	for _, tw := range tweets {
		if tw.ID.IsZero() {
			tw.ID = primitive.NewObjectID()
		}
		r.tweets[tw.ID] = tw
	}
	return r
}

func (r *fakeTweetRepo) Create(_ context.Context, tw *models.Tweet) (*models.Tweet, error) {
	tw.ID = primitive.NewObjectID()
	r.tweets[tw.ID] = tw
	return tw, nil
}

func (r *fakeTweetRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	tw, ok := r.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return tw, nil
}

func (r *fakeTweetRepo) UpdateByID(_ context.Context, id primitive.ObjectID, patch bson.M) (*models.Tweet, error) {
	tw, ok := r.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if content, ok := patch["content"].(string); ok {
		tw.Content = content
	}
	return tw, nil
}

func (r *fakeTweetRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.tweets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tweets, id)
	return nil
}

func (r *fakeTweetRepo) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Tweet, error) {
	var out []models.Tweet
	for _, tw := range r.tweets {
		if tw.Owner == owner {
			out = append(out, *tw)
		}
	}
	return out, nil
}
