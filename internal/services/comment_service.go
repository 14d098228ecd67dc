package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type CommentListResult struct {
	Comments   []models.CommentListItem
	Pagination repository.Pagination
}

type CommentService interface {
	List(ctx context.Context, videoID string, page, limit int) (*CommentListResult, error)
	Add(ctx context.Context, caller models.Caller, videoID, content string) (*models.Comment, error)
	Update(ctx context.Context, caller models.Caller, commentID, content string) (*models.Comment, error)
	Delete(ctx context.Context, caller models.Caller, commentID string) error
}

type commentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository) CommentService {
	return &commentService{comments: comments, videos: videos}
}

func (s *commentService) List(ctx context.Context, videoID string, page, limit int) (*CommentListResult, error) {
	id, err := repository.ParseObjectID(videoID)
	if err != nil {
		return nil, utils.BadRequest("invalid video id")
	}

	page = repository.ClampPage(page)
	limit = repository.ClampLimit(limit)

	total, err := s.comments.CountByVideo(ctx, id)
	if err != nil {
		return nil, storeErr(err, "comments not found")
	}
	items, err := s.comments.ListByVideo(ctx, id, page, limit)
	if err != nil {
		return nil, storeErr(err, "comments not found")
	}
	return &CommentListResult{
		Comments:   items,
		Pagination: repository.Paginate(page, limit, total),
	}, nil
}

func (s *commentService) Add(ctx context.Context, caller models.Caller, videoID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, utils.BadRequest("please provide comment content")
	}
	id, err := repository.ParseObjectID(videoID)
	if err != nil {
		return nil, utils.BadRequest("invalid video id")
	}
	if _, err := s.videos.FindByID(ctx, id); err != nil {
		return nil, storeErr(err, "video not found")
	}

	comment, err := s.comments.Create(ctx, &models.Comment{
		Content: content,
		Video:   id,
		Owner:   caller.ID,
	})
	if err != nil {
		return nil, storeErr(err, "comment not found")
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, caller models.Caller, commentID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, utils.BadRequest("please enter the content to edit")
	}
	comment, err := s.ownedComment(ctx, caller, commentID)
	if err != nil {
		return nil, err
	}
	updated, err := s.comments.UpdateByID(ctx, comment.ID, bson.M{"content": content})
	if err != nil {
		return nil, storeErr(err, "comment not found")
	}
	return updated, nil
}

func (s *commentService) Delete(ctx context.Context, caller models.Caller, commentID string) error {
	comment, err := s.ownedComment(ctx, caller, commentID)
	if err != nil {
		return err
	}
	if err := s.comments.DeleteByID(ctx, comment.ID); err != nil {
		return storeErr(err, "comment not found")
	}
	return nil
}

// ownedComment enforces the ownership rule on comment mutations.
func (s *commentService) ownedComment(ctx context.Context, caller models.Caller, commentID string) (*models.Comment, error) {
	id, err := repository.ParseObjectID(commentID)
	if err != nil {
		return nil, utils.BadRequest("invalid comment id")
	}
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "comment not found")
	}
	if comment.Owner != caller.ID {
		return nil, utils.Forbidden("you are not the owner of this comment")
	}
	return comment, nil
}
