package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListOptions drives the video list pipeline and its companion count query.
type ListOptions struct {
	Query              string             // case-insensitive substring match on title
	Owner              primitive.ObjectID // zero value = no owner filter
	IncludeUnpublished bool               // set when the requester owns the filtered channel
	SortBy             string
	SortAsc            bool
	Page               int
	Limit              int
}

// sortableFields is the allow-list for user-supplied sort keys.
var sortableFields = map[string]bool{
	"createdAt": true,
	"title":     true,
	"views":     true,
	"likes":     true,
}

// Filter is the pre-join, pre-pagination match document. The count query
// uses exactly this filter.
func (o ListOptions) Filter() bson.M {
	f := bson.M{}
	if o.Query != "" {
		f["title"] = bson.M{"$regex": regexp.QuoteMeta(o.Query), "$options": "i"}
	}
	if !o.Owner.IsZero() {
		f["owner"] = o.Owner
	}
	if !o.IncludeUnpublished {
		f["isPublished"] = true
	}
	return f
}

var publicUserProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "fullName", Value: 1},
	{Key: "username", Value: 1},
	{Key: "avatar", Value: 1},
}

// userLookupStages joins a user reference field into its public projection.
// The parent row survives a missing user (preserveNullAndEmptyArrays).
func userLookupStages(field string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: field},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: field},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: publicUserProjection}}}},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + field},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

var videoListProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "title", Value: 1},
	{Key: "description", Value: 1},
	{Key: "videoFile", Value: 1},
	{Key: "thumbnail", Value: 1},
	{Key: "duration", Value: 1},
	{Key: "views", Value: 1},
	{Key: "isPublished", Value: 1},
	{Key: "owner", Value: 1},
	{Key: "createdAt", Value: 1},
}

// VideoListPipeline builds the fixed-order read pipeline:
// match, owner join, projection, sort, skip, limit.
func VideoListPipeline(o ListOptions) (mongo.Pipeline, error) {
	sortBy := o.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	if !sortableFields[sortBy] {
		return nil, ErrInvalidSortField
	}
	direction := -1
	if o.SortAsc {
		direction = 1
	}

	page := ClampPage(o.Page)
	limit := ClampLimit(o.Limit)

	p := mongo.Pipeline{
		{{Key: "$match", Value: o.Filter()}},
	}
	p = append(p, userLookupStages("owner")...)
	p = append(p,
		bson.D{{Key: "$project", Value: videoListProjection}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: sortBy, Value: direction}}}},
		bson.D{{Key: "$skip", Value: int64((page - 1) * limit)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
	)
	return p, nil
}

var commentListProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "content", Value: 1},
	{Key: "video", Value: 1},
	{Key: "owner", Value: 1},
	{Key: "createdAt", Value: 1},
}

// CommentListPipeline lists a video's comments newest first with the owner
// joined.
func CommentListPipeline(videoID primitive.ObjectID, page, limit int) mongo.Pipeline {
	page = ClampPage(page)
	limit = ClampLimit(limit)

	p := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"video": videoID}}},
	}
	p = append(p, userLookupStages("owner")...)
	p = append(p,
		bson.D{{Key: "$project", Value: commentListProjection}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$skip", Value: int64((page - 1) * limit)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
	)
	return p
}

// playlistVideoProjection deliberately drops the raw owner reference so the
// embedded rows decode cleanly.
var playlistVideoProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "title", Value: 1},
	{Key: "description", Value: 1},
	{Key: "videoFile", Value: 1},
	{Key: "thumbnail", Value: 1},
	{Key: "duration", Value: 1},
	{Key: "views", Value: 1},
	{Key: "isPublished", Value: 1},
	{Key: "createdAt", Value: 1},
}

// PlaylistDetailPipeline resolves a playlist's video references.
func PlaylistDetailPipeline(playlistID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": playlistID}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "videos"},
			{Key: "localField", Value: "videos"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "videos"},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: playlistVideoProjection}}}},
		}}},
	}
}
