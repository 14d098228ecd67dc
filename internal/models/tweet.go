package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tweet struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content            string             `bson:"content" json:"content"`
	ContentImages      []string           `bson:"contentImages" json:"contentImages"`
	ContentImageThumbs []string           `bson:"contentImageThumbs" json:"contentImageThumbs"`
	Owner              primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
