package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VISIBILITY_PUBLIC  = "public"
	VISIBILITY_PRIVATE = "private"
)

const (
	CONTENT_KIND_ALBUM   = "album"
	CONTENT_KIND_PHOTO   = "photo"
	CONTENT_KIND_COMMENT = "comment"
	CONTENT_KIND_LIKE    = "like"
)

// Content is the common shape shared by albums, photos, comments and likes.
// Visibility rules only look at OwnerID, MozeKey and Visibility, so all four
// kinds live in one collection and one type.
type Content struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Kind       string             `bson:"kind" json:"kind"`
	OwnerID    string             `bson:"ownerID" json:"ownerID"`
	MozeKey    string             `bson:"mozeKey,omitempty" json:"mozeKey,omitempty"`
	Visibility string             `bson:"visibility" json:"visibility"`
	Title      string             `bson:"title,omitempty" json:"title,omitempty"`
	Body       string             `bson:"body,omitempty" json:"body,omitempty"`
	FileURL    string             `bson:"fileURL,omitempty" json:"fileURL,omitempty"`
	AlbumID    string             `bson:"albumID,omitempty" json:"albumID,omitempty"`
	SubjectID  string             `bson:"subjectID,omitempty" json:"subjectID,omitempty"`
	CreatedAt  int64              `bson:"createdAt" json:"createdAt"`
}

func (c Content) IsPublic() bool {
	return c.Visibility == VISIBILITY_PUBLIC
}
