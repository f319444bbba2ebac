package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PETITION_STATUS_PENDING   = "pending"
	PETITION_STATUS_IN_REVIEW = "in_review"
	PETITION_STATUS_RESOLVED  = "resolved"
	PETITION_STATUS_REJECTED  = "rejected"
)

type Petition struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Body         string             `bson:"body" json:"body"`
	PetitionerID string             `bson:"petitionerID" json:"petitionerID"`
	MozeKey      string             `bson:"mozeKey,omitempty" json:"mozeKey,omitempty"`
	Status       string             `bson:"status" json:"status"`
	Comments     []PetitionComment  `bson:"comments" json:"comments"`
	CreatedAt    int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt    int64              `bson:"updatedAt" json:"updatedAt"`
}

type PetitionComment struct {
	ID      string `bson:"id" json:"id"`
	Time    int64  `bson:"time" json:"time"`
	Author  string `bson:"author" json:"author"`
	Content string `bson:"content" json:"content"`
}

func PetitionStatusKnown(status string) bool {
	switch status {
	case PETITION_STATUS_PENDING,
		PETITION_STATUS_IN_REVIEW,
		PETITION_STATUS_RESOLVED,
		PETITION_STATUS_REJECTED:
		return true
	}
	return false
}
