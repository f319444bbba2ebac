package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NOTIFICATION_TOPIC_PETITIONS = "petitions"
	NOTIFICATION_TOPIC_SURVEYS   = "surveys"
)

// NotificationSubscription subscribes an email address to a topic
// (new petitions, survey windows closing) within one moze.
type NotificationSubscription struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	MozeKey string             `bson:"mozeKey" json:"mozeKey"`
	Topic   string             `bson:"topic" json:"topic"`
	Email   string             `bson:"email" json:"email"`
}
