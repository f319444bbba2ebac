package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Moze struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key             string             `bson:"key" json:"key"`
	Name            string             `bson:"name" json:"name"`
	Address         string             `bson:"address" json:"address"`
	AamilID         string             `bson:"aamilID" json:"aamilID"`
	CoordinatorID   string             `bson:"coordinatorID" json:"coordinatorID"`
	Capacity        int                `bson:"capacity" json:"capacity"`
	Active          bool               `bson:"active" json:"active"`
	EstablishedDate int64              `bson:"establishedDate" json:"establishedDate"`
}
