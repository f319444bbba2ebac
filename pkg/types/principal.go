package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ROLE_ADMIN            = "admin"
	ROLE_AAMIL            = "aamil"
	ROLE_MOZE_COORDINATOR = "moze_coordinator"
	ROLE_DOCTOR           = "doctor"
	ROLE_STUDENT          = "student"
	ROLE_OTHER            = "other"
)

type Principal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ITSNumber    string             `bson:"itsNumber" json:"itsNumber"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"`
	ManagedMozes []string           `bson:"managedMozes" json:"managedMozes"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    int64              `bson:"createdAt" json:"createdAt"`
}

// ManagedUnits returns the set of moze keys the principal manages. It is
// always defined, empty for principals without management assignments.
func (p Principal) ManagedUnits() map[string]struct{} {
	units := make(map[string]struct{}, len(p.ManagedMozes))
	if !p.IsManagingStaff() {
		return units
	}
	for _, key := range p.ManagedMozes {
		units[key] = struct{}{}
	}
	return units
}

// RoleKnown reports whether the role is one the system understands.
// Unknown roles still resolve (to the most restrictive access), but
// admin tooling refuses to store them.
func RoleKnown(role string) bool {
	switch role {
	case ROLE_ADMIN, ROLE_AAMIL, ROLE_MOZE_COORDINATOR, ROLE_DOCTOR, ROLE_STUDENT, ROLE_OTHER:
		return true
	}
	return false
}

func (p Principal) IsAdmin() bool {
	return p.Role == ROLE_ADMIN
}

// IsManagingStaff reports whether the principal's role can carry moze
// management assignments at all.
func (p Principal) IsManagingStaff() bool {
	return p.Role == ROLE_AAMIL || p.Role == ROLE_MOZE_COORDINATOR
}

func (p Principal) Manages(mozeKey string) bool {
	if mozeKey == "" || !p.IsManagingStaff() {
		return false
	}
	for _, key := range p.ManagedMozes {
		if key == mozeKey {
			return true
		}
	}
	return false
}
