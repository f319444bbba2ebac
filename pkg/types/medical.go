package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DoctorProfile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	ITSNumber string             `bson:"itsNumber" json:"itsNumber"`
	Specialty string             `bson:"specialty" json:"specialty"`
	MozeKey   string             `bson:"mozeKey,omitempty" json:"mozeKey,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Verified  bool               `bson:"verified" json:"verified"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}

// PatientRecord is private by construction: readable by the patient, the
// treating doctor, admins and staff managing the record's moze; never public.
type PatientRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PatientID string             `bson:"patientID" json:"patientID"`
	DoctorID  string             `bson:"doctorID" json:"doctorID"`
	MozeKey   string             `bson:"mozeKey,omitempty" json:"mozeKey,omitempty"`
	VisitedAt int64              `bson:"visitedAt" json:"visitedAt"`
	Diagnosis string             `bson:"diagnosis" json:"diagnosis"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}
