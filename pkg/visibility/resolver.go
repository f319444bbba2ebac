package visibility

import (
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
)

// Operation distinguishes read from write when resolving access: public
// content is readable by anyone but writable only through ownership,
// management or the admin role.
type Operation int

const (
	OpRead Operation = iota
	OpWrite
)

// Resolve decides whether the principal may perform the operation on the
// content item. Rules are evaluated in order, first match wins:
//  1. admin role: always allowed
//  2. owner: allowed
//  3. managing staff of the content's moze: allowed
//  4. public content, read operation: allowed
//  5. otherwise: denied
//
// Pure function over the given snapshot; it never fetches or caches.
// Unknown or missing roles fall through to the regular-user rules.
func Resolve(p types.Principal, c types.Content, op Operation) bool {
	if p.IsAdmin() {
		return true
	}
	if c.OwnerID != "" && c.OwnerID == p.ID.Hex() {
		return true
	}
	if p.Manages(c.MozeKey) {
		return true
	}
	if op == OpRead && c.IsPublic() {
		return true
	}
	return false
}

func CanRead(p types.Principal, c types.Content) bool {
	return Resolve(p, c, OpRead)
}

func CanWrite(p types.Principal, c types.Content) bool {
	return Resolve(p, c, OpWrite)
}

// FilterContent applies the same rules to a collection in memory. Used by
// tests and by callers that already hold the rows; list endpoints push the
// equivalent filter into the store via ContentFilter.
func FilterContent(p types.Principal, items []types.Content, op Operation) []types.Content {
	visible := []types.Content{}
	for _, c := range items {
		if Resolve(p, c, op) {
			visible = append(visible, c)
		}
	}
	return visible
}

// ContentFilter builds the Mongo filter equivalent of Resolve for bulk
// queries: owner OR managed moze OR (read) public. Admins get the empty
// filter, i.e. no restriction.
func ContentFilter(p types.Principal, op Operation) bson.M {
	if p.IsAdmin() {
		return bson.M{}
	}

	clauses := bson.A{
		bson.M{"ownerID": p.ID.Hex()},
	}
	if managed := managedKeys(p); len(managed) > 0 {
		clauses = append(clauses, bson.M{"mozeKey": bson.M{"$in": managed}})
	}
	if op == OpRead {
		clauses = append(clauses, bson.M{"visibility": types.VISIBILITY_PUBLIC})
	}
	return bson.M{"$or": clauses}
}

func managedKeys(p types.Principal) []string {
	units := p.ManagedUnits()
	keys := make([]string, 0, len(units))
	for _, key := range p.ManagedMozes {
		if _, ok := units[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// CanManageSurvey reports whether the principal may edit a survey or see
// its analytics: admin, creator, or managing staff of the survey's moze.
func CanManageSurvey(p types.Principal, s types.Survey) bool {
	if p.IsAdmin() {
		return true
	}
	if s.CreatedBy != "" && s.CreatedBy == p.ID.Hex() {
		return true
	}
	return p.Manages(s.MozeKey)
}

// CanRespondToSurvey checks the target-role filter and the availability
// window for a submission at the given unix time. Managers do not bypass
// the window: a closed survey accepts no responses from anyone.
func CanRespondToSurvey(p types.Principal, s types.Survey, now int64) bool {
	if !s.IsOpenAt(now) {
		return false
	}
	if s.TargetRole == "" {
		return true
	}
	return s.TargetRole == p.Role || p.IsAdmin()
}

// SurveyFilter builds the Mongo filter for survey listings: surveys the
// principal created, manages, or is targeted by. The targeted arm only
// matches surveys whose availability window is open at the given unix
// time; creators and managing staff see their surveys regardless of the
// window.
func SurveyFilter(p types.Principal, now int64) bson.M {
	if p.IsAdmin() {
		return bson.M{}
	}
	clauses := bson.A{
		bson.M{"createdBy": p.ID.Hex()},
		bson.M{"$and": bson.A{
			bson.M{"targetRole": bson.M{"$in": bson.A{"", p.Role}}},
			bson.M{"startsAt": bson.M{"$lte": now}},
			bson.M{"$or": bson.A{
				bson.M{"endsAt": 0},
				bson.M{"endsAt": bson.M{"$gte": now}},
			}},
		}},
	}
	if managed := managedKeys(p); len(managed) > 0 {
		clauses = append(clauses, bson.M{"mozeKey": bson.M{"$in": managed}})
	}
	return bson.M{"$or": clauses}
}

// CanReadPatientRecord gates medical records: the patient, the treating
// doctor, admins and staff managing the record's moze. Records are never
// public.
func CanReadPatientRecord(p types.Principal, r types.PatientRecord) bool {
	if p.IsAdmin() {
		return true
	}
	id := p.ID.Hex()
	if r.PatientID == id || r.DoctorID == id {
		return true
	}
	return p.Manages(r.MozeKey)
}

// CanReadPetition mirrors the content rules for petitions: petitioner,
// managing staff of the petition's moze, or admin.
func CanReadPetition(p types.Principal, pet types.Petition) bool {
	if p.IsAdmin() {
		return true
	}
	if pet.PetitionerID == p.ID.Hex() {
		return true
	}
	return p.Manages(pet.MozeKey)
}

// PetitionFilter is the bulk-query form of CanReadPetition.
func PetitionFilter(p types.Principal) bson.M {
	if p.IsAdmin() {
		return bson.M{}
	}
	clauses := bson.A{
		bson.M{"petitionerID": p.ID.Hex()},
	}
	if managed := managedKeys(p); len(managed) > 0 {
		clauses = append(clauses, bson.M{"mozeKey": bson.M{"$in": managed}})
	}
	return bson.M{"$or": clauses}
}
