package visibility

import (
	"reflect"
	"testing"

	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPrincipal(role string, managedMozes ...string) types.Principal {
	return types.Principal{
		ID:           primitive.NewObjectID(),
		Role:         role,
		ManagedMozes: managedMozes,
		Active:       true,
	}
}

func TestResolveRuleOrder(t *testing.T) {
	admin := newPrincipal(types.ROLE_ADMIN)
	aamil := newPrincipal(types.ROLE_AAMIL, "houston-north")
	coordinator := newPrincipal(types.ROLE_MOZE_COORDINATOR, "karachi-central")
	student := newPrincipal(types.ROLE_STUDENT)
	owner := newPrincipal(types.ROLE_OTHER)

	privateOwned := types.Content{Kind: types.CONTENT_KIND_PHOTO, OwnerID: owner.ID.Hex(), MozeKey: "houston-north", Visibility: types.VISIBILITY_PRIVATE}
	publicOwned := types.Content{Kind: types.CONTENT_KIND_PHOTO, OwnerID: owner.ID.Hex(), MozeKey: "houston-north", Visibility: types.VISIBILITY_PUBLIC}
	privateNoMoze := types.Content{Kind: types.CONTENT_KIND_ALBUM, OwnerID: owner.ID.Hex(), Visibility: types.VISIBILITY_PRIVATE}

	cases := []struct {
		name      string
		principal types.Principal
		content   types.Content
		canRead   bool
		canWrite  bool
	}{
		{"admin reads and writes private content of any moze", admin, privateOwned, true, true},
		{"owner reads and writes own private content", owner, privateOwned, true, true},
		{"aamil of the moze reads and writes private content", aamil, privateOwned, true, true},
		{"coordinator of another moze gets nothing", coordinator, privateOwned, false, false},
		{"student cannot see unrelated private content", student, privateOwned, false, false},
		{"student can read public content but not write it", student, publicOwned, true, false},
		{"aamil of the moze can write public content", aamil, publicOwned, true, true},
		{"content without moze is invisible to managing staff", aamil, privateNoMoze, false, false},
		{"admin sees content without moze", admin, privateNoMoze, true, true},
		{"owner keeps access to content without moze", owner, privateNoMoze, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanRead(tc.principal, tc.content); got != tc.canRead {
				t.Errorf("CanRead = %t, want %t", got, tc.canRead)
			}
			if got := CanWrite(tc.principal, tc.content); got != tc.canWrite {
				t.Errorf("CanWrite = %t, want %t", got, tc.canWrite)
			}
		})
	}
}

func TestResolveUnknownRoleIsRestrictive(t *testing.T) {
	// A bogus role with moze assignments must degrade to regular-user rules.
	odd := newPrincipal("superuser", "houston-north")
	private := types.Content{Kind: types.CONTENT_KIND_PHOTO, OwnerID: primitive.NewObjectID().Hex(), MozeKey: "houston-north", Visibility: types.VISIBILITY_PRIVATE}
	public := types.Content{Kind: types.CONTENT_KIND_PHOTO, OwnerID: primitive.NewObjectID().Hex(), Visibility: types.VISIBILITY_PUBLIC}

	if CanRead(odd, private) {
		t.Error("unknown role must not read private content via moze assignment")
	}
	if !CanRead(odd, public) {
		t.Error("unknown role must still read public content")
	}
	if CanWrite(odd, public) {
		t.Error("unknown role must not write public content")
	}
}

func TestFilterContent(t *testing.T) {
	staff := newPrincipal(types.ROLE_MOZE_COORDINATOR, "karachi-central")
	other := primitive.NewObjectID().Hex()

	items := []types.Content{
		{OwnerID: staff.ID.Hex(), Visibility: types.VISIBILITY_PRIVATE},
		{OwnerID: other, MozeKey: "karachi-central", Visibility: types.VISIBILITY_PRIVATE},
		{OwnerID: other, MozeKey: "houston-north", Visibility: types.VISIBILITY_PRIVATE},
		{OwnerID: other, Visibility: types.VISIBILITY_PUBLIC},
	}

	read := FilterContent(staff, items, OpRead)
	if len(read) != 3 {
		t.Fatalf("expected 3 readable items, got %d", len(read))
	}

	write := FilterContent(staff, items, OpWrite)
	if len(write) != 2 {
		t.Fatalf("expected 2 writable items, got %d", len(write))
	}

	admin := newPrincipal(types.ROLE_ADMIN)
	if got := FilterContent(admin, items, OpRead); len(got) != len(items) {
		t.Fatalf("admin must see all %d items, got %d", len(items), len(got))
	}
}

func TestContentFilterShape(t *testing.T) {
	admin := newPrincipal(types.ROLE_ADMIN)
	if got := ContentFilter(admin, OpRead); len(got) != 0 {
		t.Fatalf("admin filter must be unrestricted, got %v", got)
	}

	staff := newPrincipal(types.ROLE_AAMIL, "houston-north")
	filter := ContentFilter(staff, OpRead)
	clauses, ok := filter["$or"].(bson.A)
	if !ok {
		t.Fatalf("expected $or union, got %v", filter)
	}
	want := bson.A{
		bson.M{"ownerID": staff.ID.Hex()},
		bson.M{"mozeKey": bson.M{"$in": []string{"houston-north"}}},
		bson.M{"visibility": types.VISIBILITY_PUBLIC},
	}
	if !reflect.DeepEqual(clauses, want) {
		t.Errorf("read filter = %v, want %v", clauses, want)
	}

	writeFilter := ContentFilter(staff, OpWrite)
	writeClauses := writeFilter["$or"].(bson.A)
	if len(writeClauses) != 2 {
		t.Errorf("write filter must not include the public clause: %v", writeClauses)
	}

	// Regular users without assignments reduce to owner-or-public.
	student := newPrincipal(types.ROLE_STUDENT)
	studentClauses := ContentFilter(student, OpRead)["$or"].(bson.A)
	if len(studentClauses) != 2 {
		t.Errorf("student filter = %v, want owner and public clauses only", studentClauses)
	}
}

func TestSurveyAccess(t *testing.T) {
	creator := newPrincipal(types.ROLE_AAMIL, "houston-north")
	survey := types.Survey{
		ID:         primitive.NewObjectID(),
		MozeKey:    "houston-north",
		TargetRole: types.ROLE_STUDENT,
		CreatedBy:  creator.ID.Hex(),
		StartsAt:   1000,
		EndsAt:     2000,
	}

	if !CanManageSurvey(creator, survey) {
		t.Error("creator must manage own survey")
	}
	if !CanManageSurvey(newPrincipal(types.ROLE_ADMIN), survey) {
		t.Error("admin must manage any survey")
	}
	if CanManageSurvey(newPrincipal(types.ROLE_STUDENT), survey) {
		t.Error("target role must not manage the survey")
	}

	student := newPrincipal(types.ROLE_STUDENT)
	if !CanRespondToSurvey(student, survey, 1500) {
		t.Error("targeted student must be able to respond inside the window")
	}
	if CanRespondToSurvey(student, survey, 2500) {
		t.Error("window closed, no responses accepted")
	}
	if CanRespondToSurvey(newPrincipal(types.ROLE_DOCTOR), survey, 1500) {
		t.Error("non-targeted role must not respond")
	}

	open := types.Survey{ID: primitive.NewObjectID()}
	if !CanRespondToSurvey(newPrincipal(types.ROLE_OTHER), open, 1500) {
		t.Error("survey without target role accepts any role")
	}
}

func TestPatientRecordAccess(t *testing.T) {
	patient := newPrincipal(types.ROLE_OTHER)
	doctor := newPrincipal(types.ROLE_DOCTOR)
	record := types.PatientRecord{
		PatientID: patient.ID.Hex(),
		DoctorID:  doctor.ID.Hex(),
		MozeKey:   "karachi-central",
	}

	cases := []struct {
		name      string
		principal types.Principal
		want      bool
	}{
		{"patient", patient, true},
		{"treating doctor", doctor, true},
		{"admin", newPrincipal(types.ROLE_ADMIN), true},
		{"managing coordinator", newPrincipal(types.ROLE_MOZE_COORDINATOR, "karachi-central"), true},
		{"other doctor", newPrincipal(types.ROLE_DOCTOR), false},
		{"unrelated student", newPrincipal(types.ROLE_STUDENT), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanReadPatientRecord(tc.principal, record); got != tc.want {
				t.Errorf("CanReadPatientRecord = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestPetitionAccess(t *testing.T) {
	petitioner := newPrincipal(types.ROLE_STUDENT)
	petition := types.Petition{PetitionerID: petitioner.ID.Hex(), MozeKey: "houston-north"}

	if !CanReadPetition(petitioner, petition) {
		t.Error("petitioner must read own petition")
	}
	if !CanReadPetition(newPrincipal(types.ROLE_AAMIL, "houston-north"), petition) {
		t.Error("managing aamil must read moze petitions")
	}
	if CanReadPetition(newPrincipal(types.ROLE_AAMIL, "karachi-central"), petition) {
		t.Error("aamil of another moze must not read the petition")
	}

	filter := PetitionFilter(newPrincipal(types.ROLE_ADMIN))
	if len(filter) != 0 {
		t.Errorf("admin petition filter must be unrestricted, got %v", filter)
	}
}

func TestSurveyFilterShape(t *testing.T) {
	admin := newPrincipal(types.ROLE_ADMIN)
	if got := SurveyFilter(admin, 1500); len(got) != 0 {
		t.Fatalf("admin filter must be unrestricted, got %v", got)
	}

	student := newPrincipal(types.ROLE_STUDENT)
	clauses, ok := SurveyFilter(student, 1500)["$or"].(bson.A)
	if !ok {
		t.Fatalf("expected $or union")
	}
	want := bson.A{
		bson.M{"createdBy": student.ID.Hex()},
		bson.M{"$and": bson.A{
			bson.M{"targetRole": bson.M{"$in": bson.A{"", types.ROLE_STUDENT}}},
			bson.M{"startsAt": bson.M{"$lte": int64(1500)}},
			bson.M{"$or": bson.A{
				bson.M{"endsAt": 0},
				bson.M{"endsAt": bson.M{"$gte": int64(1500)}},
			}},
		}},
	}
	if !reflect.DeepEqual(clauses, want) {
		t.Errorf("student filter = %v, want %v", clauses, want)
	}

	// Managing staff keep an unwindowed arm for their own mozes.
	staff := newPrincipal(types.ROLE_AAMIL, "houston-north")
	staffClauses := SurveyFilter(staff, 1500)["$or"].(bson.A)
	if len(staffClauses) != 3 {
		t.Fatalf("staff filter = %v, want createdBy, targeted and managed clauses", staffClauses)
	}
	if !reflect.DeepEqual(staffClauses[2], bson.M{"mozeKey": bson.M{"$in": []string{"houston-north"}}}) {
		t.Errorf("managed clause = %v", staffClauses[2])
	}
}
