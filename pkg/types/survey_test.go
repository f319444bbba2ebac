package types

import "testing"

func validSurvey() Survey {
	return Survey{
		Title: "Clinic feedback",
		Questions: []Question{
			{ID: "q1", Type: QUESTION_TYPE_RATING, Text: "Rate the visit", Required: true, MaxRating: 5},
			{ID: "q2", Type: QUESTION_TYPE_MULTIPLE_CHOICE, Text: "Department", Options: []string{"GP", "Dental"}},
			{ID: "q3", Type: QUESTION_TYPE_TEXT, Text: "Remarks"},
		},
	}
}

func TestValidateQuestions(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Survey)
		wantErr bool
	}{
		{"valid survey", func(s *Survey) {}, false},
		{"no questions", func(s *Survey) { s.Questions = nil }, true},
		{"missing question id", func(s *Survey) { s.Questions[0].ID = "" }, true},
		{"duplicate question id", func(s *Survey) { s.Questions[1].ID = "q1" }, true},
		{"unknown question type", func(s *Survey) { s.Questions[0].Type = "slider" }, true},
		{"choice without options", func(s *Survey) { s.Questions[1].Options = nil }, true},
		{"rating without scale", func(s *Survey) { s.Questions[0].MaxRating = 0 }, true},
		{"checkbox with options", func(s *Survey) {
			s.Questions[2] = Question{ID: "q3", Type: QUESTION_TYPE_CHECKBOX, Text: "Pick", Options: []string{"x"}}
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSurvey()
			tc.mutate(&s)
			err := s.ValidateQuestions()
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidateAnswers(t *testing.T) {
	s := validSurvey()

	cases := []struct {
		name       string
		answers    map[string]interface{}
		isComplete bool
		wantErr    bool
	}{
		{"all answered", map[string]interface{}{"q1": "5", "q2": "GP", "q3": "thanks"}, true, false},
		{"optional questions skipped", map[string]interface{}{"q1": "4"}, true, false},
		{"unknown question id", map[string]interface{}{"q1": "5", "q9": "x"}, true, true},
		{"unknown id rejected even when incomplete", map[string]interface{}{"q9": "x"}, false, true},
		{"required missing on complete submission", map[string]interface{}{"q2": "GP"}, true, true},
		{"required empty on complete submission", map[string]interface{}{"q1": ""}, true, true},
		{"required missing but incomplete", map[string]interface{}{"q2": "GP"}, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.ValidateAnswers(tc.answers, tc.isComplete)
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestIsOpenAt(t *testing.T) {
	s := Survey{StartsAt: 100, EndsAt: 200}
	if s.IsOpenAt(50) {
		t.Error("survey must not be open before its window")
	}
	if !s.IsOpenAt(150) {
		t.Error("survey must be open inside its window")
	}
	if s.IsOpenAt(250) {
		t.Error("survey must not be open after its window")
	}

	unbounded := Survey{}
	if !unbounded.IsOpenAt(150) {
		t.Error("survey without window must always be open")
	}
}

func TestAnswerIsEmpty(t *testing.T) {
	if !AnswerIsEmpty(nil) || !AnswerIsEmpty("") || !AnswerIsEmpty([]interface{}{}) {
		t.Error("nil, empty string and empty list count as unanswered")
	}
	if AnswerIsEmpty("0") || AnswerIsEmpty([]interface{}{"a"}) || AnswerIsEmpty(0.0) {
		t.Error("concrete values count as answered")
	}
}

func TestManagedUnits(t *testing.T) {
	aamil := Principal{Role: ROLE_AAMIL, ManagedMozes: []string{"m1", "m2"}}
	if units := aamil.ManagedUnits(); len(units) != 2 {
		t.Errorf("expected 2 managed units, got %d", len(units))
	}

	// Assignments on non-staff roles are inert.
	student := Principal{Role: ROLE_STUDENT, ManagedMozes: []string{"m1"}}
	if units := student.ManagedUnits(); len(units) != 0 {
		t.Errorf("student must have no managed units, got %d", len(units))
	}

	none := Principal{Role: ROLE_AAMIL}
	if units := none.ManagedUnits(); units == nil {
		t.Error("managed units must be defined even when empty")
	}
}
