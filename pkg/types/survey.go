package types

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	QUESTION_TYPE_TEXT            = "text"
	QUESTION_TYPE_TEXTAREA        = "textarea"
	QUESTION_TYPE_MULTIPLE_CHOICE = "multiple_choice"
	QUESTION_TYPE_CHECKBOX        = "checkbox"
	QUESTION_TYPE_RATING          = "rating"
)

type Question struct {
	ID        string   `bson:"id" json:"id"`
	Type      string   `bson:"type" json:"type"`
	Text      string   `bson:"text" json:"text"`
	Required  bool     `bson:"required" json:"required"`
	Options   []string `bson:"options,omitempty" json:"options,omitempty"`
	MaxRating int      `bson:"maxRating,omitempty" json:"maxRating,omitempty"`
}

type Survey struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title                  string             `bson:"title" json:"title"`
	Description            string             `bson:"description" json:"description"`
	MozeKey                string             `bson:"mozeKey,omitempty" json:"mozeKey,omitempty"`
	Questions              []Question         `bson:"questions" json:"questions"`
	TargetRole             string             `bson:"targetRole,omitempty" json:"targetRole,omitempty"`
	StartsAt               int64              `bson:"startsAt" json:"startsAt"`
	EndsAt                 int64              `bson:"endsAt" json:"endsAt"`
	IsAnonymous            bool               `bson:"isAnonymous" json:"isAnonymous"`
	AllowMultipleResponses bool               `bson:"allowMultipleResponses" json:"allowMultipleResponses"`
	InvitationCount        int                `bson:"invitationCount" json:"invitationCount"`
	CreatedBy              string             `bson:"createdBy" json:"createdBy"`
	CreatedAt              int64              `bson:"createdAt" json:"createdAt"`
}

type SurveyResponse struct {
	ID                    primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyID              string                 `bson:"surveyID" json:"surveyID"`
	RespondentID          string                 `bson:"respondentID,omitempty" json:"respondentID,omitempty"`
	DedupKey              string                 `bson:"dedupKey" json:"-"`
	Answers               map[string]interface{} `bson:"answers" json:"answers"`
	IsComplete            bool                   `bson:"isComplete" json:"isComplete"`
	CompletionTimeSeconds *float64               `bson:"completionTimeSeconds,omitempty" json:"completionTimeSeconds,omitempty"`
	SubmittedAt           int64                  `bson:"submittedAt" json:"submittedAt"`
}

func questionTypeKnown(t string) bool {
	switch t {
	case QUESTION_TYPE_TEXT,
		QUESTION_TYPE_TEXTAREA,
		QUESTION_TYPE_MULTIPLE_CHOICE,
		QUESTION_TYPE_CHECKBOX,
		QUESTION_TYPE_RATING:
		return true
	}
	return false
}

// ValidateQuestions checks the question definitions at survey creation time,
// so the aggregator never has to deal with malformed variants.
func (s Survey) ValidateQuestions() error {
	if len(s.Questions) == 0 {
		return errors.New("survey needs at least one question")
	}
	seen := map[string]struct{}{}
	for _, q := range s.Questions {
		if q.ID == "" {
			return errors.New("question id must be defined")
		}
		if _, ok := seen[q.ID]; ok {
			return fmt.Errorf("duplicate question id '%s'", q.ID)
		}
		seen[q.ID] = struct{}{}
		if !questionTypeKnown(q.Type) {
			return fmt.Errorf("question '%s' has unknown type '%s'", q.ID, q.Type)
		}
		switch q.Type {
		case QUESTION_TYPE_MULTIPLE_CHOICE, QUESTION_TYPE_CHECKBOX:
			if len(q.Options) < 1 {
				return fmt.Errorf("question '%s' of type %s needs options", q.ID, q.Type)
			}
		case QUESTION_TYPE_RATING:
			if q.MaxRating < 2 {
				return fmt.Errorf("question '%s' needs a max rating of at least 2", q.ID)
			}
		}
	}
	return nil
}

// ValidateAnswers rejects answer maps that reference unknown question ids or
// that miss a required answer on a complete submission.
func (s Survey) ValidateAnswers(answers map[string]interface{}, isComplete bool) error {
	questionByID := make(map[string]Question, len(s.Questions))
	for _, q := range s.Questions {
		questionByID[q.ID] = q
	}
	for qID := range answers {
		if _, ok := questionByID[qID]; !ok {
			return fmt.Errorf("answer references unknown question '%s'", qID)
		}
	}
	if !isComplete {
		return nil
	}
	for _, q := range s.Questions {
		if !q.Required {
			continue
		}
		value, ok := answers[q.ID]
		if !ok || AnswerIsEmpty(value) {
			return fmt.Errorf("required question '%s' not answered", q.ID)
		}
	}
	return nil
}

// IsOpenAt reports whether the survey accepts responses at the given unix time.
func (s Survey) IsOpenAt(t int64) bool {
	if s.StartsAt > 0 && t < s.StartsAt {
		return false
	}
	if s.EndsAt > 0 && t > s.EndsAt {
		return false
	}
	return true
}

// AnswerIsEmpty treats nil, empty strings and empty lists as "not answered".
func AnswerIsEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}
