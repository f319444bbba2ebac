package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionStats holds the derived statistics for a single question.
type QuestionStats struct {
	QuestionID       string         `bson:"questionID" json:"questionID"`
	QuestionText     string         `bson:"questionText" json:"questionText"`
	QuestionType     string         `bson:"questionType" json:"questionType"`
	AnsweredCount    int            `bson:"answeredCount" json:"answeredCount"`
	ResponseRate     float64        `bson:"responseRate" json:"responseRate"`
	Distribution     map[string]int `bson:"distribution,omitempty" json:"distribution,omitempty"`
	MostCommonAnswer string         `bson:"mostCommonAnswer,omitempty" json:"mostCommonAnswer,omitempty"`
	AverageRating    *float64       `bson:"averageRating,omitempty" json:"averageRating,omitempty"`
}

// SurveyAnalytics is a cached snapshot, always re-derivable from the raw
// responses and never the source of truth.
type SurveyAnalytics struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyID             string             `bson:"surveyID" json:"surveyID"`
	TotalResponses       int                `bson:"totalResponses" json:"totalResponses"`
	CompleteResponses    int                `bson:"completeResponses" json:"completeResponses"`
	ResponseRate         float64            `bson:"responseRate" json:"responseRate"`
	CompletionRate       float64            `bson:"completionRate" json:"completionRate"`
	AvgCompletionSeconds *float64           `bson:"avgCompletionSeconds,omitempty" json:"avgCompletionSeconds,omitempty"`
	Questions            []QuestionStats    `bson:"questions" json:"questions"`
	ComputedAt           int64              `bson:"computedAt" json:"computedAt"`
}
