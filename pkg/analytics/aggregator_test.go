package analytics

import (
	"math"
	"reflect"
	"testing"

	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ratingSurvey() types.Survey {
	return types.Survey{
		ID: primitive.NewObjectID(),
		Questions: []types.Question{
			{ID: "q1", Type: types.QUESTION_TYPE_RATING, Text: "How satisfied are you?", MaxRating: 5},
		},
	}
}

func responsesWithAnswers(answers ...map[string]interface{}) []types.SurveyResponse {
	responses := make([]types.SurveyResponse, 0, len(answers))
	for _, a := range answers {
		responses = append(responses, types.SurveyResponse{Answers: a, IsComplete: true})
	}
	return responses
}

func TestAggregateRatingDistribution(t *testing.T) {
	survey := ratingSurvey()
	responses := responsesWithAnswers(
		map[string]interface{}{"q1": "5"},
		map[string]interface{}{"q1": "5"},
		map[string]interface{}{"q1": "3"},
	)

	result := Aggregate(survey, responses)
	if len(result.Questions) != 1 {
		t.Fatalf("expected 1 question stat, got %d", len(result.Questions))
	}
	q := result.Questions[0]

	wantDist := map[string]int{"5": 2, "3": 1}
	if !reflect.DeepEqual(q.Distribution, wantDist) {
		t.Errorf("distribution = %v, want %v", q.Distribution, wantDist)
	}
	if q.MostCommonAnswer != "5" {
		t.Errorf("most common answer = %q, want \"5\"", q.MostCommonAnswer)
	}
	if q.AnsweredCount != 3 {
		t.Errorf("answered count = %d, want 3", q.AnsweredCount)
	}
	if q.AverageRating == nil || math.Abs(*q.AverageRating-4.3333) > 0.001 {
		t.Errorf("average rating = %v, want ~4.33", q.AverageRating)
	}
}

func TestAggregateUnparseableRatingExcludedFromMean(t *testing.T) {
	survey := ratingSurvey()
	responses := responsesWithAnswers(
		map[string]interface{}{"q1": "4"},
		map[string]interface{}{"q1": "great"},
	)

	q := Aggregate(survey, responses).Questions[0]
	if q.AverageRating == nil || *q.AverageRating != 4 {
		t.Errorf("average rating = %v, want 4 (garbage value excluded)", q.AverageRating)
	}
	// The garbage value still shows up in the distribution.
	if q.Distribution["great"] != 1 {
		t.Errorf("distribution = %v, want the unparseable literal counted", q.Distribution)
	}
}

func TestAggregateMeanUndefinedWhenNothingParses(t *testing.T) {
	survey := ratingSurvey()
	responses := responsesWithAnswers(map[string]interface{}{"q1": "terrible"})

	q := Aggregate(survey, responses).Questions[0]
	if q.AverageRating != nil {
		t.Errorf("average rating = %v, want nil when no value parses", *q.AverageRating)
	}
}

func TestAggregateCheckboxFlattening(t *testing.T) {
	survey := types.Survey{
		ID: primitive.NewObjectID(),
		Questions: []types.Question{
			{ID: "q1", Type: types.QUESTION_TYPE_CHECKBOX, Text: "Services used", Options: []string{"A", "B", "C"}},
		},
	}
	responses := responsesWithAnswers(
		map[string]interface{}{"q1": []interface{}{"A", "B"}},
		map[string]interface{}{"q1": []interface{}{"B"}},
		// legacy comma-separated string form
		map[string]interface{}{"q1": "A, C"},
	)

	q := Aggregate(survey, responses).Questions[0]
	wantDist := map[string]int{"A": 2, "B": 2, "C": 1}
	if !reflect.DeepEqual(q.Distribution, wantDist) {
		t.Errorf("distribution = %v, want %v", q.Distribution, wantDist)
	}
	if q.AnsweredCount != 3 {
		t.Errorf("answered count = %d, want 3", q.AnsweredCount)
	}
}

func TestAggregateTextQuestionsCountOnly(t *testing.T) {
	survey := types.Survey{
		ID: primitive.NewObjectID(),
		Questions: []types.Question{
			{ID: "q1", Type: types.QUESTION_TYPE_TEXT, Text: "Any remarks?"},
		},
	}
	responses := responsesWithAnswers(
		map[string]interface{}{"q1": "all fine"},
		map[string]interface{}{"q1": ""},
		map[string]interface{}{},
	)

	q := Aggregate(survey, responses).Questions[0]
	if q.AnsweredCount != 1 {
		t.Errorf("answered count = %d, want 1 (empty answers skipped)", q.AnsweredCount)
	}
	if q.Distribution != nil {
		t.Errorf("text questions carry no distribution, got %v", q.Distribution)
	}
	if math.Abs(q.ResponseRate-33.3333) > 0.001 {
		t.Errorf("response rate = %f, want ~33.33", q.ResponseRate)
	}
}

func TestAggregateSurveyLevelRates(t *testing.T) {
	survey := ratingSurvey()
	survey.InvitationCount = 10

	ct := 120.0
	responses := []types.SurveyResponse{
		{Answers: map[string]interface{}{"q1": "5"}, IsComplete: true, CompletionTimeSeconds: &ct},
		{Answers: map[string]interface{}{"q1": "4"}, IsComplete: true},
		{Answers: map[string]interface{}{"q1": "3"}, IsComplete: true},
		{Answers: map[string]interface{}{}, IsComplete: false},
	}

	result := Aggregate(survey, responses)
	if result.TotalResponses != 4 {
		t.Errorf("total responses = %d, want 4", result.TotalResponses)
	}
	if result.CompleteResponses != 3 {
		t.Errorf("complete responses = %d, want 3", result.CompleteResponses)
	}
	if result.ResponseRate != 40.0 {
		t.Errorf("response rate = %f, want 40.0", result.ResponseRate)
	}
	if result.CompletionRate != 75.0 {
		t.Errorf("completion rate = %f, want 75.0", result.CompletionRate)
	}
	if result.AvgCompletionSeconds == nil || *result.AvgCompletionSeconds != 120.0 {
		t.Errorf("avg completion = %v, want 120.0 over the one known time", result.AvgCompletionSeconds)
	}
}

func TestAggregateUnknownInvitationsReportZeroRate(t *testing.T) {
	survey := ratingSurvey()
	responses := responsesWithAnswers(map[string]interface{}{"q1": "5"})

	result := Aggregate(survey, responses)
	if result.ResponseRate != 0 {
		t.Errorf("response rate = %f, want 0 when invitations unknown", result.ResponseRate)
	}
}

func TestAggregateEmptyResponseSet(t *testing.T) {
	survey := ratingSurvey()

	result := Aggregate(survey, nil)
	if result.TotalResponses != 0 || result.CompletionRate != 0 {
		t.Errorf("empty response set must yield zero stats, got %+v", result)
	}
	q := result.Questions[0]
	if q.AnsweredCount != 0 || q.ResponseRate != 0 || q.Distribution != nil {
		t.Errorf("empty response set must yield empty question stats, got %+v", q)
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	survey := types.Survey{
		ID:              primitive.NewObjectID(),
		InvitationCount: 7,
		Questions: []types.Question{
			{ID: "q1", Type: types.QUESTION_TYPE_RATING, Text: "Rate us", MaxRating: 5},
			{ID: "q2", Type: types.QUESTION_TYPE_CHECKBOX, Text: "Pick", Options: []string{"x", "y"}},
		},
	}
	responses := responsesWithAnswers(
		map[string]interface{}{"q1": "2", "q2": []interface{}{"x", "y"}},
		map[string]interface{}{"q1": "5", "q2": "y"},
	)

	first := Aggregate(survey, responses)
	second := Aggregate(survey, responses)
	first.ComputedAt = 0
	second.ComputedAt = 0
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recomputation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestMostCommonAnswerTieBreak(t *testing.T) {
	survey := types.Survey{
		ID: primitive.NewObjectID(),
		Questions: []types.Question{
			{ID: "q1", Type: types.QUESTION_TYPE_MULTIPLE_CHOICE, Text: "Pick one", Options: []string{"a", "b"}},
		},
	}
	responses := responsesWithAnswers(
		map[string]interface{}{"q1": "b"},
		map[string]interface{}{"q1": "a"},
	)

	// Ties resolve to the first encountered answer in response order.
	q := Aggregate(survey, responses).Questions[0]
	if q.MostCommonAnswer != "b" {
		t.Errorf("most common answer = %q, want first-encountered \"b\" on tie", q.MostCommonAnswer)
	}
}

func TestSnapshotCurrent(t *testing.T) {
	survey := types.Survey{EndsAt: 2000}
	snapshot := types.SurveyAnalytics{ComputedAt: 2100}

	if !SnapshotCurrent(survey, snapshot, 3000) {
		t.Error("snapshot computed after the window closed must be current")
	}
	if SnapshotCurrent(survey, types.SurveyAnalytics{ComputedAt: 1500}, 3000) {
		t.Error("snapshot computed while the survey was open must not be current")
	}
	if SnapshotCurrent(survey, snapshot, 1500) {
		t.Error("snapshots are never current while the survey is open")
	}
	if SnapshotCurrent(types.Survey{}, snapshot, 3000) {
		t.Error("open-ended surveys must always recompute")
	}
}
