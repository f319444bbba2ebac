package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
)

// SnapshotCurrent reports whether a cached snapshot is still authoritative
// for the survey at the given unix time. Only snapshots of closed surveys
// qualify: the window bounds submissions, so nothing can change after a
// snapshot computed past the end of the window. Open-ended surveys always
// recompute.
func SnapshotCurrent(survey types.Survey, snapshot types.SurveyAnalytics, now int64) bool {
	if survey.EndsAt <= 0 || now <= survey.EndsAt {
		return false
	}
	return snapshot.ComputedAt >= survey.EndsAt
}

// Aggregate computes the derived statistics for a survey over its collected
// responses. Pure read-side computation: responses are never mutated and the
// result is fully re-derivable, so snapshots of it may be cached freely.
//
// The survey's InvitationCount feeds the survey-level response rate; when it
// is zero or unknown the rate reports as 0.
func Aggregate(survey types.Survey, responses []types.SurveyResponse) types.SurveyAnalytics {
	totalResponses := len(responses)

	completeCount := 0
	completionTimeSum := 0.0
	completionTimeCount := 0
	for _, r := range responses {
		if r.IsComplete {
			completeCount++
		}
		if r.CompletionTimeSeconds != nil {
			completionTimeSum += *r.CompletionTimeSeconds
			completionTimeCount++
		}
	}

	result := types.SurveyAnalytics{
		SurveyID:          survey.ID.Hex(),
		TotalResponses:    totalResponses,
		CompleteResponses: completeCount,
		Questions:         make([]types.QuestionStats, 0, len(survey.Questions)),
		ComputedAt:        time.Now().Unix(),
	}
	if survey.InvitationCount > 0 {
		result.ResponseRate = float64(totalResponses) / float64(survey.InvitationCount) * 100
	}
	if totalResponses > 0 {
		result.CompletionRate = float64(completeCount) / float64(totalResponses) * 100
	}
	if completionTimeCount > 0 {
		avg := completionTimeSum / float64(completionTimeCount)
		result.AvgCompletionSeconds = &avg
	}

	for _, q := range survey.Questions {
		result.Questions = append(result.Questions, aggregateQuestion(q, responses))
	}
	return result
}

func aggregateQuestion(q types.Question, responses []types.SurveyResponse) types.QuestionStats {
	stats := types.QuestionStats{
		QuestionID:   q.ID,
		QuestionText: q.Text,
		QuestionType: q.Type,
	}

	// Keys in encounter order so the most-common tie-break is deterministic
	// for a given response ordering.
	counts := map[string]int{}
	keyOrder := []string{}
	count := func(key string) {
		if _, seen := counts[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		counts[key]++
	}

	ratingSum := 0.0
	ratingCount := 0

	for _, r := range responses {
		value, ok := r.Answers[q.ID]
		if !ok || types.AnswerIsEmpty(value) {
			continue
		}
		stats.AnsweredCount++

		switch q.Type {
		case types.QUESTION_TYPE_MULTIPLE_CHOICE, types.QUESTION_TYPE_RATING:
			literal := answerLiteral(value)
			count(literal)
			if q.Type == types.QUESTION_TYPE_RATING {
				if parsed, err := strconv.ParseFloat(literal, 64); err == nil {
					ratingSum += parsed
					ratingCount++
				}
			}
		case types.QUESTION_TYPE_CHECKBOX:
			for _, option := range flattenSelections(value) {
				count(option)
			}
		}
	}

	if len(responses) > 0 {
		stats.ResponseRate = float64(stats.AnsweredCount) / float64(len(responses)) * 100
	}
	if len(counts) > 0 {
		stats.Distribution = counts
		best := keyOrder[0]
		for _, key := range keyOrder {
			if counts[key] > counts[best] {
				best = key
			}
		}
		stats.MostCommonAnswer = best
	}
	if ratingCount > 0 {
		avg := ratingSum / float64(ratingCount)
		stats.AverageRating = &avg
	}
	return stats
}

// answerLiteral renders a scalar answer value as its distribution key.
func answerLiteral(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// flattenSelections turns a checkbox answer into its individual options.
// Accepts list values as well as the legacy comma-separated string form.
func flattenSelections(value interface{}) []string {
	options := []string{}
	appendOption := func(raw string) {
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			options = append(options, trimmed)
		}
	}

	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			appendOption(answerLiteral(item))
		}
	case []string:
		for _, item := range v {
			appendOption(item)
		}
	case string:
		for _, part := range strings.Split(v, ",") {
			appendOption(part)
		}
	default:
		appendOption(answerLiteral(v))
	}
	return options
}
