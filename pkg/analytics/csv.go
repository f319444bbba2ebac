package analytics

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
)

// DistributionsCSV renders the per-question answer distributions as a CSV
// document for download. Rows are ordered by question, then by answer key,
// so repeated exports of the same snapshot are byte-identical.
func DistributionsCSV(snapshot types.SurveyAnalytics) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"question_id", "question_text", "question_type", "answered_count", "response_rate", "answer", "count"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, q := range snapshot.Questions {
		base := []string{
			q.QuestionID,
			q.QuestionText,
			q.QuestionType,
			strconv.Itoa(q.AnsweredCount),
			strconv.FormatFloat(q.ResponseRate, 'f', 1, 64),
		}
		if len(q.Distribution) == 0 {
			if err := w.Write(append(base, "", "")); err != nil {
				return nil, err
			}
			continue
		}
		keys := make([]string, 0, len(q.Distribution))
		for key := range q.Distribution {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			row := append(append([]string{}, base...), key, strconv.Itoa(q.Distribution[key]))
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
