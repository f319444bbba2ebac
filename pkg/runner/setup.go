package runner

import (
	"time"

	"github.com/coneno/logger"
	"github.com/umoor-sehhat/sehhat-backend/pkg/analytics"
	"github.com/umoor-sehhat/sehhat-backend/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	petitionOverdueAfterInDays = 14
)

type Runner struct {
	sehhatDB           *db.SehhatDBService
	timerEventCooldown int64 // how often the timer event should be performed
}

func NewRunner(sehhatDB *db.SehhatDBService, timerEventCooldown int64) *Runner {
	return &Runner{
		sehhatDB:           sehhatDB,
		timerEventCooldown: timerEventCooldown,
	}
}

func (s *Runner) Run() {
	go s.startTimerThread()
}

func (s *Runner) startTimerThread() {
	// TODO: turn off gracefully
	for {
		delay := s.timerEventCooldown
		<-time.After(time.Duration(delay) * time.Second)
		go s.RefreshClosedSurveySnapshots()
		go s.ReportOverduePetitions()
	}
}

// RefreshClosedSurveySnapshots recomputes the analytics snapshots of
// surveys whose availability window closed since the last pass, so exports
// read from a warm cache.
func (s Runner) RefreshClosedSurveySnapshots() {
	now := time.Now().Unix()
	filter := bson.M{
		"$and": bson.A{
			bson.M{"endsAt": bson.M{"$gt": 0}},
			bson.M{"endsAt": bson.M{"$lt": now}},
			bson.M{"endsAt": bson.M{"$gt": now - 2*s.timerEventCooldown}},
		},
	}
	surveys, err := s.sehhatDB.FindSurveys(filter)
	if err != nil {
		logger.Error.Println(err)
		return
	}
	for _, survey := range surveys {
		count, err := s.sehhatDB.CountSurveyResponses(survey.ID.Hex())
		if err != nil {
			logger.Error.Println(err)
			continue
		}
		if count == 0 {
			// Nothing collected, let the analytics endpoint compute on demand.
			continue
		}
		logger.Info.Printf("refreshing analytics snapshot for closed survey %s", survey.ID.Hex())
		responses, err := s.sehhatDB.FindSurveyResponses(survey.ID.Hex())
		if err != nil {
			logger.Error.Println(err)
			continue
		}
		if _, err := s.sehhatDB.SaveAnalyticsSnapshot(analytics.Aggregate(survey, responses)); err != nil {
			logger.Error.Println(err)
		}
	}
}

// ReportOverduePetitions logs petitions that sat in pending state too long,
// per moze, so coordinators notice them.
func (s Runner) ReportOverduePetitions() {
	mozes, err := s.sehhatDB.FindAllMozes()
	if err != nil {
		logger.Error.Println(err)
		return
	}
	for _, moze := range mozes {
		if !moze.Active {
			continue
		}
		count, err := s.sehhatDB.CountOverduePendingPetitions(moze.Key, petitionOverdueAfterInDays)
		if err != nil {
			logger.Error.Println(err)
			continue
		}
		if count > 0 {
			logger.Warning.Printf("moze %s has %d petitions pending for more than %d days", moze.Key, count, petitionOverdueAfterInDays)
		}
	}
}
