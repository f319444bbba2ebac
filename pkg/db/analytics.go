package db

import (
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveAnalyticsSnapshot caches a computed snapshot per survey. Snapshots
// are derived data, the raw responses stay the source of truth.
func (dbService *SehhatDBService) SaveAnalyticsSnapshot(snapshot types.SurveyAnalytics) (types.SurveyAnalytics, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyID": snapshot.SurveyID}

	upsert := true
	rd := options.After
	options := options.FindOneAndReplaceOptions{
		Upsert:         &upsert,
		ReturnDocument: &rd,
	}
	elem := types.SurveyAnalytics{}
	err := dbService.collectionRefAnalyticsSnapshots().FindOneAndReplace(
		ctx, filter, snapshot, &options,
	).Decode(&elem)
	return elem, err
}

func (dbService *SehhatDBService) FindAnalyticsSnapshot(surveyID string) (types.SurveyAnalytics, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyID": surveyID}

	elem := types.SurveyAnalytics{}
	err := dbService.collectionRefAnalyticsSnapshots().FindOne(ctx, filter).Decode(&elem)
	return elem, err
}
