package db

import (
	"errors"

	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateResponse signals that the respondent already submitted a
// response to a survey that does not allow multiple responses.
var ErrDuplicateResponse = errors.New("respondent already submitted a response")

// AddSurveyResponse inserts a response. Uniqueness per (survey, respondent)
// rides on the dedup-key index: when the survey disallows multiple responses
// the respondent ID is the dedup key, otherwise every insert gets a fresh
// one. Races between concurrent submissions resolve at the index, here we
// just translate the duplicate key error.
func (dbService *SehhatDBService) AddSurveyResponse(survey types.Survey, response types.SurveyResponse) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if !survey.AllowMultipleResponses && response.RespondentID != "" {
		response.DedupKey = response.RespondentID
	} else {
		response.DedupKey = primitive.NewObjectID().Hex()
	}

	res, err := dbService.collectionRefSurveyResponses().InsertOne(ctx, response)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateResponse
		}
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), err
}

func (dbService *SehhatDBService) FindSurveyResponses(surveyID string) (responses []types.SurveyResponse, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyID": surveyID}
	batchSize := int32(32)
	opts := options.FindOptions{
		BatchSize: &batchSize,
	}
	cur, err := dbService.collectionRefSurveyResponses().Find(ctx, filter, &opts)
	if err != nil {
		return responses, err
	}
	defer cur.Close(ctx)

	responses = []types.SurveyResponse{}
	for cur.Next(ctx) {
		var result types.SurveyResponse
		err := cur.Decode(&result)

		if err != nil {
			return responses, err
		}

		responses = append(responses, result)
	}
	if err := cur.Err(); err != nil {
		return responses, err
	}

	return responses, nil
}

func (dbService *SehhatDBService) CountSurveyResponses(surveyID string) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyID": surveyID}
	return dbService.collectionRefSurveyResponses().CountDocuments(ctx, filter)
}

func (dbService *SehhatDBService) DeleteSurveyResponses(surveyID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyID": surveyID}
	_, err := dbService.collectionRefSurveyResponses().DeleteMany(ctx, filter)
	return err
}
