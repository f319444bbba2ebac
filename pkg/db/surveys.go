package db

import (
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *SehhatDBService) AddSurvey(survey types.Survey) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionRefSurveys().InsertOne(ctx, survey)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), err
}

func (dbService *SehhatDBService) UpdateSurvey(survey types.Survey) (types.Survey, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": survey.ID}

	rd := options.After
	options := options.FindOneAndReplaceOptions{
		ReturnDocument: &rd,
	}
	elem := types.Survey{}
	err := dbService.collectionRefSurveys().FindOneAndReplace(
		ctx, filter, survey, &options,
	).Decode(&elem)
	return elem, err
}

func (dbService *SehhatDBService) FindSurvey(surveyID string) (types.Survey, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(surveyID)
	if err != nil {
		return types.Survey{}, err
	}
	filter := bson.M{"_id": _id}

	elem := types.Survey{}
	err = dbService.collectionRefSurveys().FindOne(ctx, filter).Decode(&elem)
	return elem, err
}

func (dbService *SehhatDBService) FindSurveys(filter bson.M) (surveys []types.Survey, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	batchSize := int32(32)
	opts := options.FindOptions{
		BatchSize: &batchSize,
	}
	cur, err := dbService.collectionRefSurveys().Find(ctx, filter, &opts)
	if err != nil {
		return surveys, err
	}
	defer cur.Close(ctx)

	surveys = []types.Survey{}
	for cur.Next(ctx) {
		var result types.Survey
		err := cur.Decode(&result)

		if err != nil {
			return surveys, err
		}

		surveys = append(surveys, result)
	}
	if err := cur.Err(); err != nil {
		return surveys, err
	}

	return surveys, nil
}

func (dbService *SehhatDBService) DeleteSurvey(surveyID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(surveyID)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": _id}
	_, err = dbService.collectionRefSurveys().DeleteOne(ctx, filter)
	return err
}
