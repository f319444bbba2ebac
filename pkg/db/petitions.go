package db

import (
	"time"

	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *SehhatDBService) AddPetition(petition types.Petition) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionRefPetitions().InsertOne(ctx, petition)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), err
}

func (dbService *SehhatDBService) FindPetitionByID(petitionID string) (types.Petition, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(petitionID)
	if err != nil {
		return types.Petition{}, err
	}
	filter := bson.M{"_id": _id}

	elem := types.Petition{}
	err = dbService.collectionRefPetitions().FindOne(ctx, filter).Decode(&elem)
	return elem, err
}

// FindPetitions lists petitions restricted by the caller-supplied visibility
// filter, same contract as FindContent.
func (dbService *SehhatDBService) FindPetitions(visibilityFilter bson.M) (petitions []types.Petition, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	batchSize := int32(32)
	opts := options.FindOptions{
		BatchSize: &batchSize,
	}
	cur, err := dbService.collectionRefPetitions().Find(ctx, visibilityFilter, &opts)
	if err != nil {
		return petitions, err
	}
	defer cur.Close(ctx)

	petitions = []types.Petition{}
	for cur.Next(ctx) {
		var result types.Petition
		err := cur.Decode(&result)

		if err != nil {
			return petitions, err
		}

		petitions = append(petitions, result)
	}
	if err := cur.Err(); err != nil {
		return petitions, err
	}

	return petitions, nil
}

func (dbService *SehhatDBService) UpdatePetitionStatus(petitionID string, status string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(petitionID)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": _id}

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().Unix()}}
	_, err = dbService.collectionRefPetitions().UpdateOne(ctx, filter, update)
	return err
}

// Newest comments first, like notes on the original contact entries.
func (dbService *SehhatDBService) AddCommentToPetition(petitionID string, comment types.PetitionComment) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(petitionID)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": _id}

	update := bson.M{"$push": bson.M{"comments": bson.M{
		"$each": bson.A{
			comment,
		},
		"$position": 0,
	}}}
	_, err = dbService.collectionRefPetitions().UpdateOne(ctx, filter, update)
	return err
}

// CountOverduePendingPetitions counts petitions of a moze that sat in
// pending state longer than the given number of days.
func (dbService *SehhatDBService) CountOverduePendingPetitions(mozeKey string, overdueAfterInDays int) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ref := time.Now().AddDate(0, 0, -overdueAfterInDays).Unix()
	filter := bson.M{
		"$and": bson.A{
			bson.M{"mozeKey": mozeKey},
			bson.M{"status": types.PETITION_STATUS_PENDING},
			bson.M{"createdAt": bson.M{"$lt": ref}},
		},
	}
	return dbService.collectionRefPetitions().CountDocuments(ctx, filter)
}
