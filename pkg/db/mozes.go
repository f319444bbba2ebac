package db

import (
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *SehhatDBService) SaveMoze(moze types.Moze) (types.Moze, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"key": moze.Key}

	upsert := true
	rd := options.After
	options := options.FindOneAndReplaceOptions{
		Upsert:         &upsert,
		ReturnDocument: &rd,
	}
	elem := types.Moze{}
	err := dbService.collectionRefMozes().FindOneAndReplace(
		ctx, filter, moze, &options,
	).Decode(&elem)
	return elem, err
}

func (dbService *SehhatDBService) FindMoze(mozeKey string) (types.Moze, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"key": mozeKey}

	elem := types.Moze{}
	err := dbService.collectionRefMozes().FindOne(ctx, filter).Decode(&elem)
	return elem, err
}

func (dbService *SehhatDBService) FindMozesByKeys(mozeKeys []string) (mozes []types.Moze, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"key": bson.M{
			"$in": mozeKeys,
		},
	}

	batchSize := int32(32)
	opts := options.FindOptions{
		BatchSize: &batchSize,
	}
	cur, err := dbService.collectionRefMozes().Find(ctx, filter, &opts)
	if err != nil {
		return mozes, err
	}
	defer cur.Close(ctx)

	mozes = []types.Moze{}
	for cur.Next(ctx) {
		var result types.Moze
		err := cur.Decode(&result)

		if err != nil {
			return mozes, err
		}

		mozes = append(mozes, result)
	}
	if err := cur.Err(); err != nil {
		return mozes, err
	}

	return mozes, nil
}

func (dbService *SehhatDBService) FindAllMozes() (mozes []types.Moze, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	batchSize := int32(32)
	opts := options.FindOptions{
		BatchSize: &batchSize,
	}
	cur, err := dbService.collectionRefMozes().Find(ctx, filter, &opts)
	if err != nil {
		return mozes, err
	}
	defer cur.Close(ctx)

	mozes = []types.Moze{}
	for cur.Next(ctx) {
		var result types.Moze
		err := cur.Decode(&result)

		if err != nil {
			return mozes, err
		}

		mozes = append(mozes, result)
	}
	if err := cur.Err(); err != nil {
		return mozes, err
	}

	return mozes, nil
}

func (dbService *SehhatDBService) SetMozeActiveStatus(mozeKey string, active bool) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"key": mozeKey}
	update := bson.M{"$set": bson.M{"active": active}}
	_, err := dbService.collectionRefMozes().UpdateOne(ctx, filter, update)
	return err
}
