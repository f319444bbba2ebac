package db

import (
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *SehhatDBService) SavePrincipal(principal types.Principal) (types.Principal, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"itsNumber": principal.ITSNumber}

	upsert := true
	rd := options.After
	options := options.FindOneAndReplaceOptions{
		Upsert:         &upsert,
		ReturnDocument: &rd,
	}
	elem := types.Principal{}
	err := dbService.collectionRefPrincipals().FindOneAndReplace(
		ctx, filter, principal, &options,
	).Decode(&elem)
	return elem, err
}

func (dbService *SehhatDBService) FindPrincipalByITSNumber(itsNumber string) (types.Principal, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"itsNumber": itsNumber}

	elem := types.Principal{}
	err := dbService.collectionRefPrincipals().FindOne(ctx, filter).Decode(&elem)
	return elem, err
}

func (dbService *SehhatDBService) FindPrincipalByID(id string) (types.Principal, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return types.Principal{}, err
	}
	filter := bson.M{"_id": _id}

	elem := types.Principal{}
	err = dbService.collectionRefPrincipals().FindOne(ctx, filter).Decode(&elem)
	return elem, err
}

func (dbService *SehhatDBService) FindPrincipalsByMoze(mozeKey string) (principals []types.Principal, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"managedMozes": mozeKey}
	batchSize := int32(32)
	opts := options.FindOptions{
		BatchSize: &batchSize,
	}
	cur, err := dbService.collectionRefPrincipals().Find(ctx, filter, &opts)
	if err != nil {
		return principals, err
	}
	defer cur.Close(ctx)

	principals = []types.Principal{}
	for cur.Next(ctx) {
		var result types.Principal
		err := cur.Decode(&result)

		if err != nil {
			return principals, err
		}

		principals = append(principals, result)
	}
	if err := cur.Err(); err != nil {
		return principals, err
	}

	return principals, nil
}

// Principals are never deleted, only soft-disabled.
func (dbService *SehhatDBService) SetPrincipalActiveStatus(id string, active bool) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": _id}
	update := bson.M{"$set": bson.M{"active": active}}
	_, err = dbService.collectionRefPrincipals().UpdateOne(ctx, filter, update)
	return err
}
