package db

import (
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *SehhatDBService) AddContent(content types.Content) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionRefContent().InsertOne(ctx, content)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), err
}

func (dbService *SehhatDBService) FindContentByID(contentID string) (types.Content, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(contentID)
	if err != nil {
		return types.Content{}, err
	}
	filter := bson.M{"_id": _id}

	elem := types.Content{}
	err = dbService.collectionRefContent().FindOne(ctx, filter).Decode(&elem)
	return elem, err
}

// FindContent lists content of one kind restricted by the caller-supplied
// visibility filter. The filter comes from the visibility resolver, so the
// store never has to know the access rules.
func (dbService *SehhatDBService) FindContent(kind string, visibilityFilter bson.M) (items []types.Content, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"kind": kind}
	for k, v := range visibilityFilter {
		filter[k] = v
	}

	batchSize := int32(32)
	opts := options.FindOptions{
		BatchSize: &batchSize,
	}
	cur, err := dbService.collectionRefContent().Find(ctx, filter, &opts)
	if err != nil {
		return items, err
	}
	defer cur.Close(ctx)

	items = []types.Content{}
	for cur.Next(ctx) {
		var result types.Content
		err := cur.Decode(&result)

		if err != nil {
			return items, err
		}

		items = append(items, result)
	}
	if err := cur.Err(); err != nil {
		return items, err
	}

	return items, nil
}

func (dbService *SehhatDBService) UpdateContent(content types.Content) (types.Content, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": content.ID}

	rd := options.After
	options := options.FindOneAndReplaceOptions{
		ReturnDocument: &rd,
	}
	elem := types.Content{}
	err := dbService.collectionRefContent().FindOneAndReplace(
		ctx, filter, content, &options,
	).Decode(&elem)
	return elem, err
}

func (dbService *SehhatDBService) DeleteContent(contentID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(contentID)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": _id}
	_, err = dbService.collectionRefContent().DeleteOne(ctx, filter)
	return err
}
