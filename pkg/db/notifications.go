package db

import (
	"errors"

	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *SehhatDBService) AddNotificationSubscription(mozeKey string, sub types.NotificationSubscription) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	sub.MozeKey = mozeKey
	res, err := dbService.collectionRefNotificationSubscriptions(mozeKey).InsertOne(ctx, sub)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), err
}

func (dbService *SehhatDBService) FindNotificationSubscriptions(mozeKey string, topic string) (subs []types.NotificationSubscription, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if topic != "" {
		filter["topic"] = topic
	}
	batchSize := int32(32)
	opts := options.FindOptions{
		BatchSize: &batchSize,
	}
	cur, err := dbService.collectionRefNotificationSubscriptions(mozeKey).Find(ctx, filter, &opts)
	if err != nil {
		return subs, err
	}
	defer cur.Close(ctx)

	subs = []types.NotificationSubscription{}
	for cur.Next(ctx) {
		var result types.NotificationSubscription
		err := cur.Decode(&result)

		if err != nil {
			return subs, err
		}

		subs = append(subs, result)
	}
	if err := cur.Err(); err != nil {
		return subs, err
	}

	return subs, nil
}

func (dbService *SehhatDBService) DeleteNotificationSubscription(mozeKey string, subscriptionID string) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(subscriptionID)
	if err != nil {
		return 0, err
	}
	filter := bson.M{"_id": _id}
	res, err := dbService.collectionRefNotificationSubscriptions(mozeKey).DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (dbService *SehhatDBService) DeleteAllNotificationSubscriptionsForMoze(mozeKey string) (err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()
	if mozeKey == "" {
		return errors.New("mozeKey must be defined")
	}

	err = dbService.collectionRefNotificationSubscriptions(mozeKey).Drop(ctx)
	return
}
