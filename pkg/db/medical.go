package db

import (
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *SehhatDBService) SaveDoctorProfile(profile types.DoctorProfile) (types.DoctorProfile, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"itsNumber": profile.ITSNumber}

	upsert := true
	rd := options.After
	options := options.FindOneAndReplaceOptions{
		Upsert:         &upsert,
		ReturnDocument: &rd,
	}
	elem := types.DoctorProfile{}
	err := dbService.collectionRefDoctorProfiles().FindOneAndReplace(
		ctx, filter, profile, &options,
	).Decode(&elem)
	return elem, err
}

func (dbService *SehhatDBService) FindDoctorProfiles(filter bson.M) (profiles []types.DoctorProfile, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	batchSize := int32(32)
	opts := options.FindOptions{
		BatchSize: &batchSize,
	}
	cur, err := dbService.collectionRefDoctorProfiles().Find(ctx, filter, &opts)
	if err != nil {
		return profiles, err
	}
	defer cur.Close(ctx)

	profiles = []types.DoctorProfile{}
	for cur.Next(ctx) {
		var result types.DoctorProfile
		err := cur.Decode(&result)

		if err != nil {
			return profiles, err
		}

		profiles = append(profiles, result)
	}
	if err := cur.Err(); err != nil {
		return profiles, err
	}

	return profiles, nil
}

func (dbService *SehhatDBService) SetDoctorVerifiedStatus(profileID string, verified bool) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": _id}
	update := bson.M{"$set": bson.M{"verified": verified}}
	_, err = dbService.collectionRefDoctorProfiles().UpdateOne(ctx, filter, update)
	return err
}

func (dbService *SehhatDBService) AddPatientRecord(record types.PatientRecord) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionRefPatientRecords().InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), err
}

func (dbService *SehhatDBService) FindPatientRecordByID(recordID string) (types.PatientRecord, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return types.PatientRecord{}, err
	}
	filter := bson.M{"_id": _id}

	elem := types.PatientRecord{}
	err = dbService.collectionRefPatientRecords().FindOne(ctx, filter).Decode(&elem)
	return elem, err
}

func (dbService *SehhatDBService) FindPatientRecords(filter bson.M) (records []types.PatientRecord, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	batchSize := int32(32)
	opts := options.FindOptions{
		BatchSize: &batchSize,
	}
	cur, err := dbService.collectionRefPatientRecords().Find(ctx, filter, &opts)
	if err != nil {
		return records, err
	}
	defer cur.Close(ctx)

	records = []types.PatientRecord{}
	for cur.Next(ctx) {
		var result types.PatientRecord
		err := cur.Decode(&result)

		if err != nil {
			return records, err
		}

		records = append(records, result)
	}
	if err := cur.Err(); err != nil {
		return records, err
	}

	return records, nil
}
