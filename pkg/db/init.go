package db

import (
	"context"
	"time"

	"github.com/coneno/logger"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SehhatDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewSehhatDBService(configs types.DBConfig) *SehhatDBService {
	var err error
	dbClient, err := mongo.NewClient(
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		logger.Error.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	err = dbClient.Connect(ctx)
	if err != nil {
		logger.Error.Fatal(err)
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()
	if err != nil {
		logger.Error.Fatal("fail to connect to DB: " + err.Error())
	}

	sehhatDBService := &SehhatDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if err := sehhatDBService.ensureIndexes(); err != nil {
		logger.Error.Fatal("fail to create indexes: " + err.Error())
	}

	return sehhatDBService
}

// The (survey, respondent) uniqueness invariant lives here: concurrent
// duplicate submissions race on this index, the loser gets a duplicate key
// error. The dedup key is the respondent ID for single-response surveys and
// a fresh ID otherwise, so multi-response surveys and anonymous submissions
// are exempt.
func (dbService *SehhatDBService) ensureIndexes() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionRefSurveyResponses().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "surveyID", Value: 1},
			{Key: "dedupKey", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = dbService.collectionRefMozes().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (dbService *SehhatDBService) collectionRefPrincipals() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBNamePrefix + "sehhatDB").Collection("principals")
}

func (dbService *SehhatDBService) collectionRefMozes() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBNamePrefix + "sehhatDB").Collection("mozes")
}

func (dbService *SehhatDBService) collectionRefContent() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBNamePrefix + "sehhatDB").Collection("content")
}

func (dbService *SehhatDBService) collectionRefSurveys() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBNamePrefix + "sehhatDB").Collection("surveys")
}

func (dbService *SehhatDBService) collectionRefSurveyResponses() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBNamePrefix + "sehhatDB").Collection("survey-responses")
}

func (dbService *SehhatDBService) collectionRefAnalyticsSnapshots() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBNamePrefix + "sehhatDB").Collection("analytics-snapshots")
}

func (dbService *SehhatDBService) collectionRefPetitions() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBNamePrefix + "sehhatDB").Collection("petitions")
}

func (dbService *SehhatDBService) collectionRefDoctorProfiles() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBNamePrefix + "sehhatDB").Collection("doctor-profiles")
}

func (dbService *SehhatDBService) collectionRefPatientRecords() *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBNamePrefix + "sehhatDB").Collection("patient-records")
}

func (dbService *SehhatDBService) collectionRefNotificationSubscriptions(mozeKey string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.DBNamePrefix + "sehhatDB").Collection("notification-subs-" + mozeKey)
}

// DB utils
func (dbService *SehhatDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}
