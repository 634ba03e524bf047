package advisorRepo

import (
	"context"
	"fmt"
	"time"

	"consultify/config"
	"consultify/database"
	"consultify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAdvisorRepo implements AdvisorRepository using MongoDB.
type MongoAdvisorRepo struct {
	coll *mongo.Collection
}

// NewMongoAdvisorRepo constructs a new instance of MongoAdvisorRepo.
func NewMongoAdvisorRepo() AdvisorRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoAdvisorRepo{coll: db.Collection("advisors")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("advisor repo: %v", err))
	}
	return repo
}

func (r *MongoAdvisorRepo) GetByID(ctx context.Context, id string) (*models.Advisor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var advisor models.Advisor
	filter := bson.M{"id": id, "active": true}
	if err := r.coll.FindOne(ctx, filter).Decode(&advisor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch advisor %s: %w", id, err)
	}
	return &advisor, nil
}

func (r *MongoAdvisorRepo) ListActive(ctx context.Context) ([]models.Advisor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"active": true},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query advisors: %w", err)
	}
	defer cursor.Close(ctx)

	var advisors []models.Advisor
	if err := cursor.All(ctx, &advisors); err != nil {
		return nil, fmt.Errorf("failed to decode advisors: %w", err)
	}
	return advisors, nil
}

func (r *MongoAdvisorRepo) Upsert(ctx context.Context, advisor *models.Advisor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	advisor.UpdatedAt = time.Now()
	if advisor.CreatedAt.IsZero() {
		advisor.CreatedAt = advisor.UpdatedAt
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": advisor.ID}, advisor, opts); err != nil {
		return fmt.Errorf("failed to upsert advisor %s: %w", advisor.ID, err)
	}
	return nil
}
