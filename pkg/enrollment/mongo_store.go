package enrollment

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)

const mongoCollection = "two_factor_configs"

// MongoStore persists Records in a MongoDB collection, one document per
// user. All conditional updates are single-document operations, which
// MongoDB applies atomically - the $pull in ConsumeBackupCode is the
// anti-double-spend guard.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a store on the two_factor_configs collection of the
// given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(mongoCollection)}
}

func (s *MongoStore) Get(ctx context.Context, userID string) (*Record, error) {
	var record Record
	err := s.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return &record, nil
}

func (s *MongoStore) Save(ctx context.Context, record *Record) error {
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": record.UserID},
		record,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *MongoStore) Enable(ctx context.Context, userID string, enabledAt time.Time) error {
	// Matching on enabled:false makes the transition single-shot: a second
	// concurrent Enable finds nothing to match.
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": userID, "enabled": false},
		bson.M{"$set": bson.M{"enabled": true, "enabled_at": enabledAt}},
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, userID string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ConsumeBackupCode(ctx context.Context, userID, hash string) (bool, error) {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": userID, "backup_code_hashes": hash},
		bson.M{"$pull": bson.M{"backup_code_hashes": hash}},
	)
	if err != nil {
		return false, errors.Join(ErrStoreFailure, err)
	}
	return result.ModifiedCount == 1, nil
}

func (s *MongoStore) ReplaceBackupCodes(ctx context.Context, userID string, hashes []string) error {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"backup_code_hashes": hashes}},
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
