package usagelimits

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "UsageLimit"

// MongoRepo persists usage limits in the UsageLimit collection.
type MongoRepo struct {
	DB *mongo.Database
}

type usageLimitDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Date    string             `bson:"date"`
	JrUsed  int                `bson:"jrUsed"`
	SrUsed  int                `bson:"srUsed"`
	JrLimit int                `bson:"jrLimit"`
	SrLimit int                `bson:"srLimit"`
}

func (d usageLimitDoc) toModel() UsageLimit {
	return UsageLimit{
		ID:      d.ID.Hex(),
		Date:    d.Date,
		JrUsed:  d.JrUsed,
		SrUsed:  d.SrUsed,
		JrLimit: d.JrLimit,
		SrLimit: d.SrLimit,
	}
}

// List returns every usage limit record in natural collection order.
func (r *MongoRepo) List(ctx context.Context) ([]UsageLimit, error) {
	cur, err := r.DB.Collection(collectionName).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find usage limits: %w", err)
	}
	defer cur.Close(ctx)

	var out []UsageLimit
	for cur.Next(ctx) {
		var doc usageLimitDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode usage limit: %w", err)
		}
		out = append(out, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage limits: %w", err)
	}
	return out, nil
}

// GetByDate returns the record for the given date string.
func (r *MongoRepo) GetByDate(ctx context.Context, date string) (UsageLimit, error) {
	var doc usageLimitDoc
	err := r.DB.Collection(collectionName).FindOne(ctx, bson.M{"date": date}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UsageLimit{}, ErrNoRecordForDate
		}
		return UsageLimit{}, fmt.Errorf("find usage limit for %s: %w", date, err)
	}
	return doc.toModel(), nil
}

// IncrementUsed atomically bumps the tier's used counter for the given date.
func (r *MongoRepo) IncrementUsed(ctx context.Context, date, tier string) error {
	field, err := usedField(tier)
	if err != nil {
		return err
	}
	res, err := r.DB.Collection(collectionName).UpdateOne(ctx,
		bson.M{"date": date},
		bson.M{"$inc": bson.M{field: 1}},
	)
	if err != nil {
		return fmt.Errorf("increment %s for %s: %w", field, date, err)
	}
	if res.MatchedCount == 0 {
		return ErrNoRecordForDate
	}
	return nil
}

func usedField(tier string) (string, error) {
	switch tier {
	case TierJR:
		return "jrUsed", nil
	case TierSR:
		return "srUsed", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
}
