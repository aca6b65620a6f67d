package analyses

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "Analysis"

// MongoRepo persists analyses in the Analysis collection.
type MongoRepo struct {
	DB *mongo.Database
}

type analysisDoc struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	SlideImage           string             `bson:"slideImage"`
	Organ                string             `bson:"organ"`
	ClinicalContext      string             `bson:"clinicalContext"`
	Model                string             `bson:"model"`
	Observation          string             `bson:"observation,omitempty"`
	PreliminaryDiagnosis string             `bson:"preliminaryDiagnosis,omitempty"`
	ConfidenceLevel      string             `bson:"confidenceLevel,omitempty"`
	Disclaimer           string             `bson:"disclaimer,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt"`
	Feedback             *feedbackDoc       `bson:"feedback,omitempty"`
}

type feedbackDoc struct {
	Rating int    `bson:"rating"`
	Notes  string `bson:"notes"`
}

func (d analysisDoc) toModel() Analysis {
	out := Analysis{
		ID:                   d.ID.Hex(),
		SlideImage:           d.SlideImage,
		Organ:                d.Organ,
		ClinicalContext:      d.ClinicalContext,
		Model:                d.Model,
		Observation:          d.Observation,
		PreliminaryDiagnosis: d.PreliminaryDiagnosis,
		ConfidenceLevel:      d.ConfidenceLevel,
		Disclaimer:           d.Disclaimer,
		CreatedAt:            d.CreatedAt,
	}
	if d.Feedback != nil {
		out.Feedback = &Feedback{Rating: d.Feedback.Rating, Notes: d.Feedback.Notes}
	}
	return out
}

// Create inserts the analysis and returns the assigned id in string form.
func (r *MongoRepo) Create(ctx context.Context, analysis Analysis) (string, error) {
	doc := analysisDoc{
		SlideImage:           analysis.SlideImage,
		Organ:                analysis.Organ,
		ClinicalContext:      analysis.ClinicalContext,
		Model:                analysis.Model,
		Observation:          analysis.Observation,
		PreliminaryDiagnosis: analysis.PreliminaryDiagnosis,
		ConfidenceLevel:      analysis.ConfidenceLevel,
		Disclaimer:           analysis.Disclaimer,
		CreatedAt:            analysis.CreatedAt,
	}
	res, err := r.DB.Collection(collectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// List returns every analysis in natural collection order.
func (r *MongoRepo) List(ctx context.Context) ([]Analysis, error) {
	cur, err := r.DB.Collection(collectionName).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find analyses: %w", err)
	}
	defer cur.Close(ctx)

	var out []Analysis
	for cur.Next(ctx) {
		var doc analysisDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode analysis: %w", err)
		}
		out = append(out, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return out, nil
}

// SetFeedback attaches feedback to an existing analysis.
func (r *MongoRepo) SetFeedback(ctx context.Context, analysisID string, fb Feedback) error {
	oid, err := primitive.ObjectIDFromHex(analysisID)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.DB.Collection(collectionName).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"feedback": feedbackDoc{Rating: fb.Rating, Notes: fb.Notes}}},
	)
	if err != nil {
		return fmt.Errorf("set feedback on %s: %w", analysisID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
