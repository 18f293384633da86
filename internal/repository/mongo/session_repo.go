package mongo

import (
	"context"
	"errors"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollectionName = "sessions"

// mongoSessionRepository implements repository.SessionRepository
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new Session repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Create inserts a new session. A duplicate-key error from the unique
// (user, days, preferredTime) index maps to repository.ErrDuplicate so the
// service layer can treat a storage-level collision as a schedule conflict.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error) {
	if session.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session requires an owner")
	}
	session.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.Completed == nil {
		session.Completed = []domain.CompletionRecord{}
	}

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted session ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single session, scoped to its owner.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Session, error) {
	var session domain.Session
	filter := bson.M{"_id": id, "user": ownerID}
	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// ListByOwner retrieves all sessions of one owner, sorted by preferred
// time of day, then creation time.
func (r *mongoSessionRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Session, error) {
	sessions := []domain.Session{}
	filter := bson.M{"user": ownerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "preferredTime", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update replaces the mutable attributes of a session. The completion log
// is append-only and never written here; use AppendCompletion.
func (r *mongoSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	if session.ID == primitive.NilObjectID || session.OwnerID == primitive.NilObjectID {
		return errors.New("session ID and owner ID are required for update")
	}

	filter := bson.M{"_id": session.ID, "user": session.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"type":          session.Type,
			"duration":      session.Duration,
			"preferredTime": session.PreferredTime,
			"frequency":     session.Frequency,
			"intensity":     session.Intensity,
			"equipment":     session.Equipment,
			"days":          session.Days,
			"notes":         session.Notes,
			"updatedAt":     time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a session owned by ownerID.
func (r *mongoSessionRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "user": ownerID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AppendCompletion pushes one record onto the completion log and returns
// the updated session. No conflict re-check happens on this path.
func (r *mongoSessionRepository) AppendCompletion(ctx context.Context, id, ownerID primitive.ObjectID, rec domain.CompletionRecord) (*domain.Session, error) {
	filter := bson.M{"_id": id, "user": ownerID}
	updateDoc := bson.M{
		"$push": bson.M{"completed": rec},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var session domain.Session
	err := r.collection.FindOneAndUpdate(ctx, filter, updateDoc, opts).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// StatsByOwner aggregates the owner's schedule: session counts by type,
// total logged completions, and completion rate per type.
func (r *mongoSessionRepository) StatsByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.WorkoutStats, error) {
	stats := &domain.WorkoutStats{
		WorkoutsByType:  []domain.TypeCount{},
		CompletionRates: []domain.TypeCompletionRate{},
	}
	match := bson.D{{Key: "$match", Value: bson.M{"user": ownerID}}}

	// Scheduled sessions grouped by workout type.
	byTypePipeline := mongo.Pipeline{
		match,
		bson.D{{Key: "$group", Value: bson.M{"_id": "$type", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cursor, err := r.collection.Aggregate(ctx, byTypePipeline)
	if err != nil {
		return nil, err
	}
	if err = cursor.All(ctx, &stats.WorkoutsByType); err != nil {
		return nil, err
	}

	// Total number of logged completions across all sessions.
	completedPipeline := mongo.Pipeline{
		match,
		bson.D{{Key: "$unwind", Value: "$completed"}},
		bson.D{{Key: "$count", Value: "total"}},
	}
	cursor, err = r.collection.Aggregate(ctx, completedPipeline)
	if err != nil {
		return nil, err
	}
	var totals []struct {
		Total int `bson:"total"`
	}
	if err = cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	if len(totals) > 0 {
		stats.TotalCompletedSessions = totals[0].Total
	}

	// Completion rate per workout type: completions / scheduled sessions.
	ratesPipeline := mongo.Pipeline{
		match,
		bson.D{{Key: "$project", Value: bson.M{
			"type":           1,
			"completedCount": bson.M{"$size": "$completed"},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":            "$type",
			"totalCompleted": bson.M{"$sum": "$completedCount"},
			"totalScheduled": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"completionRate": bson.M{"$multiply": bson.A{
				bson.M{"$divide": bson.A{"$totalCompleted", bson.M{"$max": bson.A{"$totalScheduled", 1}}}},
				100,
			}},
		}}},
	}
	cursor, err = r.collection.Aggregate(ctx, ratesPipeline)
	if err != nil {
		return nil, err
	}
	if err = cursor.All(ctx, &stats.CompletionRates); err != nil {
		return nil, err
	}

	return stats, nil
}

// EnsureSessionIndexes creates necessary indexes. Call during startup.
// The unique multikey index on (user, days, preferredTime) enforces the
// no-two-sessions-per-day-and-time rule at the storage layer, closing the
// race between a conflict check and the following write.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "days", Value: 1}, {Key: "preferredTime", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "preferredTime", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
