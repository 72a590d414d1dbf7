package repositories

import (
	"context"
	"time"

	"github.com/anonto42/review-portal/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionComments is the MongoDB collection holding project comments.
const CollectionComments = "comments"

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByProjectID(ctx context.Context, projectID string) ([]models.Comment, error)
	GetRecentComments(ctx context.Context, limit int64) ([]models.Comment, error)
	DeleteCommentsByProjectID(ctx context.Context, projectID string) (int64, error)
	DeleteOrphanedComments(ctx context.Context, liveProjectIDs []primitive.ObjectID, createdBefore time.Time) (int64, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection(CollectionComments)}
}

// CreateComment inserts a new comment
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, comment)
	return translate("create comment", err)
}

// GetCommentsByProjectID retrieves every comment of a project, oldest first
func (r *MongoCommentRepository) GetCommentsByProjectID(ctx context.Context, projectID string) ([]models.Comment, error) {
	objID, err := objectIDFromHex(projectID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, "list comments", bson.M{"project_id": objID}, findOptions)
}

// GetRecentComments retrieves the latest comments across all projects
func (r *MongoCommentRepository) GetRecentComments(ctx context.Context, limit int64) ([]models.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	return r.find(ctx, "list recent comments", bson.D{}, findOptions)
}

// DeleteCommentsByProjectID removes all comments of a project
func (r *MongoCommentRepository) DeleteCommentsByProjectID(ctx context.Context, projectID string) (int64, error) {
	objID, err := objectIDFromHex(projectID)
	if err != nil {
		return 0, err
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"project_id": objID})
	if err != nil {
		return 0, translate("delete comments", err)
	}
	return res.DeletedCount, nil
}

// DeleteOrphanedComments removes comments created before createdBefore whose
// project is not in liveProjectIDs. Newer comments may belong to a project
// created after liveProjectIDs was read.
func (r *MongoCommentRepository) DeleteOrphanedComments(ctx context.Context, liveProjectIDs []primitive.ObjectID, createdBefore time.Time) (int64, error) {
	filter := bson.M{
		"project_id": bson.M{"$nin": liveProjectIDs},
		"created_at": bson.M{"$lt": createdBefore},
	}
	res, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, translate("delete orphaned comments", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoCommentRepository) find(ctx context.Context, op string, filter interface{}, opts *options.FindOptions) ([]models.Comment, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(op, err)
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, translate(op, err)
	}
	return comments, nil
}
