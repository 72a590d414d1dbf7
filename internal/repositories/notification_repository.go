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

// CollectionNotifications is the MongoDB collection holding the admin feed.
const CollectionNotifications = "notifications"

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetRecent(ctx context.Context, limit int64) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, id string) error
	DeleteByProjectID(ctx context.Context, projectID string) (int64, error)
	DeleteOrphaned(ctx context.Context, liveProjectIDs []primitive.ObjectID, createdBefore time.Time) (int64, error)
}

type mongoNotificationRepository struct {
	collection *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepository{collection: db.Collection(CollectionNotifications)}
}

func (r *mongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, notification)
	return translate("create notification", err)
}

func (r *mongoNotificationRepository) GetRecent(ctx context.Context, limit int64) ([]models.Notification, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"for_admin": true}, findOptions)
	if err != nil {
		return nil, translate("list notifications", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, translate("decode notifications", err)
	}
	return notifications, nil
}

func (r *mongoNotificationRepository) GetUnreadCount(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"for_admin": true, "read": false})
	return n, translate("count unread notifications", err)
}

// MarkAsRead is idempotent: a notification that is already read still matches.
func (r *mongoNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	objID, err := objectIDFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return translate("mark notification read", err)
	}
	if res.MatchedCount == 0 {
		return translate("mark notification read", mongo.ErrNoDocuments)
	}
	return nil
}

func (r *mongoNotificationRepository) DeleteByProjectID(ctx context.Context, projectID string) (int64, error) {
	objID, err := objectIDFromHex(projectID)
	if err != nil {
		return 0, err
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"project_id": objID})
	if err != nil {
		return 0, translate("delete notifications", err)
	}
	return res.DeletedCount, nil
}

// DeleteOrphaned keeps project-independent notifications and anything created
// at or after createdBefore.
func (r *mongoNotificationRepository) DeleteOrphaned(ctx context.Context, liveProjectIDs []primitive.ObjectID, createdBefore time.Time) (int64, error) {
	filter := bson.M{
		"project_id": bson.M{"$exists": true, "$ne": nil, "$nin": liveProjectIDs},
		"created_at": bson.M{"$lt": createdBefore},
	}
	res, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, translate("delete orphaned notifications", err)
	}
	return res.DeletedCount, nil
}
