package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/review-portal/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionProjects is the MongoDB collection holding project documents.
const CollectionProjects = "projects"

// ProjectRepository defines the interface for project data operations.
// Every mutating method is a single atomic document update that returns the
// document as it is after the update.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	GetProjects(ctx context.Context, limit int64) ([]models.Project, error)
	GetProjectIDs(ctx context.Context) ([]primitive.ObjectID, error)
	DeleteProject(ctx context.Context, id string) error
	CountProjects(ctx context.Context) (int64, error)
	CountProjectsByDecision(ctx context.Context, decision models.Decision) (int64, error)
	AppendVersion(ctx context.Context, id string, version models.Version) (*models.Project, error)
	IncrementReaction(ctx context.Context, id string, kind models.ReactionKind) (*models.Project, error)
	CompareAndSetDecision(ctx context.Context, id string, expected, next models.Decision) (*models.Project, error)
	SelectFinalVersion(ctx context.Context, id string, url string) (*models.Project, error)
}

// MongoProjectRepository implements ProjectRepository for MongoDB
type MongoProjectRepository struct {
	collection *mongo.Collection
}

// NewMongoProjectRepository creates a new MongoProjectRepository
func NewMongoProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{collection: db.Collection(CollectionProjects)}
}

// CreateProject inserts a new project with an empty version log and Pending decision
func (r *MongoProjectRepository) CreateProject(ctx context.Context, project *models.Project) error {
	project.ID = primitive.NewObjectID()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	if project.Versions == nil {
		project.Versions = []models.Version{}
	}
	if project.Decision == "" {
		project.Decision = models.DecisionPending
	}
	if project.Status == "" {
		project.Status = models.DefaultProjectStatus
	}
	_, err := r.collection.InsertOne(ctx, project)
	return translate("create project", err)
}

// GetProjectByID retrieves a project by ID
func (r *MongoProjectRepository) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	objID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&project); err != nil {
		return nil, translate("get project", err)
	}
	return &project, nil
}

// GetProjects retrieves projects newest first. A limit of 0 returns all of them.
func (r *MongoProjectRepository) GetProjects(ctx context.Context, limit int64) ([]models.Project, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, translate("list projects", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, translate("decode projects", err)
	}
	return projects, nil
}

// GetProjectIDs returns the IDs of every stored project
func (r *MongoProjectRepository) GetProjectIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, translate("list project ids", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, translate("decode project ids", err)
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// DeleteProject deletes a project by ID
func (r *MongoProjectRepository) DeleteProject(ctx context.Context, id string) error {
	objID, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return translate("delete project", err)
	}
	if res.DeletedCount == 0 {
		return translate("delete project", mongo.ErrNoDocuments)
	}
	return nil
}

// CountProjects returns the number of stored projects
func (r *MongoProjectRepository) CountProjects(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.D{})
	return n, translate("count projects", err)
}

// CountProjectsByDecision returns the number of projects currently in decision
func (r *MongoProjectRepository) CountProjectsByDecision(ctx context.Context, decision models.Decision) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, decisionFilter(decision))
	return n, translate("count projects by decision", err)
}

// AppendVersion pushes a version onto the project's version log
func (r *MongoProjectRepository) AppendVersion(ctx context.Context, id string, version models.Version) (*models.Project, error) {
	return r.findOneAndUpdate(ctx, "append version", id, bson.M{}, bson.M{
		"$push": bson.M{"versions": version},
	})
}

// IncrementReaction increments one reaction counter by one
func (r *MongoProjectRepository) IncrementReaction(ctx context.Context, id string, kind models.ReactionKind) (*models.Project, error) {
	return r.findOneAndUpdate(ctx, "increment reaction", id, bson.M{}, bson.M{
		"$inc": bson.M{"reactions." + string(kind): 1},
	})
}

// CompareAndSetDecision writes next only if the stored decision still equals
// expected. It returns models.ErrConflict when another writer got there first
// and models.ErrNotFound when the project does not exist.
func (r *MongoProjectRepository) CompareAndSetDecision(ctx context.Context, id string, expected, next models.Decision) (*models.Project, error) {
	project, err := r.findOneAndUpdate(ctx, "set decision", id, decisionFilter(expected), bson.M{
		"$set": bson.M{"decision": next},
	})
	if err == nil || !errors.Is(err, models.ErrNotFound) {
		return project, err
	}

	// The filter missed: either the project is gone or its decision moved.
	if _, getErr := r.GetProjectByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("set decision: expected %s: %w", expected, models.ErrConflict)
}

// SelectFinalVersion records the chosen artifact and forces the decision to Approved
func (r *MongoProjectRepository) SelectFinalVersion(ctx context.Context, id string, url string) (*models.Project, error) {
	return r.findOneAndUpdate(ctx, "select final version", id, bson.M{}, bson.M{
		"$set": bson.M{"final_file": url, "decision": models.DecisionApproved},
	})
}

func (r *MongoProjectRepository) findOneAndUpdate(ctx context.Context, op, id string, filter bson.M, update bson.M) (*models.Project, error) {
	objID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	filter["_id"] = objID

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var project models.Project
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&project); err != nil {
		return nil, translate(op, err)
	}
	return &project, nil
}

// decisionFilter matches documents in decision. Documents created before the
// decision field existed carry no value and count as Pending.
func decisionFilter(decision models.Decision) bson.M {
	if decision == models.DecisionPending {
		return bson.M{"decision": bson.M{"$in": bson.A{models.DecisionPending, nil}}}
	}
	return bson.M{"decision": decision}
}
