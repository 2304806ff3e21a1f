package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/platform/logger"
	"github.com/phrazzld/tasktracker/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// URL schemes handled by this package.
const (
	URLScheme    = "mongodb://"
	SRVURLScheme = "mongodb+srv://"
)

// IsURL reports whether rawURL names a MongoDB deployment.
func IsURL(rawURL string) bool {
	return strings.HasPrefix(rawURL, URLScheme) || strings.HasPrefix(rawURL, SRVURLScheme)
}

// taskDocument is the stored shape of a task. Pointer fields let decoding
// tell an absent field apart from a zero value.
type taskDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     *string            `bson:"title"`
	Deadline  *string            `bson:"deadline"`
	Completed *bool              `bson:"completed"`
}

func (d taskDocument) toDomain() (*domain.Task, error) {
	switch {
	case d.Title == nil:
		return nil, &decodeError{field: "title"}
	case d.Deadline == nil:
		return nil, &decodeError{field: "deadline"}
	case d.Completed == nil:
		return nil, &decodeError{field: "completed"}
	}
	return &domain.Task{
		ID:        d.ID.Hex(),
		Title:     *d.Title,
		Deadline:  *d.Deadline,
		Completed: *d.Completed,
	}, nil
}

// TaskStore implements the store.TaskStore interface on a MongoDB collection.
type TaskStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Connect opens a client for uri and verifies it with a ping bounded by
// timeout.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

// NewTaskStore creates a task store over database.collection of client.
// The store owns the client and disconnects it on Close.
// If logger is nil, a default logger will be used.
func NewTaskStore(client *mongo.Client, database, collection string, logger *slog.Logger) *TaskStore {
	if client == nil {
		panic("client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger: logger.With(
			slog.String("component", "mongo_task_store"),
			slog.String("collection", collection),
		),
	}
}

// Collection returns the backing collection.
func (s *TaskStore) Collection() *mongo.Collection {
	return s.collection
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	completed := false
	doc := taskDocument{
		Title:     &task.Title,
		Deadline:  &task.Deadline,
		Completed: &completed,
	}

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		log.Error("failed to insert task", slog.String("error", err.Error()))
		return MapError(err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	task.ID = id.Hex()
	task.Completed = false

	log.Info("task created successfully", slog.String("task_id", task.ID))
	return nil
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := bson.D{}
	if filter.ActiveOnly {
		query = bson.D{{Key: "completed", Value: false}}
	}

	cursor, err := s.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.Bool("active_only", filter.ActiveOnly))
		return nil, MapError(err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		log.Error("failed to decode tasks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", store.ErrMalformedRecord, err)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for _, doc := range docs {
		task, err := doc.toDomain()
		if err != nil {
			log.Error("malformed task document",
				slog.String("task_id", doc.ID.Hex()),
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}

	log.Debug("tasks listed",
		slog.Bool("active_only", filter.ActiveOnly),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// MarkCompleted implements store.TaskStore.MarkCompleted.
func (s *TaskStore) MarkCompleted(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Debug("invalid task id", slog.String("task_id", id))
		return fmt.Errorf("%w: %q is not a task id", domain.ErrInvalidID, id)
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: objectID}, {Key: "completed", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "completed", Value: true}}}},
	)
	if err != nil {
		log.Error("failed to complete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return MapError(err)
	}

	if result.ModifiedCount == 0 {
		log.Debug("no active task matched", slog.String("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Info("task marked completed", slog.String("task_id", id))
	return nil
}

// Ping implements store.TaskStore.Ping.
func (s *TaskStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close implements store.TaskStore.Close.
func (s *TaskStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
