//go:build integration

package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktracker/internal/ciutil"
	taskmongo "github.com/phrazzld/tasktracker/internal/platform/mongo"
	"github.com/phrazzld/tasktracker/internal/store"
	"github.com/phrazzld/tasktracker/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

const testDatabase = "task_db_test"

func newTestStore(t *testing.T) *taskmongo.TaskStore {
	t.Helper()

	uri := ciutil.TestMongoURL(nil)
	if uri == "" {
		if ciutil.IsCI() {
			t.Fatalf("%s must be set in CI", ciutil.EnvTestMongoURL)
		}
		t.Skipf("%s not set; skipping MongoDB integration test", ciutil.EnvTestMongoURL)
	}

	ctx := context.Background()
	client, err := taskmongo.Connect(ctx, uri, 10*time.Second)
	require.NoError(t, err)

	// A collection per test keeps parallel packages apart.
	collection := "tasks_" + uuid.NewString()
	s := taskmongo.NewTaskStore(client, testDatabase, collection, nil)
	t.Cleanup(func() {
		_ = s.Collection().Drop(context.Background())
		_ = s.Close(context.Background())
	})
	return s
}

func TestTaskStore_Conformance(t *testing.T) {
	storetest.Run(t, storetest.Harness{
		New:         func(t *testing.T) store.TaskStore { return newTestStore(t) },
		MissingID:   "64b7f0c2a1b2c3d4e5f60718",
		MalformedID: "not-an-object-id",
	})
}

func TestTaskStore_MalformedDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Collection().InsertOne(ctx, bson.D{{Key: "title", Value: "no deadline"}})
	require.NoError(t, err)

	_, err = s.List(ctx, store.TaskFilter{})
	assert.ErrorIs(t, err, store.ErrMalformedRecord)
}
