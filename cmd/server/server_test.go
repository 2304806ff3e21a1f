package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/tasktracker/internal/mocks"
	"github.com/phrazzld/tasktracker/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeHTTP_GracefulShutdown(t *testing.T) {
	buf, log := logger.NewTestLogger(t)

	closed := make(chan struct{})
	taskStore := &mocks.MockTaskStore{
		CloseFn: func(context.Context) error {
			close(closed)
			return nil
		},
	}
	app, err := newApplicationWithStore(testConfig("memory://"), log, taskStore)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serveHTTP(ctx, ln, app.setupRouter()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	select {
	case <-closed:
	default:
		t.Fatal("task store was not closed")
	}
	logger.AssertLogContains(t, buf, "server shutdown completed")
}

func TestServeHTTP_ListenerFailure(t *testing.T) {
	_, log := logger.NewTestLogger(t)
	app, err := newApplicationWithStore(testConfig("memory://"), log, &mocks.MockTaskStore{})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = app.serveHTTP(context.Background(), ln, http.NotFoundHandler())
	require.Error(t, err)
	assert.True(t, errors.Is(err, net.ErrClosed))
}

func TestHealth_StoreDown(t *testing.T) {
	_, log := logger.NewTestLogger(t)
	app, err := newApplicationWithStore(testConfig("memory://"), log, &mocks.MockTaskStore{
		PingFn: func(context.Context) error { return errors.New("no reachable servers") },
	})
	require.NoError(t, err)

	w := doRequest(t, app.setupRouter(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
