package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"service-pickup/internal/logx"
	testlog "service-pickup/internal/testutil"
)

func hasMsg(entries []testlog.Entry, msg string) bool {
	for _, e := range entries {
		if e.Msg == msg {
			return true
		}
	}
	return false
}

func containerWithLogger(t *testing.T, rec *testlog.Recorder) *dig.Container {
	t.Helper()
	c := dig.New()
	require.NoError(t, c.Provide(func() logx.Logger { return rec.Logger() }))
	return c
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestGracefulShutdown_DoesNotPanic(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	require.NotPanics(t, func() {
		gracefulShutdown(srv, logx.Nop(), 100*time.Millisecond)
	})
}

func TestMustRun_ShutdownRequested(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	r := &Runner{runFn: func(*dig.Container) error { return context.Canceled }}

	r.MustRun(containerWithLogger(t, rec))
	require.True(t, hasMsg(rec.Entries(), "shutdown requested, exiting"))
}

func TestRunner_MustRun_StartupTimeout(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	r := &Runner{runFn: func(*dig.Container) error { return context.DeadlineExceeded }}

	r.MustRun(containerWithLogger(t, rec))
	require.True(t, hasMsg(rec.ByLevel("warn"), "startup aborted: startup timeout exceeded"))
}

func TestRunner_MustRun_PanicsOnOtherErrors(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	boom := errors.New("boom")
	r := &Runner{runFn: func(*dig.Container) error { return boom }}

	require.PanicsWithError(t, "boom", func() {
		r.MustRun(containerWithLogger(t, rec))
	})
	require.True(t, hasMsg(rec.ByLevel("error"), "run error"))
}

func TestRunner_MustRun_NilErrorIsSilent(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	r := &Runner{runFn: func(*dig.Container) error { return nil }}

	r.MustRun(containerWithLogger(t, rec))
	require.Empty(t, rec.Entries())
}

func TestAppRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: freeAddr(t), Handler: http.NewServeMux()}

	done := make(chan error, 1)
	go func() {
		done <- appRun(runIn{Ctx: ctx, Logger: rec.Logger(), Server: srv})
	}()

	require.Eventually(t, func() bool {
		return hasMsg(rec.Entries(), "http server listening")
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("appRun did not return after cancel")
	}
	require.True(t, hasMsg(rec.Entries(), "shutting down service-pickup"))
}

func TestAppRun_ListenError(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	srv := &http.Server{Addr: l.Addr().String(), Handler: http.NewServeMux()}
	err = appRun(runIn{Ctx: context.Background(), Logger: logx.Nop(), Server: srv})
	require.Error(t, err)
	require.Contains(t, err.Error(), "listen:")
}

func TestCloseResources_NilSafe(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		closeResources(logx.Nop(), nil, nil, nil)
	})
}
