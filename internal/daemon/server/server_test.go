package server

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goaltray/goaltray/internal/daemon/bridge"
	"github.com/goaltray/goaltray/internal/daemon/menu"
	"github.com/goaltray/goaltray/internal/daemon/router"
	"github.com/goaltray/goaltray/internal/models"
)

type nopInstaller struct{}

func (nopInstaller) Install(*menu.Menu) error { return nil }

func startServer(t *testing.T) (*Server, *router.Router) {
	t.Helper()
	b := bridge.New(zap.NewNop())
	r := router.New(nopInstaller{}, b, func() {}, zap.NewNop(), menu.DefaultOptions())
	b.Attach(r)

	srv, err := New("127.0.0.1", 0, b, r, zap.NewNop())
	require.NoError(t, err)
	require.NotZero(t, srv.Port())

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Stop(ctx)
		assert.NoError(t, <-done)
	})
	return srv, r
}

func baseURL(srv *Server) string {
	return "127.0.0.1:" + strconv.Itoa(srv.Port())
}

func TestStatusBeforeAnyWindow(t *testing.T) {
	srv, _ := startServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, err := FetchStatus(ctx, "http://"+baseURL(srv)+StatusPath)
	require.NoError(t, err)

	assert.Equal(t, srv.Port(), st.Port)
	assert.NotZero(t, st.PID)
	assert.False(t, st.Window)
	assert.Zero(t, st.Items)
	assert.False(t, st.StartedAt.IsZero())
}

func TestStatusAfterPush(t *testing.T) {
	srv, r := startServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := bridge.Dial(ctx, "ws://"+baseURL(srv)+BridgePath)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Hello(ctx, bridge.MainLabel))

	goals := []models.Goal{{ID: "a", Title: "Write"}, {ID: "b", Title: "Ship", Completed: true}}
	require.NoError(t, c.Invoke(ctx, bridge.CmdUpdateTrayMenu, bridge.UpdateTrayMenuArgs{Goals: goals}))
	require.Len(t, r.Goals(), 2)

	st, err := FetchStatus(ctx, "http://"+baseURL(srv)+StatusPath)
	require.NoError(t, err)
	assert.True(t, st.Window)
	assert.Equal(t, 2, st.Goals)
	assert.Equal(t, 1, st.Sessions)

	want := 0
	r.Installed().Walk(func(it menu.Item, _ int) {
		if it.Kind != menu.KindSeparator {
			want++
		}
	})
	assert.Equal(t, want, st.Items)
}

func TestStatusRejectsPost(t *testing.T) {
	srv, _ := startServer(t)

	resp, err := http.Post("http://"+baseURL(srv)+StatusPath, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
