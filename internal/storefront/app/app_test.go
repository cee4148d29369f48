package app

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Kareem09qyu/Okta/pkg/session"
	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	cfg := defaultConfig()
	cfg.DatabaseFile = filepath.Join(dir, "storefront.db")
	cfg.PepperFile = filepath.Join(dir, "pepper")
	cfg.SessionKeyFile = filepath.Join(dir, "keys", "session.key")
	cfg.Env = "test"
	cfg.ShutdownGracePeriod = time.Second
	return cfg
}

func TestNewCreatesSecrets(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	for _, f := range []string{cfg.PepperFile, cfg.SessionKeyFile, cfg.DatabaseFile} {
		info, err := os.Stat(f)
		require.NoError(t, err, f)
		require.NotZero(t, info.Size(), f)
	}
	require.Equal(t, ":8080", app.server.Addr)
}

func TestApplicationServesStorefront(t *testing.T) {
	for _, codec := range []string{CodecPlain, CodecJWT} {
		t.Run(codec, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.SessionCodec = codec

			app, err := New(cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = app.db.Close() })

			srv := httptest.NewServer(app.Handler())
			t.Cleanup(srv.Close)

			client := storefrontsdk.NewClient(srv.URL)
			ctx := t.Context()

			health, err := client.Readiness(ctx)
			require.NoError(t, err)
			require.Equal(t, "ok", health.Status)
			require.Equal(t, BuildVersion, health.Version)

			reg, err := client.Register(ctx, storefrontsdk.RegisterRequest{
				Username: "alice",
				Email:    "alice@x.com",
				Password: "secret123",
			})
			require.NoError(t, err)
			require.True(t, reg.Success)

			login, err := client.Login(ctx, storefrontsdk.LoginRequest{Username: "alice", Password: "secret123"})
			require.NoError(t, err)
			require.True(t, login.Success)
			require.False(t, login.RequireTwoFactor)

			cookie := client.Cookie(session.DefaultCookieName)
			require.NotEmpty(t, cookie)
			if codec == CodecJWT {
				require.Len(t, strings.Split(cookie, "."), 3)
			} else {
				require.Equal(t, "1", cookie)
			}

			me, err := client.Me(ctx)
			require.NoError(t, err)
			require.True(t, me.Success)
			require.Equal(t, "alice", me.User.Username)
		})
	}
}

func TestNewRejectsUnreachablePostgres(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = DriverPostgres
	cfg.DatabaseURL = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"

	_, err := New(cfg)
	require.ErrorContains(t, err, "failed to apply database migrations")
}

func TestShutdownClosesStore(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)

	require.NoError(t, app.Shutdown())
	require.Error(t, app.db.Ping(t.Context()))
}
