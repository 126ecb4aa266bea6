package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/epithet-ssh/tnetstring/pkg/config"
	"github.com/epithet-ssh/tnetstring/pkg/tnetstring"
	"github.com/lmittmann/tint"
	"gotest.tools/assert"
)

func parseServe(t *testing.T, args ...string) *CLI {
	t.Helper()
	var cli CLI
	parser := newParser(&cli, io.Discard, io.Discard)
	kctx, err := parser.Parse(append([]string{"serve"}, args...))
	assert.NilError(t, err)
	assert.Equal(t, "serve", kctx.Command())
	return &cli
}

func TestServe_ListenDefault(t *testing.T) {
	t.Setenv("TNS_LISTEN", "")
	os.Unsetenv("TNS_LISTEN")

	cli := parseServe(t)
	assert.Equal(t, config.DefaultListen, cli.Serve.Listen)
}

func TestServe_ListenFlag(t *testing.T) {
	cli := parseServe(t, "--listen", "127.0.0.1:9000")
	assert.Equal(t, "127.0.0.1:9000", cli.Serve.Listen)

	cli = parseServe(t, "-l", ":9001")
	assert.Equal(t, ":9001", cli.Serve.Listen)
}

func TestServe_ListenEnv(t *testing.T) {
	t.Setenv("TNS_LISTEN", "127.0.0.1:7000")

	cli := parseServe(t)
	assert.Equal(t, "127.0.0.1:7000", cli.Serve.Listen)
}

func TestServe_ListenConfig(t *testing.T) {
	t.Setenv("TNS_LISTEN", "")
	os.Unsetenv("TNS_LISTEN")

	path := filepath.Join(t.TempDir(), "tns.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("listen: \"0.0.0.0:8500\"\n"), 0644))

	cli := parseServe(t, "--config", path)
	assert.Equal(t, "0.0.0.0:8500", cli.Serve.Listen)

	// The command line still wins.
	cli = parseServe(t, "--config", path, "--listen", ":1")
	assert.Equal(t, ":1", cli.Serve.Listen)
}

func TestServe_Server(t *testing.T) {
	s := &ServeCLI{Listen: "127.0.0.1:0"}
	logger := slog.New(tint.NewHandler(t.Output(), &tint.Options{Level: slog.LevelDebug}))
	srv := s.server(logger, tnetstring.NewCodec(tnetstring.Values))
	assert.Equal(t, "127.0.0.1:0", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/encode", strings.NewReader("a: 1\n")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "8:1:a,1:1#}", rec.Body.String())
}
