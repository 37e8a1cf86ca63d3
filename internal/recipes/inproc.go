package recipes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"cookbook/internal/config"
	"cookbook/internal/database"
	"cookbook/internal/database/migration"
	"cookbook/internal/http/handler"
	"cookbook/internal/repository/sqlite"
	"cookbook/internal/server"
	"cookbook/internal/service"
	"cookbook/internal/storage"
)

// webApp is the full HTTP application backed by an in-memory SQLite user
// store and a disk upload store under the recipe working directory.
type webApp struct {
	app     *fiber.App
	cleanup func()
}

type webOptions struct {
	log       zerolog.Logger
	rateLimit config.RateLimitConfig
}

func newWebApp(ctx context.Context, rt *Runtime, opts webOptions) (*webApp, error) {
	db, err := database.NewSQLite(":memory:")
	if err != nil {
		return nil, err
	}
	if err := migration.EnsureMigrated(ctx, db, migration.SQLite, rt.Log); err != nil {
		db.Close()
		return nil, err
	}

	store, err := storage.NewDisk(filepath.Join(rt.WorkDir, rt.Config.UploadDir))
	if err != nil {
		db.Close()
		return nil, err
	}

	app, err := server.New(server.Options{
		Log:       opts.log,
		Registry:  prometheus.NewRegistry(),
		RateLimit: opts.rateLimit,
		StaticDir: filepath.Join(rt.WorkDir, rt.Config.StaticDir),
	}, handler.Deps{
		Users:   service.NewUserService(sqlite.NewUserSQLite(db)),
		Uploads: service.NewUploadService(store, service.WithKeyPrefix("")),
		Health:  db,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &webApp{app: app, cleanup: func() { db.Close() }}, nil
}

// client issues requests against an app without a network listener and
// prints one line per exchange. Cookies are carried between requests.
type client struct {
	app     *fiber.App
	out     io.Writer
	cookies map[string]*http.Cookie
}

func newClient(app *fiber.App, out io.Writer) *client {
	return &client{app: app, out: out, cookies: make(map[string]*http.Cookie)}
}

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	header      http.Header
}

type response struct {
	*http.Response
	Body string
}

func (c *client) do(r request) (*response, error) {
	req := httptest.NewRequest(r.method, r.path, r.body)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	resp, err := c.app.Test(req, -1)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	for _, ck := range resp.Cookies() {
		c.cookies[ck.Name] = ck
	}

	body := strings.TrimRight(string(b), "\n")
	fmt.Fprintf(c.out, "%s %s -> %d %s\n", r.method, r.path, resp.StatusCode, body)
	return &response{Response: resp, Body: body}, nil
}

func (c *client) get(path string) (*response, error) {
	return c.do(request{method: http.MethodGet, path: path})
}

func (c *client) sendJSON(method, path, body string) (*response, error) {
	return c.do(request{method: method, path: path, body: strings.NewReader(body), contentType: fiber.MIMEApplicationJSON})
}

// runWeb builds a fresh app, hands a client to fn and tears everything down.
func runWeb(ctx context.Context, rt *Runtime, opts webOptions, fn func(*client) error) error {
	w, err := newWebApp(ctx, rt, opts)
	if err != nil {
		return err
	}
	defer w.cleanup()
	return fn(newClient(w.app, rt.Out))
}

// consoleLog renders log events as short human readable lines on out.
func consoleLog(out io.Writer, level zerolog.Level) zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
	}
	return zerolog.New(w).Level(level)
}

func writeStaticFile(rt *Runtime, name, content string) error {
	dir := filepath.Join(rt.WorkDir, rt.Config.StaticDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}
