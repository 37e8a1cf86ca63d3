package recipes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"cookbook/internal/config"
	"cookbook/internal/model"
	"cookbook/internal/storage"
)

const categoryWeb = "web"

func webRecipes() []Recipe {
	return []Recipe{
		{Number: 11, Title: "HTTP Server", Category: categoryWeb,
			Summary: "A bare net/http server answering every request with plain text.",
			Run:     plainHTTPServer},
		{Number: 12, Title: "Basic Express Server", Category: categoryWeb,
			Summary: "GET / on the Fiber app.",
			Run:     getPaths("/")},
		{Number: 13, Title: "Simple Middleware", Category: categoryWeb,
			Summary: "Log method and path of every request.",
			Run:     loggedRequest},
		{Number: 14, Title: "Query Parameters", Category: categoryWeb,
			Summary: "Greet the name query parameter, defaulting to World.",
			Run:     getPaths("/greet", "/greet?name=Alice")},
		{Number: 15, Title: "URL Parameters", Category: categoryWeb,
			Summary: "Echo a path parameter.",
			Run:     getPaths("/user/42")},
		{Number: 16, Title: "Handling POST Requests", Category: categoryWeb,
			Summary: "Acknowledge a JSON body.",
			Run: func(ctx context.Context, rt *Runtime) error {
				return runWeb(ctx, rt, webOptions{log: rt.Log}, func(c *client) error {
					_, err := c.sendJSON(http.MethodPost, "/data", `{"name":"Alice"}`)
					return err
				})
			}},
		{Number: 17, Title: "Middleware for Parsing JSON", Category: categoryWeb,
			Summary: "Parse a JSON body and answer with it.",
			Run: func(ctx context.Context, rt *Runtime) error {
				return runWeb(ctx, rt, webOptions{log: rt.Log}, func(c *client) error {
					_, err := c.sendJSON(http.MethodPost, "/json", `{"name":"Alice","age":25}`)
					return err
				})
			}},
		{Number: 18, Title: "Static File Serving", Category: categoryWeb,
			Summary: "Serve files from the static directory under /static.",
			Run: func(ctx context.Context, rt *Runtime) error {
				if err := writeStaticFile(rt, "hello.txt", "Hello from a static file"); err != nil {
					return err
				}
				return getPaths("/static/hello.txt")(ctx, rt)
			}},
		{Number: 19, Title: "Sending HTML Response", Category: categoryWeb,
			Summary: "Answer with an HTML fragment.",
			Run:     getPaths("/html")},
		{Number: 20, Title: "Simple Logger", Category: categoryWeb,
			Summary: "Structured request logging middleware.",
			Run:     loggedRequest},
		{Number: 21, Title: "Error Handling Middleware", Category: categoryWeb,
			Summary: "A failing handler rendered by the global error handler.",
			Run:     getPaths("/fail")},
		{Number: 22, Title: "Using a Template Engine", Category: categoryWeb,
			Summary: "Render the embedded index view.",
			Run:     getPaths("/page")},
		{Number: 26, Title: "Simple User Authentication", Category: categoryWeb,
			Summary: "Session cookie login and profile.",
			Run:     sessionFlow},
		{Number: 29, Title: "Basic REST API", Category: categoryWeb,
			Summary: "Create and list users over HTTP.",
			Run: func(ctx context.Context, rt *Runtime) error {
				return runWeb(ctx, rt, webOptions{log: rt.Log}, func(c *client) error {
					if _, err := c.sendJSON(http.MethodPost, "/users", `{"name":"Alice"}`); err != nil {
						return err
					}
					_, err := c.get("/users")
					return err
				})
			}},
		{Number: 34, Title: "File Upload", Category: categoryWeb,
			Summary: "Multipart upload stored under the upload directory, then read back.",
			Run:     uploadFile},
		{Number: 40, Title: "Basic CRUD Operations", Category: categoryWeb,
			Summary: "Create, read, update and delete a user over HTTP.",
			Run:     crudFlow},
		{Number: 43, Title: "Basic Rate Limiting Middleware", Category: categoryWeb,
			Summary: "Five requests per minute, then 429.",
			Run:     rateLimited},
		{Number: 46, Title: "Basic CORS Handling", Category: categoryWeb,
			Summary: "Cross-origin JSON endpoint.",
			Run:     corsRequest},
		{Number: 54, Title: "Basic Middleware", Category: categoryWeb,
			Summary: "A middleware that announces every request.",
			Run: func(ctx context.Context, rt *Runtime) error {
				opts := webOptions{log: consoleLog(rt.Out, zerolog.DebugLevel)}
				return runWeb(ctx, rt, opts, func(c *client) error {
					_, err := c.get("/")
					return err
				})
			}},
	}
}

func getPaths(paths ...string) func(context.Context, *Runtime) error {
	return func(ctx context.Context, rt *Runtime) error {
		return runWeb(ctx, rt, webOptions{log: rt.Log}, func(c *client) error {
			for _, p := range paths {
				if _, err := c.get(p); err != nil {
					return err
				}
			}
			return nil
		})
	}
}

func plainHTTPServer(ctx context.Context, rt *Runtime) error {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "Hello, World!\n")
	}))
	defer srv.Close()
	rt.printf("Server running at %s/\n", srv.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	rt.printf("GET / -> %d %s", resp.StatusCode, b)
	return nil
}

func loggedRequest(ctx context.Context, rt *Runtime) error {
	opts := webOptions{log: consoleLog(rt.Out, zerolog.InfoLevel)}
	return runWeb(ctx, rt, opts, func(c *client) error {
		_, err := c.get("/")
		return err
	})
}

func sessionFlow(ctx context.Context, rt *Runtime) error {
	return runWeb(ctx, rt, webOptions{log: rt.Log}, func(c *client) error {
		for _, p := range []string{"/profile", "/login", "/profile"} {
			if _, err := c.get(p); err != nil {
				return err
			}
		}
		return nil
	})
}

func uploadFile(ctx context.Context, rt *Runtime) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "hello.txt")
	if err != nil {
		return err
	}
	io.WriteString(part, "hello upload")
	if err := mw.Close(); err != nil {
		return err
	}

	return runWeb(ctx, rt, webOptions{log: rt.Log}, func(c *client) error {
		resp, err := c.do(request{
			method:      http.MethodPost,
			path:        "/upload",
			body:        &body,
			contentType: mw.FormDataContentType(),
		})
		if err != nil {
			return err
		}
		if resp.StatusCode != fiber.StatusCreated {
			return fmt.Errorf("upload: status %d", resp.StatusCode)
		}
		var stored struct {
			File storage.ObjectInfo `json:"file"`
		}
		if err := json.Unmarshal([]byte(resp.Body), &stored); err != nil {
			return err
		}
		_, err = c.get("/upload/" + stored.File.Key)
		return err
	})
}

func crudFlow(ctx context.Context, rt *Runtime) error {
	return runWeb(ctx, rt, webOptions{log: rt.Log}, func(c *client) error {
		created, err := c.sendJSON(http.MethodPost, "/users", `{"name":"Alice"}`)
		if err != nil {
			return err
		}
		if created.StatusCode != fiber.StatusCreated {
			return fmt.Errorf("create user: status %d", created.StatusCode)
		}
		var u model.User
		if err := json.Unmarshal([]byte(created.Body), &u); err != nil {
			return err
		}

		steps := []func() (*response, error){
			func() (*response, error) { return c.get("/users") },
			func() (*response, error) { return c.sendJSON(http.MethodPut, "/users/"+u.ID, `{"name":"Bob"}`) },
			func() (*response, error) { return c.get("/users/" + u.ID) },
			func() (*response, error) { return c.do(request{method: http.MethodDelete, path: "/users/" + u.ID}) },
			func() (*response, error) { return c.get("/users/" + u.ID) },
		}
		for _, step := range steps {
			if _, err := step(); err != nil {
				return err
			}
		}
		return nil
	})
}

// rateLimitMax matches the classic express-rate-limit example; the server
// itself reads its limit from RATE_LIMIT_*.
const rateLimitMax = 5

func rateLimited(ctx context.Context, rt *Runtime) error {
	opts := webOptions{
		log:       rt.Log,
		rateLimit: config.RateLimitConfig{Max: rateLimitMax, Window: time.Minute},
	}
	return runWeb(ctx, rt, opts, func(c *client) error {
		for i := 0; i <= rateLimitMax; i++ {
			resp, err := c.get("/")
			if err != nil {
				return err
			}
			if i == rateLimitMax && resp.StatusCode != fiber.StatusTooManyRequests {
				return errors.New("rate limit was not enforced")
			}
		}
		return nil
	})
}

func corsRequest(ctx context.Context, rt *Runtime) error {
	return runWeb(ctx, rt, webOptions{log: rt.Log}, func(c *client) error {
		resp, err := c.do(request{
			method: http.MethodGet,
			path:   "/data",
			header: http.Header{"Origin": []string{"http://example.com"}},
		})
		if err != nil {
			return err
		}
		rt.printf("Access-Control-Allow-Origin: %s\n", resp.Header.Get("Access-Control-Allow-Origin"))
		return nil
	})
}
