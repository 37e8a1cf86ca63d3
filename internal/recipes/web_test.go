package recipes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebRecipes(t *testing.T) {
	tests := []struct {
		n    int
		want []string
	}{
		{11, []string{"Server running at http://127.0.0.1:", "GET / -> 200 Hello, World!"}},
		{12, []string{"GET / -> 200 Hello World!"}},
		{14, []string{"GET /greet -> 200 Hello, World!", "GET /greet?name=Alice -> 200 Hello, Alice!"}},
		{15, []string{"GET /user/42 -> 200 User ID is: 42"}},
		{16, []string{`POST /data -> 200 Received: {"name":"Alice"}`}},
		{17, []string{`POST /json -> 200 {"age":25,"name":"Alice"}`}},
		{18, []string{"GET /static/hello.txt -> 200 Hello from a static file"}},
		{19, []string{"GET /html -> 200 <h1>Hello World</h1>"}},
		{21, []string{"GET /fail -> 500", `"message":"Something went wrong!"`}},
		{22, []string{"GET /page -> 200", "<title>My Page</title>", "<h1>Hello!</h1>"}},
		{26, []string{
			"GET /profile -> 200 You are not logged in",
			"GET /login -> 200 User logged in",
			"GET /profile -> 200 Hello Alice",
		}},
		{29, []string{`POST /users -> 201 {"id":`, `"name":"Alice"`, "GET /users -> 200 [{"}},
		{46, []string{`GET /data -> 200 {"msg":"CORS enabled!"}`, "Access-Control-Allow-Origin: *"}},
	}
	for _, tt := range tests {
		rt, out := newRuntime(t)
		require.NoError(t, run(t, tt.n, rt), "recipe %d", tt.n)
		for _, w := range tt.want {
			assert.Contains(t, out.String(), w, "recipe %d", tt.n)
		}
	}
}

func TestLoggingMiddlewareRecipes(t *testing.T) {
	for _, n := range []int{13, 20} {
		rt, out := newRuntime(t)
		require.NoError(t, run(t, n, rt))
		assert.Contains(t, out.String(), "INF request")
		assert.Contains(t, out.String(), "method=GET")
		assert.Contains(t, out.String(), "path=/")
	}
}

func TestAnnounceRecipe(t *testing.T) {
	rt, out := newRuntime(t)
	require.NoError(t, run(t, 54, rt))
	assert.Contains(t, out.String(), "Middleware triggered!")
	assert.Contains(t, out.String(), "GET / -> 200 Hello World!")
}

func TestCRUDRecipe(t *testing.T) {
	rt, out := newRuntime(t)
	require.NoError(t, run(t, 40, rt))

	got := out.String()
	assert.Contains(t, got, "POST /users -> 201")
	assert.Contains(t, got, "-> 200 User updated")
	assert.Contains(t, got, `"name":"Bob"`)
	assert.Contains(t, got, "-> 200 User deleted")
	assert.Contains(t, got, "-> 404")
}

func TestRateLimitRecipe(t *testing.T) {
	rt, out := newRuntime(t)
	require.NoError(t, run(t, 43, rt))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, rateLimitMax+1)
	for _, l := range lines[:rateLimitMax] {
		assert.True(t, strings.HasPrefix(l, "GET / -> 200"), l)
	}
	assert.Contains(t, lines[rateLimitMax], "GET / -> 429")
	assert.Contains(t, lines[rateLimitMax], "TOO_MANY_REQUESTS")
}

func TestUploadRecipe(t *testing.T) {
	rt, out := newRuntime(t)
	require.NoError(t, run(t, 34, rt))
	assert.Contains(t, out.String(), "POST /upload -> 201")
	assert.Contains(t, out.String(), "File uploaded successfully")

	entries, err := os.ReadDir(filepath.Join(rt.WorkDir, "uploads"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".txt", filepath.Ext(entries[0].Name()))

	b, err := os.ReadFile(filepath.Join(rt.WorkDir, "uploads", entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "hello upload", string(b))
	assert.Contains(t, out.String(), "GET /upload/"+entries[0].Name()+" -> 200 hello upload")
}
