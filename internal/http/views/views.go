// Package views holds the server-rendered HTML templates.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var files embed.FS

// Engine returns a template engine over the embedded views.
func Engine() *html.Engine {
	return html.NewFileSystem(http.FS(files), ".html")
}
