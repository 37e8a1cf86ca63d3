package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"cookbook/internal/service"
)

// Pinger reports whether a backing store is reachable.
// *sql.DB and database.MongoPinger satisfy it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the routes need. A nil Users or Uploads
// leaves the matching routes unregistered; a nil Health always reports healthy.
type Deps struct {
	Users    service.UserService
	Uploads  service.UploadService
	Health   Pinger
	Sessions *session.Store
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers translate between HTTP and services and hold no business logic.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/health", HealthCheck(deps.Health))
	app.Get("/healthz", LivenessProbe())

	app.Get("/", Hello())
	app.Get("/greet", Greet())
	app.Get("/user/:id", UserParam())
	app.Get("/data", CORSData())
	app.Post("/data", ReceiveData())
	app.Post("/json", EchoJSON())
	app.Get("/html", HTML())
	app.Get("/fail", Fail())
	app.Get("/page", Page())

	sessions := deps.Sessions
	if sessions == nil {
		sessions = session.New()
	}
	app.Get("/login", Login(sessions))
	app.Get("/profile", Profile(sessions))

	if deps.Users != nil {
		app.Post("/users", CreateUser(deps.Users))
		app.Get("/users", ListUsers(deps.Users))
		app.Get("/users/:id", GetUser(deps.Users))
		app.Put("/users/:id", UpdateUser(deps.Users))
		app.Delete("/users/:id", DeleteUser(deps.Users))
	}

	if deps.Uploads != nil {
		app.Post("/upload", Upload(deps.Uploads))
		app.Get("/upload/*", Download(deps.Uploads))
	}
}
