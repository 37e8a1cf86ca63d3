package handler

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

// FailMessage is the message GET /fail reports through the error handler.
const FailMessage = "Something went wrong!"

// Hello answers GET / with a plain greeting.
func Hello() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("Hello World!")
	}
}

// Greet greets the name query parameter, or World.
func Greet() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("Hello, " + c.Query("name", "World") + "!")
	}
}

// UserParam echoes the :id path parameter.
func UserParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("User ID is: " + c.Params("id"))
	}
}

// CORSData is a JSON endpoint meant to be called cross-origin.
func CORSData() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": "CORS enabled!"})
	}
}

// ReceiveData acknowledges a JSON body by echoing it back in compact form.
func ReceiveData() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := compactBody(c.Body())
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		}
		return c.SendString("Received: " + body)
	}
}

// EchoJSON responds with the parsed JSON body.
func EchoJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var v any = fiber.Map{}
		if len(bytes.TrimSpace(c.Body())) > 0 {
			if err := json.Unmarshal(c.Body(), &v); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
			}
		}
		return c.JSON(v)
	}
}

// HTML answers with a small HTML fragment.
func HTML() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Type("html")
		return c.SendString("<h1>Hello World</h1>")
	}
}

// Fail always errors so the global error handler renders the response.
func Fail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, FailMessage)
	}
}

// Page renders the index view.
func Page() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{
			"Title":   "My Page",
			"Message": "Hello!",
		})
	}
}

// compactBody treats an empty body as {}.
func compactBody(b []byte) (string, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return "", err
	}
	return buf.String(), nil
}
