package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionUserID   = "user_id"
	sessionUserName = "user_name"
)

// Login signs the demo user into a fresh session.
func Login(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		sess.Set(sessionUserID, 1)
		sess.Set(sessionUserName, "Alice")
		if err := sess.Save(); err != nil {
			return err
		}
		return c.SendString("User logged in")
	}
}

// Profile greets the signed-in user.
func Profile(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		name, ok := sess.Get(sessionUserName).(string)
		if !ok {
			return c.SendString("You are not logged in")
		}
		return c.SendString("Hello " + name)
	}
}
