package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cookbook/internal/service"
	"cookbook/internal/validation"
)

// CreateUser stores a user from a JSON body.
//
//	@Summary	Create user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		user	body		service.UserInput	true	"User"
//	@Success	201		{object}	model.User
//	@Failure	400		{object}	errorPayload
//	@Router		/users [post]
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.UserInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		}
		u, err := svc.Create(c.UserContext(), in.Name)
		if err != nil {
			return userError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// ListUsers returns every user.
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}	model.User
//	@Router		/users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext())
		if err != nil {
			return userError(c, err)
		}
		return c.JSON(users)
	}
}

// GetUser returns one user.
//
//	@Summary	Get user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	model.User
//	@Failure	404	{object}	errorPayload
//	@Router		/users/{id} [get]
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return userError(c, err)
		}
		return c.JSON(u)
	}
}

// UpdateUser renames a user.
//
//	@Summary	Update user
//	@Tags		users
//	@Accept		json
//	@Produce	plain
//	@Param		id		path		string				true	"User ID"
//	@Param		user	body		service.UserInput	true	"User"
//	@Success	200		{string}	string				"User updated"
//	@Failure	404		{object}	errorPayload
//	@Router		/users/{id} [put]
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.UserInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON")
		}
		if _, err := svc.Update(c.UserContext(), c.Params("id"), in.Name); err != nil {
			return userError(c, err)
		}
		return c.SendString("User updated")
	}
}

// DeleteUser removes a user.
//
//	@Summary	Delete user
//	@Tags		users
//	@Produce	plain
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{string}	string	"User deleted"
//	@Failure	404	{object}	errorPayload
//	@Router		/users/{id} [delete]
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return userError(c, err)
		}
		return c.SendString("User deleted")
	}
}

func userError(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", verr.Message)
	case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
