package recipes

import (
	"context"

	"cookbook/internal/security"
	"cookbook/internal/validation"
)

const categorySecurity = "security"

func securityRecipes() []Recipe {
	return []Recipe{
		{Number: 49, Title: "Password Hashing", Category: categorySecurity,
			Summary: "bcrypt a password with cost 10 and verify it.",
			Run: func(_ context.Context, rt *Runtime) error {
				hash, err := security.HashPassword("myPassword", security.DefaultCost)
				if err != nil {
					return err
				}
				rt.println(hash)
				rt.printf("matches: %t\n", security.CheckPassword(hash, "myPassword"))
				return nil
			}},
		{Number: 50, Title: "Simple Validator", Category: categorySecurity,
			Summary: "Validate a name that is too short.",
			Run: func(_ context.Context, rt *Runtime) error {
				if err := validation.Validate(validation.NameInput{Name: "Al"}); err != nil {
					rt.println(err)
					return nil
				}
				rt.println("valid")
				return nil
			}},
	}
}
