package recipes

import (
	"context"
	"os"
	"path/filepath"

	"cookbook/internal/logger"
)

const categorySystem = "system"

// EnvVar is the variable the environment recipe prints.
const EnvVar = "MY_ENV_VAR"

func systemRecipes() []Recipe {
	return []Recipe{
		{Number: 25, Title: "Environment Variables", Category: categorySystem,
			Summary: "Print " + EnvVar + ".",
			Run: func(_ context.Context, rt *Runtime) error {
				v, ok := os.LookupEnv(EnvVar)
				if !ok {
					rt.println(EnvVar + " is not set")
					return nil
				}
				rt.println(v)
				return nil
			}},
		{Number: 42, Title: "Basic File Logger", Category: categorySystem,
			Summary: "Append a structured line to server.log.",
			Run: func(_ context.Context, rt *Runtime) error {
				path := filepath.Join(rt.WorkDir, "server.log")
				f, err := logger.NewFile(path)
				if err != nil {
					return err
				}
				f.Logger.Info().Msg("Server started")
				if err := f.Close(); err != nil {
					return err
				}
				rt.printf("appended to %s\n", path)
				return nil
			}},
	}
}
