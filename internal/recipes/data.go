package recipes

import (
	"context"
	"encoding/json"
	"fmt"

	"cookbook/internal/database"
	"cookbook/internal/database/migration"
	"cookbook/internal/repository/mongodb"
	"cookbook/internal/repository/sqlite"
	"cookbook/internal/service"
)

const categoryData = "data"

func dataRecipes() []Recipe {
	return []Recipe{
		{Number: 27, Title: "Connect to MongoDB", Category: categoryData,
			Summary: "Connect and ping the configured MongoDB.",
			Run: func(ctx context.Context, rt *Runtime) error {
				client, err := database.NewMongo(ctx, rt.Config.Mongo)
				if err != nil {
					rt.printf("MongoDB connection error: %v\n", err)
					return err
				}
				defer client.Disconnect(context.WithoutCancel(ctx))
				rt.println("MongoDB connected")
				return nil
			}},
		{Number: 28, Title: "Basic Mongo Model", Category: categoryData,
			Summary: "Save a user document.",
			Run:     saveMongoUser},
		{Number: 30, Title: "Connection to PostgreSQL", Category: categoryData,
			Summary: "Open and ping the configured PostgreSQL database.",
			Run: func(_ context.Context, rt *Runtime) error {
				db, err := database.NewPostgres(rt.Config.Database)
				if err != nil {
					return err
				}
				defer db.Close()
				rt.println("Connected to PostgreSQL!")
				return nil
			}},
		{Number: 31, Title: "Simple ORM Example", Category: categoryData,
			Summary: "Migrate an in-memory SQLite schema and create a user through the service layer.",
			Run:     sqliteUserService},
		{Number: 41, Title: "Store Data in SQLite", Category: categoryData,
			Summary: "Raw SQL against an in-memory SQLite database.",
			Run:     rawSQLite},
	}
}

func saveMongoUser(ctx context.Context, rt *Runtime) error {
	client, err := database.NewMongo(ctx, rt.Config.Mongo)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	repo := mongodb.NewUserMongo(client.Database(rt.Config.Mongo.Database).Collection(mongodb.Collection))
	u, err := service.NewUserService(repo).Create(ctx, "Alice")
	if err != nil {
		return err
	}
	rt.printf("User saved (%s)\n", u.ID)
	return nil
}

func sqliteUserService(ctx context.Context, rt *Runtime) error {
	db, err := database.NewSQLite(":memory:")
	if err != nil {
		return err
	}
	defer db.Close()
	if err := migration.EnsureMigrated(ctx, db, migration.SQLite, rt.Log); err != nil {
		return err
	}

	users := service.NewUserService(sqlite.NewUserSQLite(db))
	u, err := users.Create(ctx, "Alice")
	if err != nil {
		return err
	}
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	rt.println(string(b))

	// name is NOT NULL: an empty one is rejected before reaching the table.
	if _, err := users.Create(ctx, ""); err != nil {
		rt.printf("rejected: %v\n", err)
	}
	return nil
}

func rawSQLite(ctx context.Context, rt *Runtime) error {
	db, err := database.NewSQLite(":memory:")
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `CREATE TABLE user (name TEXT)`); err != nil {
		return err
	}
	stmt, err := db.PrepareContext(ctx, `INSERT INTO user VALUES (?)`)
	if err != nil {
		return err
	}
	if _, err := stmt.ExecContext(ctx, "Alice"); err != nil {
		stmt.Close()
		return err
	}
	if err := stmt.Close(); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `SELECT rowid AS id, name FROM user`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		rt.println(fmt.Sprintf("%d: %s", id, name))
	}
	return rows.Err()
}
