package recipes

import (
	"context"
	"path/filepath"

	"cookbook/internal/fileops"
)

const categoryFiles = "files"

func fileRecipes() []Recipe {
	return []Recipe{
		{Number: 9, Title: "Read File", Category: categoryFiles,
			Summary: "Print example.txt from the working directory.",
			Run:     readExample},
		{Number: 10, Title: "Write to File", Category: categoryFiles,
			Summary: "Write output.txt into the working directory.",
			Run: func(ctx context.Context, rt *Runtime) error {
				if err := fileops.Write(ctx, filepath.Join(rt.WorkDir, "output.txt"), "Hello, World!"); err != nil {
					return err
				}
				rt.println("File has been saved!")
				return nil
			}},
		{Number: 37, Title: "Asynchronous File Reading", Category: categoryFiles,
			Summary: "Read example.txt, honouring cancellation.",
			Run:     readExample},
		{Number: 52, Title: "Basic File System Operations", Category: categoryFiles,
			Summary: "Create new-folder and write file.txt inside it.",
			Run: func(_ context.Context, rt *Runtime) error {
				p, err := fileops.MkdirWrite(filepath.Join(rt.WorkDir, "new-folder"), "file.txt", "Hello, file!")
				if err != nil {
					return err
				}
				rt.printf("wrote %s\n", p)
				return nil
			}},
	}
}

func readExample(ctx context.Context, rt *Runtime) error {
	data, err := fileops.Read(ctx, filepath.Join(rt.WorkDir, "example.txt"))
	if err != nil {
		return err
	}
	rt.println(data)
	return nil
}
