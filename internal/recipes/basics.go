package recipes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"cookbook/internal/basics"
)

const categoryBasics = "basics"

func basicsRecipes() []Recipe {
	return []Recipe{
		{Number: 1, Title: "Hello World", Category: categoryBasics,
			Summary: "Print a greeting.",
			Run: func(_ context.Context, rt *Runtime) error {
				rt.println("Hello, World!")
				return nil
			}},
		{Number: 2, Title: "Basic Arithmetic", Category: categoryBasics,
			Summary: "Add two numbers.",
			Run: func(_ context.Context, rt *Runtime) error {
				rt.println(basics.Add(5, 3))
				return nil
			}},
		{Number: 3, Title: "Factorial", Category: categoryBasics,
			Summary: "Compute 5! without overflowing.",
			Run: func(_ context.Context, rt *Runtime) error {
				f, err := basics.Factorial(5)
				if err != nil {
					return err
				}
				rt.println(f)
				return nil
			}},
		{Number: 4, Title: "FizzBuzz", Category: categoryBasics,
			Summary: "FizzBuzz from 1 to 100.",
			Run: func(_ context.Context, rt *Runtime) error {
				for _, line := range basics.FizzBuzz(100) {
					rt.println(line)
				}
				return nil
			}},
		{Number: 5, Title: "Prime Number Check", Category: categoryBasics,
			Summary: "Trial division primality test.",
			Run: func(_ context.Context, rt *Runtime) error {
				rt.println(basics.IsPrime(13))
				return nil
			}},
		{Number: 6, Title: "Reverse a String", Category: categoryBasics,
			Summary: "Reverse by runes so multi-byte text survives.",
			Run: func(_ context.Context, rt *Runtime) error {
				rt.println(basics.Reverse("Hello"))
				return nil
			}},
		{Number: 7, Title: "Array Sum", Category: categoryBasics,
			Summary: "Sum a slice of numbers.",
			Run: func(_ context.Context, rt *Runtime) error {
				rt.println(basics.Sum([]int{1, 2, 3, 4}))
				return nil
			}},
		{Number: 8, Title: "JSON Parse/Serialize", Category: categoryBasics,
			Summary: "Encode a struct to JSON and decode it back.",
			Run:     jsonRoundTrip},
		{Number: 36, Title: "Unit Tests", Category: categoryBasics,
			Summary: "Assert that 2 + 3 is 5.",
			Run: func(_ context.Context, rt *Runtime) error {
				const name = "Addition: should return 5 when 2 and 3 are added"
				if got := basics.Add(2, 3); got != 5 {
					rt.printf("FAIL %s (got %d)\n", name, got)
					return fmt.Errorf("assertion failed: add(2, 3) = %d", got)
				}
				rt.printf("ok   %s\n", name)
				return nil
			}},
		{Number: 44, Title: "Generating UUIDs", Category: categoryBasics,
			Summary: "Print a random (version 4) UUID.",
			Run:     printUUID},
		{Number: 53, Title: "UUID Example", Category: categoryBasics,
			Summary: "Print a random (version 4) UUID.",
			Run:     printUUID},
	}
}

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func jsonRoundTrip(_ context.Context, rt *Runtime) error {
	b, err := json.Marshal(person{Name: "Alice", Age: 25})
	if err != nil {
		return err
	}
	rt.println(string(b))

	var back person
	if err := json.Unmarshal(b, &back); err != nil {
		return err
	}
	rt.printf("%+v\n", back)
	return nil
}

func printUUID(_ context.Context, rt *Runtime) error {
	rt.println(uuid.NewString())
	return nil
}
