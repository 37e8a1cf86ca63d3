// Package recipes is the numbered catalogue of small runnable examples.
// Each recipe is independent and writes its results to Runtime.Out.
package recipes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"cookbook/internal/config"
)

var ErrUnknownRecipe = errors.New("unknown recipe")

// Recipe is one catalogue entry.
type Recipe struct {
	Number   int    `json:"number" yaml:"number"`
	Title    string `json:"title" yaml:"title"`
	Category string `json:"category" yaml:"category"`
	Summary  string `json:"summary" yaml:"summary"`

	Run func(ctx context.Context, rt *Runtime) error `json:"-" yaml:"-"`
}

// Endpoints are the remote URLs network recipes talk to.
type Endpoints struct {
	GitHubUser string
	Posts      string
	ScrapePage string
}

// DefaultEndpoints are the public services the network recipes query.
var DefaultEndpoints = Endpoints{
	GitHubUser: "https://api.github.com/users/octocat",
	Posts:      "https://jsonplaceholder.typicode.com/posts",
	ScrapePage: "http://example.com",
}

// Runtime is what a recipe may touch: its output, configuration, a logger
// and a working directory for any files it creates.
type Runtime struct {
	Out       io.Writer
	Config    *config.AppConfig
	Log       zerolog.Logger
	WorkDir   string
	Endpoints Endpoints
}

func (rt *Runtime) printf(format string, args ...any) {
	fmt.Fprintf(rt.Out, format, args...)
}

func (rt *Runtime) println(args ...any) {
	fmt.Fprintln(rt.Out, args...)
}

// Catalog is an ordered registry of recipes keyed by number.
type Catalog struct {
	mu      sync.RWMutex
	recipes map[int]Recipe
}

func NewCatalog() *Catalog {
	return &Catalog{recipes: make(map[int]Recipe)}
}

// Register adds r. Duplicate numbers and a nil Run are programming errors.
func (c *Catalog) Register(r Recipe) {
	if r.Run == nil {
		panic(fmt.Sprintf("recipes: recipe %d has no Run func", r.Number))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.recipes[r.Number]; dup {
		panic(fmt.Sprintf("recipes: duplicate recipe number %d", r.Number))
	}
	c.recipes[r.Number] = r
}

func (c *Catalog) Get(n int) (Recipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.recipes[n]
	if !ok {
		return Recipe{}, fmt.Errorf("%w: %d", ErrUnknownRecipe, n)
	}
	return r, nil
}

// All returns every recipe in ascending number order.
func (c *Catalog) All() []Recipe {
	c.mu.RLock()
	out := make([]Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, r)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Run executes recipe n. A nil rt runs with every default: output is
// discarded, Config is loaded from the environment and empty endpoints fall
// back to DefaultEndpoints.
func (c *Catalog) Run(ctx context.Context, n int, rt *Runtime) error {
	r, err := c.Get(n)
	if err != nil {
		return err
	}
	if rt == nil {
		rt = &Runtime{}
	}
	if rt.Out == nil {
		rt.Out = io.Discard
	}
	if rt.Config == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("recipe %d: %w", n, err)
		}
		rt.Config = cfg
	}
	if rt.Endpoints == (Endpoints{}) {
		rt.Endpoints = DefaultEndpoints
	}
	if rt.WorkDir == "" {
		rt.WorkDir = "."
	}
	if err := r.Run(ctx, rt); err != nil {
		return fmt.Errorf("recipe %d (%s): %w", r.Number, r.Title, err)
	}
	return nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalogue with every recipe registered.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c := NewCatalog()
		for _, group := range [][]Recipe{
			basicsRecipes(),
			fileRecipes(),
			webRecipes(),
			dataRecipes(),
			networkRecipes(),
			asyncRecipes(),
			realtimeRecipes(),
			securityRecipes(),
			systemRecipes(),
		} {
			for _, r := range group {
				c.Register(r)
			}
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
