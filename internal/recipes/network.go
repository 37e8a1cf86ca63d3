package recipes

import (
	"context"
	"encoding/json"
	"time"

	"cookbook/internal/cache"
	"cookbook/internal/fetch"
	"cookbook/internal/mailer"
)

const categoryNetwork = "network"

func networkRecipes() []Recipe {
	return []Recipe{
		{Number: 32, Title: "HTTP Client Requests", Category: categoryNetwork,
			Summary: "GET a JSON document and print it.",
			Run: func(ctx context.Context, rt *Runtime) error {
				return printJSON(ctx, rt, fetch.New(), rt.Endpoints.GitHubUser)
			}},
		{Number: 33, Title: "Fetch with a Response Cache", Category: categoryNetwork,
			Summary: "GET the same JSON twice; the second read is served from cache.",
			Run:     cachedFetch},
		{Number: 35, Title: "Basic Email Sending", Category: categoryNetwork,
			Summary: "Send a plain-text mail through the configured SMTP server.",
			Run:     sendMail},
		{Number: 48, Title: "Simple Web Scraping", Category: categoryNetwork,
			Summary: "Print the <title> of a page.",
			Run: func(ctx context.Context, rt *Runtime) error {
				title, err := fetch.New().Title(ctx, rt.Endpoints.ScrapePage)
				if err != nil {
					return err
				}
				rt.println(title)
				return nil
			}},
		{Number: 51, Title: "Fetching External API Data", Category: categoryNetwork,
			Summary: "List posts from a JSON API.",
			Run:     listPosts},
	}
}

func printJSON(ctx context.Context, rt *Runtime, c *fetch.Client, url string) error {
	var data map[string]any
	if err := c.GetJSON(ctx, url, &data); err != nil {
		return err
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	rt.println(string(b))
	return nil
}

func cachedFetch(ctx context.Context, rt *Runtime) error {
	responses := cache.New(time.Minute, 0)
	c := fetch.New(fetch.WithCache(responses))
	for i := 0; i < 2; i++ {
		if err := printJSON(ctx, rt, c, rt.Endpoints.GitHubUser); err != nil {
			return err
		}
	}
	rt.printf("cached responses: %d\n", responses.Len())
	return nil
}

type post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func listPosts(ctx context.Context, rt *Runtime) error {
	var posts []post
	if err := fetch.New().GetJSON(ctx, rt.Endpoints.Posts, &posts); err != nil {
		return err
	}
	rt.printf("%d posts\n", len(posts))
	for _, p := range posts {
		rt.printf("%d: %s\n", p.ID, p.Title)
	}
	return nil
}

func sendMail(ctx context.Context, rt *Runtime) error {
	smtp := rt.Config.SMTP
	m, err := mailer.New(smtp)
	if err != nil {
		return err
	}
	msg := mailer.Message{
		To:      []string{"recipientemail@gmail.com"},
		Subject: "Hello",
		Text:    "Hello world!",
	}
	if smtp.User == "" {
		// Without credentials only show what would be sent.
		msg.From = "youremail@gmail.com"
		built, err := m.Build(msg)
		if err != nil {
			return err
		}
		rt.println("SMTP_USER is not set; message not sent:")
		_, err = built.WriteTo(rt.Out)
		return err
	}
	if err := m.Send(ctx, msg); err != nil {
		return err
	}
	rt.printf("Email sent via %s:%d\n", smtp.Host, smtp.Port)
	return nil
}
