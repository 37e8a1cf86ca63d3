package recipes

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"cookbook/internal/chat"
)

const categoryRealtime = "realtime"

func realtimeRecipes() []Recipe {
	return []Recipe{
		{Number: 23, Title: "Socket Connection Events", Category: categoryRealtime,
			Summary: "Log when a websocket client connects and disconnects.",
			Run: func(ctx context.Context, rt *Runtime) error {
				return chatSession(ctx, rt, nil)
			}},
		{Number: 45, Title: "WebSocket Chat Server", Category: categoryRealtime,
			Summary: "Welcome a client, log its message and relay it to others.",
			Run: func(ctx context.Context, rt *Runtime) error {
				return chatSession(ctx, rt, []string{"Hello, chat!"})
			}},
	}
}

// chatSession starts a hub on a loopback listener, connects two clients and
// has the first send msgs. The second client prints what it receives.
func chatSession(ctx context.Context, rt *Runtime, msgs []string) error {
	// hub goroutines log while this one prints
	out := zerolog.SyncWriter(rt.Out)
	printf := func(format string, args ...any) { fmt.Fprintf(out, format, args...) }

	hub := chat.NewHub(consoleLog(out, zerolog.InfoLevel))
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	dial := func() (*websocket.Conn, error) {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
		if err != nil {
			return nil, err
		}
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, welcome, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			return nil, err
		}
		printf("client got: %s\n", welcome)
		return conn, nil
	}

	sender, err := dial()
	if err != nil {
		return err
	}
	defer sender.Close()
	if len(msgs) == 0 {
		return closeAndWait(ctx, sender, hub)
	}

	listener, err := dial()
	if err != nil {
		return err
	}
	defer listener.Close()

	for _, m := range msgs {
		if err := sender.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
			return err
		}
		_, got, err := listener.ReadMessage()
		if err != nil {
			return err
		}
		printf("other client got: %s\n", got)
	}
	if err := closeAndWait(ctx, listener, hub); err != nil {
		return err
	}
	return closeAndWait(ctx, sender, hub)
}

// closeAndWait closes conn cleanly and waits until the hub has dropped it,
// so the disconnect log line is written before returning.
func closeAndWait(ctx context.Context, conn *websocket.Conn, hub *chat.Hub) error {
	before := hub.Count()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	conn.Close()

	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	timeout := time.After(5 * time.Second)
	for hub.Count() >= before {
		select {
		case <-tick.C:
		case <-timeout:
			return fmt.Errorf("client still registered after close")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
