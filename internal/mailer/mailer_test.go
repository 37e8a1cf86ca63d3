package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"cookbook/internal/config"
)

type fakeSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, msgs ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msgs...)
	return nil
}

func newTestMailer(s sender) *Mailer {
	return &Mailer{from: "youremail@gmail.com", client: s}
}

func TestNew(t *testing.T) {
	m, err := New(config.SMTPConfig{Host: "smtp.gmail.com", Port: 587, User: "youremail@gmail.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "youremail@gmail.com", m.from)

	_, err = New(config.SMTPConfig{})
	assert.Error(t, err)
}

func TestSend(t *testing.T) {
	fs := &fakeSender{}
	m := newTestMailer(fs)

	err := m.Send(context.Background(), Message{
		To:      []string{"recipientemail@gmail.com"},
		Subject: "Hello",
		Text:    "Hello world!",
	})
	require.NoError(t, err)
	require.Len(t, fs.sent, 1)

	var buf bytes.Buffer
	_, err = fs.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "From: <youremail@gmail.com>")
	assert.Contains(t, raw, "To: <recipientemail@gmail.com>")
	assert.Contains(t, raw, "Subject: Hello")
	assert.Contains(t, raw, "Hello world!")
}

func TestSendErrors(t *testing.T) {
	t.Run("no recipient", func(t *testing.T) {
		err := newTestMailer(&fakeSender{}).Send(context.Background(), Message{Subject: "x"})
		assert.ErrorIs(t, err, ErrRecipientRequired)
	})

	t.Run("bad address", func(t *testing.T) {
		err := newTestMailer(&fakeSender{}).Send(context.Background(), Message{To: []string{"not an address"}})
		assert.Error(t, err)
	})

	t.Run("transport failure", func(t *testing.T) {
		boom := errors.New("connection refused")
		err := newTestMailer(&fakeSender{err: boom}).Send(context.Background(), Message{To: []string{"a@example.com"}})
		assert.ErrorIs(t, err, boom)
	})
}
