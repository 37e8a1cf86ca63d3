package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const permission = 0o664

// TimestampField is the key every log line carries its time under.
const TimestampField = "ts"

func init() {
	zerolog.TimestampFieldName = TimestampField
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// New returns a JSON logger writing one object per line to w.
// Timestamps are rendered in loc; an unparseable level falls back to info.
func New(w io.Writer, level string, loc *time.Location) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if loc == nil {
		loc = time.UTC
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).Hook(timestampHook{loc: loc})
}

// File is an append-only log file.
type File struct {
	f      *os.File
	Logger zerolog.Logger
}

// NewFile opens path in append mode (creating it if needed) and returns a
// logger that serializes concurrent writes to it.
func NewFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
	if err != nil {
		return nil, err
	}
	return &File{
		f:      f,
		Logger: zerolog.New(zerolog.SyncWriter(f)).Hook(timestampHook{loc: time.Local}),
	}, nil
}

// Close closes the underlying file.
func (l *File) Close() error {
	return l.f.Close()
}

// timestampHook stamps TimestampField in loc. zerolog.TimestampFunc is
// package-global, so the zone is carried per logger instead.
type timestampHook struct {
	loc *time.Location
}

func (h timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(TimestampField, time.Now().In(h.loc).Format(zerolog.TimeFieldFormat))
}
