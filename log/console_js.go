//go:build js && wasm

package log

import (
	"log/slog"
	"syscall/js"

	"github.com/remix-pwa/pwa-client/wireformat"
)

// ConsoleSink writes messages to the global console object.
type ConsoleSink struct {
	console js.Value
}

// NewConsoleSink binds to globalThis.console.
func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{console: js.Global().Get("console")}
}

// Write calls console.debug, info, warn or error depending on the level.
func (s *ConsoleSink) Write(msg wireformat.LogMessageWire) {
	if s.console.IsUndefined() {
		return
	}

	method := "log"
	switch msg.Level {
	case slog.LevelDebug.String():
		method = "debug"
	case slog.LevelInfo.String():
		method = "info"
	case slog.LevelWarn.String():
		method = "warn"
	case slog.LevelError.String():
		method = "error"
	}

	if len(msg.Attrs) == 0 && msg.RequestID == "" {
		s.console.Call(method, msg.Message)
		return
	}

	fields := js.Global().Get("Object").New()
	if msg.RequestID != "" {
		fields.Set("request_id", msg.RequestID)
	}
	for _, a := range msg.Attrs {
		fields.Set(a.Key, a.Value)
	}
	s.console.Call(method, msg.Message, fields)
}

// Install makes a console handler at the given level the slog default.
func Install(level slog.Leveler) {
	slog.SetDefault(slog.New(NewConsoleHandler(NewConsoleSink(), &slog.HandlerOptions{Level: level})))
}
