// Package log routes slog records to the JavaScript console of the page
// hosting the module.
package log

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/remix-pwa/pwa-client/wireformat"
)

// Sink receives finished log messages.
type Sink interface {
	Write(msg wireformat.LogMessageWire)
}

// ConsoleHandler implements slog.Handler on top of a Sink.
type ConsoleHandler struct {
	sink   Sink
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*ConsoleHandler)(nil)

// NewConsoleHandler creates a handler writing to sink. A nil opts logs at
// info level and above.
func NewConsoleHandler(sink Sink, opts *slog.HandlerOptions) *ConsoleHandler {
	h := &ConsoleHandler{sink: sink, level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle converts the record to its wire form and hands it to the sink.
func (h *ConsoleHandler) Handle(ctx context.Context, record slog.Record) error {
	logMsg := wireformat.LogMessageWire{
		Level:     record.Level.String(),
		Message:   record.Message,
		Timestamp: record.Time,
	}
	if id, ok := RequestIDFromContext(ctx); ok {
		logMsg.RequestID = id
	}

	for _, attr := range h.attrs {
		logMsg.Attrs = append(logMsg.Attrs, toLogAttrWire(attr))
	}
	prefix := h.groupPrefix()
	record.Attrs(func(attr slog.Attr) bool {
		attr.Key = prefix + attr.Key
		logMsg.Attrs = append(logMsg.Attrs, toLogAttrWire(attr))
		return true
	})

	h.sink.Write(logMsg)
	return nil
}

// WithAttrs returns a handler that includes the given attributes.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := h.clone()
	prefix := h.groupPrefix()
	for _, a := range attrs {
		a.Key = prefix + a.Key
		clone.attrs = append(clone.attrs, a)
	}
	return clone
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	return &ConsoleHandler{
		sink:   h.sink,
		level:  h.level,
		attrs:  slices.Clone(h.attrs),
		groups: slices.Clone(h.groups),
	}
}

func (h *ConsoleHandler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

// toLogAttrWire converts a slog.Attr to LogAttrWire.
func toLogAttrWire(attr slog.Attr) wireformat.LogAttrWire {
	wire := wireformat.LogAttrWire{
		Key: attr.Key,
	}
	attr.Value = attr.Value.Resolve()

	switch attr.Value.Kind() {
	case slog.KindString:
		wire.Type = "string"
		wire.Value = attr.Value.String()
	case slog.KindInt64:
		wire.Type = "int64"
		wire.Value = fmt.Sprintf("%d", attr.Value.Int64())
	case slog.KindUint64:
		wire.Type = "uint64"
		wire.Value = fmt.Sprintf("%d", attr.Value.Uint64())
	case slog.KindBool:
		wire.Type = "bool"
		wire.Value = fmt.Sprintf("%t", attr.Value.Bool())
	case slog.KindFloat64:
		wire.Type = "float64"
		wire.Value = fmt.Sprintf("%g", attr.Value.Float64())
	case slog.KindTime:
		wire.Type = "time"
		wire.Value = attr.Value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		wire.Type = "duration"
		wire.Value = attr.Value.Duration().String()
	case slog.KindGroup:
		wire.Type = "group"
		parts := make([]string, 0, len(attr.Value.Group()))
		for _, a := range attr.Value.Group() {
			parts = append(parts, a.Key+"="+toLogAttrWire(a).Value)
		}
		wire.Value = strings.Join(parts, " ")
	default:
		v := attr.Value.Any()
		switch {
		case v == nil:
			wire.Type = "any"
			wire.Value = "<nil>"
		case isError(v):
			wire.Type = "error"
			wire.Value = v.(error).Error()
		default:
			if data, err := json.Marshal(v); err == nil {
				wire.Type = "json"
				wire.Value = string(data)
			} else {
				wire.Type = "any"
				wire.Value = fmt.Sprintf("%v", v)
			}
		}
	}
	return wire
}

func isError(v any) bool {
	_, ok := v.(error)
	return ok
}

// ParseLevel maps "debug", "info", "warn" or "error" onto a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

type requestIDKey struct{}

// WithRequestID attaches a request id for log correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id attached by WithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
