package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
)

const gelfFacility = "missionmap"

// GELFHandler is a slog.Handler that forwards records to a Graylog
// server as GELF messages over UDP.
type GELFHandler struct {
	writer *gelf.Writer
	host   string
	level  slog.Level

	// fields are pre-rendered WithAttrs attributes, keys already
	// carrying the GELF underscore prefix and any group path.
	fields map[string]any
	prefix string
}

// NewGELFHandler connects to the Graylog server at address and returns a
// handler emitting records at or above the given level.
func NewGELFHandler(address, level string) (*GELFHandler, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("failed to create GELF writer: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &GELFHandler{
		writer: w,
		host:   hostname,
		level:  parseLevel(level),
		fields: map[string]any{},
	}, nil
}

func (h *GELFHandler) clone() *GELFHandler {
	fields := make(map[string]any, len(h.fields))
	for k, v := range h.fields {
		fields[k] = v
	}
	h2 := *h
	h2.fields = fields
	return &h2
}

// Enabled reports whether records at the given level are forwarded.
func (h *GELFHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle renders the record as a GELF message and sends it.
func (h *GELFHandler) Handle(_ context.Context, r slog.Record) error {
	extra := make(map[string]any, len(h.fields)+r.NumAttrs())
	for k, v := range h.fields {
		extra[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		addGELFAttr(extra, h.prefix, a)
		return true
	})

	timestamp := r.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return h.writer.WriteMessage(&gelf.Message{
		Version:  "1.1",
		Host:     h.host,
		Short:    r.Message,
		TimeUnix: float64(timestamp.UnixNano()) / 1e9,
		Level:    syslogLevel(r.Level),
		Facility: gelfFacility,
		Extra:    extra,
	})
}

// WithAttrs returns a new handler with the attributes pre-rendered.
func (h *GELFHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		addGELFAttr(h2.fields, h2.prefix, a)
	}
	return h2
}

// WithGroup returns a new handler qualifying later keys with the group name.
func (h *GELFHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.prefix = h.prefix + name + "."
	return h2
}

// addGELFAttr flattens a into extra under the GELF additional-field
// naming rules, expanding groups into dotted key paths.
func addGELFAttr(extra map[string]any, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if a.Key != "" {
			prefix = prefix + a.Key + "."
		}
		for _, ga := range attrs {
			addGELFAttr(extra, prefix, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	extra["_"+prefix+a.Key] = gelfValue(a.Value)
}

// gelfValue reduces a slog value to something GELF can carry, which is
// strings and numbers only.
func gelfValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v.Any())
	}
}

// syslogLevel maps slog levels onto the syslog severities GELF uses.
func syslogLevel(l slog.Level) int32 {
	switch {
	case l >= slog.LevelError:
		return 3
	case l >= slog.LevelWarn:
		return 4
	case l >= slog.LevelInfo:
		return 6
	default:
		return 7
	}
}
