package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue replaces masked attribute values in log output.
const MaskValue = "***REDACTED***"

// secretKeywords flags attribute keys whose values must never be logged.
// Matching is a substring test over the lowercased key, so "token_secret",
// "signing_secret", and "api_key" are all caught.
var secretKeywords = []string{
	"secret",
	"token",
	"password",
	"credential",
	"authorization",
	"api_key",
	"apikey",
	"private",
}

// secretValuePatterns flags values that look like credentials regardless of
// the attribute key.
var secretValuePatterns = []*regexp.Regexp{
	// Compact JWTs (the fixture generator's output shape)
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),

	// Authorization header values
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),

	// PEM key markers
	regexp.MustCompile(`(?i)-----BEGIN.*(PRIVATE|SECRET).*KEY-----`),
}

// MaskHandler wraps an slog.Handler and masks credential-looking attributes.
// It is a handler wrapper rather than a custom logger so it composes with
// any underlying handler and with standard slog APIs.
type MaskHandler struct {
	handler slog.Handler
}

// NewMaskHandler creates a MaskHandler wrapping the given handler.
// A nil handler falls back to slog.Default's handler.
func NewMaskHandler(handler slog.Handler) *MaskHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &MaskHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *MaskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *MaskHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added,
// masked first.
func (h *MaskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &MaskHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *MaskHandler) WithGroup(name string) slog.Handler {
	return &MaskHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursing into groups.
func (h *MaskHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if isSecretKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString && isSecretValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

// isSecretKey reports whether the attribute key indicates a credential.
func isSecretKey(key string) bool {
	lower := strings.ToLower(key)
	for _, keyword := range secretKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// isSecretValue reports whether a value matches a credential pattern.
func isSecretValue(value string) bool {
	for _, pattern := range secretValuePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// NewLogger creates a *slog.Logger with credential masking, writing text
// output to w. Verbose selects slog.LevelDebug; otherwise only warnings
// and errors are emitted.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewMaskHandler(textHandler))
}

// NewJSONLogger creates a *slog.Logger with credential masking and JSON
// output, for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewMaskHandler(jsonHandler))
}
