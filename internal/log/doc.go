// Package log provides slog-based logging with automatic masking of
// credentials. guardkit handles a JWT signing secret and mints tokens, so
// log output must never echo either, even at debug level. The MaskHandler
// wraps any slog.Handler and masks attribute values that look like secrets
// or compact JWTs before they reach the underlying handler.
package log
