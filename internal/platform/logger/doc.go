// Package logger provides structured logging built on log/slog.
//
// Setup installs a JSON (or text) handler as the process default. Request
// handlers attach a request-scoped logger with WithLogger; downstream code
// retrieves it with FromContext or FromContextOrDefault so every line carries
// the request's correlation fields.
package logger
