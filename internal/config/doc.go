// Package config loads and validates the server's settings.
//
// Values come from built-in defaults, an optional config.yaml and
// FLASHDECK_-prefixed environment variables, in increasing precedence. The
// result is checked with go-playground/validator before use.
package config
