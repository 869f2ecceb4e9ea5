// Package api exposes the review and deck workflows over JSON HTTP.
// Handlers read the authenticated user from the request context, validate
// input, call the services and translate their errors into status codes
// with client-safe messages.
package api
