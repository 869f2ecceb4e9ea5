// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. Tags and media URLs live in JSONB columns;
// review-time writes lock the card row with SELECT ... FOR UPDATE.
package postgres
