// Package database provides the PostgreSQL connection pool for the
// optional trade tick archive.
package database
