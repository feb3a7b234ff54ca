// Package postgres contains the PostgreSQL implementations of the store
// interfaces. Stores use raw SQL over database/sql with the pgx stdlib
// driver and translate driver errors into the store package's sentinel
// errors.
package postgres
