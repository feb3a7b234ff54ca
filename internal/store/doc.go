// Package store defines the persistence interfaces the services depend on,
// together with the sentinel errors every backend must return. Keeping the
// interfaces here, away from the Postgres implementation, lets the service
// layer and its tests work against mocks without importing a driver.
package store
