// Package store defines the persistence interfaces consumed by the
// services, a DBTX abstraction over *sql.DB and *sql.Tx, the store error
// taxonomy, and the RunInTransaction helper. Concrete implementations live
// in internal/platform/postgres.
package store
