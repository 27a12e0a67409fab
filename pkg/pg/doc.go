// Package pg connects the toolkit to the PostgreSQL database that backs
// the durable enrollment store.
//
// Connect retries with linear backoff so services can start while the
// database is still coming up; Healthcheck plugs into liveness and
// readiness probes. Schema management lives with the store itself, see
// the enrollment package.
//
//	pool, err := pg.Connect(ctx, "postgres://localhost:5432/app")
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
package pg
