// Package mongo connects the toolkit to the MongoDB deployment that backs
// the durable enrollment store.
//
// Connect retries with a short interval so services can start while the
// database is still coming up; Healthcheck plugs into liveness and
// readiness probes. Pool tuning stays on the driver defaults, which work
// well for the single-collection workload this module generates.
//
//	client, err := mongo.Connect(ctx, "mongodb://localhost:27017")
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(context.Background())
package mongo
