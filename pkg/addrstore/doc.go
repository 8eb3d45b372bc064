// Package addrstore persists address records found by a vanity address
// generator into a MongoDB collection.
//
// A Gateway is created by Open, which runs a fixed sequence of checks and
// fails fast on the first one that does not pass:
//
//  1. parse the connection URI (ErrConfig)
//  2. build a client with a five second server selection timeout and
//     retryable writes (ErrConnection)
//  3. ping the admin database (ErrConnection)
//  4. resolve database and collection names (ErrResolution)
//  5. insert and delete a sentinel document with _id "test" (ErrPermission)
//
// Each failing step releases what earlier steps acquired. Save then inserts one
// document per call:
//
//	{ "address": ..., "private_key": ..., "pattern": ..., "created_at": "YYYY-MM-DD HH:MM:SS" }
//
// private_key is stored as "" when absent, and created_at comes from the local
// clock at save time. Close is idempotent and safe on a nil Gateway.
//
// # Runtime
//
// Gateways register with a Runtime, the process-scoped owner of shared store
// state. Runtime.Shutdown closes any gateway still open and refuses new ones,
// so a program calls it once on exit:
//
//	defer addrstore.DefaultRuntime().Shutdown(context.Background())
//
//	gw, err := addrstore.Open(ctx, uri, "vanity", "addresses",
//	    addrstore.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	defer gw.Close(context.Background())
//
//	if err := gw.Save(ctx, "1BoatSLRHtKNngkdXEeobR76b53LETtpyT", "", "1Boat"); err != nil {
//	    return err
//	}
//
// # Errors
//
// All errors wrap one of the package sentinels together with the driver's
// error, so both errors.Is(err, addrstore.ErrWrite) and the original message
// are available.
package addrstore
