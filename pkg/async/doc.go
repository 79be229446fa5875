// Package async runs independent reads concurrently and collects their results.
//
// Each call to Go starts one goroutine and returns a Future. Await blocks until
// the goroutine finishes or the caller's context is done:
//
//	subF := async.Go(ctx, func(ctx context.Context) (*subscription.Subscription, error) {
//	    return store.GetSubscription(ctx, ownerID)
//	})
//	countF := async.Go(ctx, func(ctx context.Context) (int64, error) {
//	    return store.CountLive(ctx, ownerID, plan.ResourceTenants)
//	})
//	sub, subErr := subF.Await(ctx)
//	count, countErr := countF.Await(ctx)
package async
