// Package session owns the client-side state of an embedded pricing surface:
// the fetched merchant configuration, the loading/submitting flags, the last
// error, and the two redirect actions (checkout, billing portal).
//
// A Session is the single owner of all mutable state. It fetches the pricing
// configuration on construction, re-fetches on demand, and once the fetched
// configuration carries a client key it initializes the payment capability
// that performs the checkout redirect. Until then the actions are safe to call
// and fail fast with a log line instead of a panic or a dangling request.
//
// Action failures are never returned to the caller: the session is the error
// boundary, and every fetch or action failure is captured into the published
// snapshot where hosts observe it via Snapshot or Subscribe.
//
// Example:
//
//	sess, err := session.New(ctx, session.Config{
//		APIKey:  os.Getenv("PRICEBLOCS_API_KEY"),
//		PageURL: "https://example.com/pricing",
//	}, session.WithNavigator(navigate))
//	if err != nil {
//		return err
//	}
//	defer sess.Close()
//
//	sess.Checkout(ctx, client.PriceInput("price_123"))
//	if snap := sess.Snapshot(); snap.Err != nil {
//		log.Println(snap.Err)
//	}
package session
