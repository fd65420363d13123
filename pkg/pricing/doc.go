// Package pricing defines the merchant pricing configuration model returned by
// the PriceBlocs config API and pure helpers that derive display data from it.
//
// The package has no I/O of its own: values arrive through pkg/client (or any
// other source) and the helpers here compute over them. The two main derivations
// are ActivePrice, which resolves the price a buyer would pay for a product
// under the currently selected currency and billing interval, and FeatureTable,
// which assembles an order-preserving feature comparison table for a set of
// products.
//
// Example:
//
//	price, ok := pricing.ActivePrice(product, pricing.Query{
//		Currency: values.Form.Currency,
//		Interval: values.Form.Interval,
//	})
//	if ok {
//		label, _ := pricing.FormatAmount(price, "en")
//	}
package pricing
