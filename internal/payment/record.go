// Package payment holds the domain data carried through the gateway.
package payment

// Record bundles the card details and amount for a single charge attempt.
// Fields are carried verbatim: no format checks are applied to the card
// number, expiry, or CVV, and the amount has no attached currency unit.
// A Record is constructed once, read by the adapter exactly once, and never
// mutated.
type Record struct {
	CardNumber string // full card number, any length
	Expiry     string // "MM/YY" textual form
	CVV        string
	Amount     float64
}
