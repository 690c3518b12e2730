// Command paydemo runs the card payment adapter once against the built-in
// sample record and prints the resulting transcript to stdout.
package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/yourorg/payment-adapter/internal/gateway"
	"github.com/yourorg/payment-adapter/internal/payment"
	"github.com/yourorg/payment-adapter/internal/tokenapi"
)

// run wires one TokenAPI behind one PaymentAdapter and processes the sample
// record. The transcript goes to w:
//
//	Generating Token....
//	Charging $1533.5 using token tok_111202/26123
//	Payment Successful
func run(w io.Writer) error {
	rec := payment.Record{
		CardNumber: "1234567891011112",
		Expiry:     "02/26", // MM/YY
		CVV:        "123",
		Amount:     1533.50,
	}

	tokens := tokenapi.NewTokenAPI(w, nil)
	port := gateway.NewPaymentAdapter(tokens, nil)

	_, err := port.ProcessPayment(context.Background(), rec)
	return err
}

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatalf("payment failed: %v", err)
	}
}
