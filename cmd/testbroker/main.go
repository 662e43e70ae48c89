// Command testbroker issues a signed test login token for manual
// testing, together with the PEM certificate that anchors it.
// Usage: go run ./cmd/testbroker -audience app.example
package main

import (
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/djgunni86/icelandauth/internal/core/domain"
	"github.com/djgunni86/icelandauth/testfixtures/broker"
)

func main() {
	audience := flag.String("audience", "app.example", "Audience restriction to assert")
	destination := flag.String("destination", "", "Destination URL to declare on the response")
	issuerName := flag.String("issuer-name", domain.DefaultTrustedIssuerName, "Issuer CN on the signing certificate")
	issuerSerial := flag.String("issuer-serial", domain.DefaultTrustedIssuerSerial, "Issuer SERIALNUMBER on the signing certificate")
	signerSerial := flag.String("signer-serial", domain.DefaultTrustedSignerSerial, "Subject SERIALNUMBER on the signing certificate")
	certOut := flag.String("cert-out", "", "Write the signing certificate PEM to this file")
	flag.Parse()

	b, err := broker.NewStandalone(*issuerName, *issuerSerial, *signerSerial)
	if err != nil {
		log.Fatalf("Failed to create broker: %v", err)
	}

	token, err := b.IssueToken(broker.TokenSpec{
		Audience:    *audience,
		Destination: *destination,
	})
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	if *certOut != "" {
		block := &pem.Block{Type: "CERTIFICATE", Bytes: b.Certificate().Raw}
		if err := os.WriteFile(*certOut, pem.EncodeToMemory(block), 0o644); err != nil {
			log.Fatalf("Failed to write certificate: %v", err)
		}
		log.Printf("Wrote signing certificate to %s", *certOut)
	}

	fmt.Println(token)
}
