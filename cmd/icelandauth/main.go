// Command icelandauth verifies a single eID broker login token from the
// command line. Operators use it to audit why a login failed.
// Usage: icelandauth -config policy.json [-token token.b64] [-ip 192.0.2.10]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/djgunni86/icelandauth"
)

// resultView is the CLI's JSON rendering of a LoginResult.
type resultView struct {
	Valid                bool                    `json:"valid"`
	SignatureOk          bool                    `json:"signature_ok"`
	CertOk               bool                    `json:"cert_ok"`
	AudienceOk           bool                    `json:"audience_ok"`
	DestinationOk        bool                    `json:"destination_ok"`
	TimeOk               bool                    `json:"time_ok"`
	IPOk                 bool                    `json:"ip_ok"`
	AuthMethodOk         bool                    `json:"auth_method_ok"`
	AuthIDOk             bool                    `json:"auth_id_ok"`
	DestinationSSNOk     bool                    `json:"destination_ssn_ok"`
	UserSSN              string                  `json:"user_ssn,omitempty"`
	Name                 string                  `json:"name,omitempty"`
	AuthenticationMethod string                  `json:"authentication_method,omitempty"`
	Delegation           *icelandauth.Delegation `json:"delegation,omitempty"`
	Attributes           icelandauth.Attributes  `json:"attributes,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "Path to the policy JSON file (required)")
	tokenPath := flag.String("token", "", "Path to the token file; stdin when omitted")
	observedIP := flag.String("ip", "", "Observed client IP to check against the token")
	verbose := flag.Bool("v", false, "Log every verification diagnostic")
	flag.Parse()

	if *configPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	settings, err := icelandauth.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()
	}

	verifier, err := icelandauth.New(*settings, icelandauth.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to construct verifier: %v", err)
	}

	token, err := readToken(*tokenPath)
	if err != nil {
		log.Fatalf("Failed to read token: %v", err)
	}

	result := verifier.Verify(token, *observedIP)

	view := resultView{
		Valid:                result.Valid(),
		SignatureOk:          result.SignatureOk,
		CertOk:               result.CertOk,
		AudienceOk:           result.AudienceOk,
		DestinationOk:        result.DestinationOk,
		TimeOk:               result.TimeOk,
		IPOk:                 result.IPOk,
		AuthMethodOk:         result.AuthMethodOk,
		AuthIDOk:             result.AuthIDOk,
		DestinationSSNOk:     result.DestinationSSNOk,
		UserSSN:              result.UserSSN,
		Name:                 result.Name,
		AuthenticationMethod: result.AuthenticationMethod,
		Attributes:           result.Attributes,
	}
	if !result.Delegation.Empty() {
		view.Delegation = &result.Delegation
	}

	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render result: %v", err)
	}
	fmt.Println(string(out))

	if !result.Valid() {
		os.Exit(1)
	}
}

// readToken loads the token from a file or stdin, trimming whitespace.
func readToken(path string) (string, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
