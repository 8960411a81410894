package utils

import (
	"encoding/pem"
	"fmt"
	"strings"
)

// ValidationError reports file content that does not hold a well formed PEM block.
type ValidationError struct {
	Kind   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
}

// CheckPEM verifies that contents holds at least one parseable PEM block.
// The check is structural only, it does not verify the encoded material.
// kind names the expected content in the error, e.g. "certificate" or
// "private key".
func CheckPEM(contents []byte, kind string) error {
	if strings.TrimSpace(string(contents)) == "" {
		return &ValidationError{Kind: kind, Reason: "file is empty"}
	}
	block, _ := pem.Decode(contents)
	if block == nil {
		return &ValidationError{Kind: kind, Reason: "no PEM data found"}
	}
	return nil
}
