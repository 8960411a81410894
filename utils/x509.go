package utils

import (
	"crypto/x509"
	"encoding/pem"

	"github.com/pkg/errors"
)

func ParseX509Certificate(contents []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(contents)
	if block == nil {
		return nil, errors.New("no PEM data found")
	}
	crt, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	return crt, nil
}
