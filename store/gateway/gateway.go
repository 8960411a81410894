package gateway

import "github.com/pkg/errors"

// Placeholder values a gateway carries between registration and the moment
// the user finishes configuring it. Registration persists the entry first,
// so a half-configured gateway is discoverable and can be completed later.
const (
	DefaultProfilePath = "<profile not yet configured>"
	DefaultWalletPath  = "<wallet not yet configured>"
)

var (
	ErrGatewayExists   = errors.New("gateway already exists")
	ErrGatewayNotFound = errors.New("gateway not found")
)

// Gateway is a named connection profile plus the wallet backing it.
type Gateway struct {
	Name                  string `yaml:"name"`
	ConnectionProfilePath string `yaml:"connectionProfilePath"`
	WalletPath            string `yaml:"walletPath"`
}

type Store interface {
	Add(gw *Gateway) error
	Update(gw *Gateway) error
	Get(name string) (*Gateway, error)
	List() ([]*Gateway, error)
}
