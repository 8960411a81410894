package gateway

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/kfsoftware/hlf-gateway-manager/log"
	"github.com/kfsoftware/hlf-gateway-manager/prompt"
	"github.com/kfsoftware/hlf-gateway-manager/store/wallet"
	"github.com/kfsoftware/hlf-gateway-manager/utils"
	"github.com/pkg/errors"
)

// Identity provisioning methods offered during registration.
const (
	MethodCertKey        = "Certificate and private key files"
	MethodExistingWallet = "Existing wallet directory"
)

type Outcome int

const (
	OutcomeCancelled Outcome = iota
	OutcomeCompleted
)

type RegisterOpts struct {
	Store       Store
	Prompter    prompt.Prompter
	WalletsDir  string
	ProfilesDir string
}

type RegisterResult struct {
	Outcome Outcome
	Gateway *Gateway
}

func cancelled() *RegisterResult {
	return &RegisterResult{Outcome: OutcomeCancelled}
}

// RegisterGateway walks the user through registering a gateway: name,
// connection profile, then an identity for its wallet. The entry is
// persisted as soon as the name is chosen, before the profile and wallet
// are configured, so an interrupted registration leaves a discoverable
// entry the user can finish later. Dismissed prompts cancel from that
// point on without rolling anything back.
func RegisterGateway(ctx context.Context, opts RegisterOpts) (*RegisterResult, error) {
	name, err := opts.Prompter.Input("Enter a name for the gateway")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return cancelled(), nil
	}

	gw := &Gateway{
		Name:                  name,
		ConnectionProfilePath: DefaultProfilePath,
		WalletPath:            DefaultWalletPath,
	}
	if err := opts.Store.Add(gw); err != nil {
		return nil, err
	}
	log.Infof("registered gateway %s", name)

	profilePath, err := opts.Prompter.File("Enter the path to a connection profile")
	if err != nil {
		return nil, err
	}
	if profilePath == "" {
		return cancelled(), nil
	}
	managedPath, err := copyConnectionProfile(profilePath, opts.ProfilesDir, name)
	if err != nil {
		return nil, err
	}
	gw.ConnectionProfilePath = managedPath
	if err := opts.Store.Update(gw); err != nil {
		return nil, err
	}

	method, err := opts.Prompter.Select(
		"Choose a method for providing an identity",
		[]string{MethodCertKey, MethodExistingWallet},
	)
	if err != nil {
		return nil, err
	}
	switch method {
	case "":
		return cancelled(), nil
	case MethodCertKey:
		return registerWithCertKey(ctx, opts, gw)
	case MethodExistingWallet:
		return registerWithExistingWallet(ctx, opts, gw)
	default:
		return nil, errors.Errorf("unknown identity method %q", method)
	}
}

func registerWithCertKey(_ context.Context, opts RegisterOpts, gw *Gateway) (*RegisterResult, error) {
	identityName, err := opts.Prompter.Input("Enter a name for the identity")
	if err != nil {
		return nil, err
	}
	if identityName == "" {
		return cancelled(), nil
	}

	certPath, err := opts.Prompter.File("Enter the path to the certificate")
	if err != nil {
		return nil, err
	}
	if certPath == "" {
		return cancelled(), nil
	}
	cert, err := os.ReadFile(certPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read certificate %s", certPath)
	}
	if err := utils.CheckPEM(cert, "certificate"); err != nil {
		return nil, err
	}

	keyPath, err := opts.Prompter.File("Enter the path to the private key")
	if err != nil {
		return nil, err
	}
	if keyPath == "" {
		return cancelled(), nil
	}
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read private key %s", keyPath)
	}
	if err := utils.CheckPEM(key, "private key"); err != nil {
		return nil, err
	}

	w, err := wallet.CreateLocalWallet(opts.WalletsDir, gw.Name)
	if err != nil {
		return nil, err
	}

	mspID, err := opts.Prompter.Input("Enter the MSPID of the organization")
	if err != nil {
		return nil, err
	}
	if mspID == "" {
		return cancelled(), nil
	}

	err = w.ImportIdentity(wallet.Identity{
		Name:        identityName,
		Certificate: string(cert),
		PrivateKey:  string(key),
		MSPID:       mspID,
	})
	if err != nil {
		return nil, err
	}
	gw.WalletPath = w.Path()
	if err := opts.Store.Update(gw); err != nil {
		return nil, err
	}
	log.Infof("gateway %s configured with identity %s", gw.Name, identityName)
	return &RegisterResult{Outcome: OutcomeCompleted, Gateway: gw}, nil
}

func registerWithExistingWallet(_ context.Context, opts RegisterOpts, gw *Gateway) (*RegisterResult, error) {
	walletPath, err := opts.Prompter.File("Enter the path to the wallet directory")
	if err != nil {
		return nil, err
	}
	if walletPath == "" {
		return cancelled(), nil
	}
	gw.WalletPath = walletPath
	if err := opts.Store.Update(gw); err != nil {
		return nil, err
	}
	log.Infof("gateway %s configured with wallet %s", gw.Name, walletPath)
	return &RegisterResult{Outcome: OutcomeCompleted, Gateway: gw}, nil
}

// copyConnectionProfile copies the chosen profile into the managed profiles
// directory, scoped to the gateway name. The original file stays untouched.
func copyConnectionProfile(sourcePath string, profilesDir string, gatewayName string) (string, error) {
	source, err := os.Open(sourcePath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open connection profile %s", sourcePath)
	}
	defer source.Close()

	destDir := filepath.Join(profilesDir, gatewayName)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create profile directory for gateway %s", gatewayName)
	}
	ext := filepath.Ext(sourcePath)
	if ext == "" {
		ext = ".json"
	}
	destPath := filepath.Join(destDir, "connection"+ext)
	dest, err := os.Create(destPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create managed profile %s", destPath)
	}
	defer dest.Close()
	if _, err := io.Copy(dest, source); err != nil {
		return "", errors.Wrapf(err, "failed to copy connection profile to %s", destPath)
	}
	return destPath, nil
}
