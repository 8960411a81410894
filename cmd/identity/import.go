package identity

import (
	"os"

	"github.com/kfsoftware/hlf-gateway-manager/log"
	"github.com/kfsoftware/hlf-gateway-manager/store/wallet"
	"github.com/kfsoftware/hlf-gateway-manager/utils"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const importExample = `hlf-gateway-manager identity import --wallet=~/.hlf-gateway-manager/wallets/mygw --name=admin --cert=./admin.pem --key=./admin.key --mspid=Org1MSP`

type importCmd struct {
	walletPath string
	name       string
	certPath   string
	keyPath    string
	mspID      string
}

func newImportCMD() *cobra.Command {
	c := &importCmd{}
	cmd := &cobra.Command{
		Use:     "import",
		Short:   "Import an identity into a wallet",
		Example: importExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run()
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.walletPath, "wallet", "", "path to the wallet directory")
	f.StringVar(&c.name, "name", "", "name for the identity")
	f.StringVar(&c.certPath, "cert", "", "path to the PEM encoded certificate")
	f.StringVar(&c.keyPath, "key", "", "path to the PEM encoded private key")
	f.StringVar(&c.mspID, "mspid", "", "MSPID of the organization")
	return cmd
}

func (c *importCmd) validate() error {
	if c.walletPath == "" {
		return errors.New("--wallet is required")
	}
	if c.name == "" {
		return errors.New("--name is required")
	}
	if c.certPath == "" {
		return errors.New("--cert is required")
	}
	if c.keyPath == "" {
		return errors.New("--key is required")
	}
	if c.mspID == "" {
		return errors.New("--mspid is required")
	}
	return nil
}

func (c *importCmd) run() error {
	walletPath, err := homedir.Expand(c.walletPath)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve wallet path %s", c.walletPath)
	}
	cert, err := os.ReadFile(c.certPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read certificate %s", c.certPath)
	}
	if err := utils.CheckPEM(cert, "certificate"); err != nil {
		return err
	}
	key, err := os.ReadFile(c.keyPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read private key %s", c.keyPath)
	}
	if err := utils.CheckPEM(key, "private key"); err != nil {
		return err
	}
	if crt, err := utils.ParseX509Certificate(cert); err == nil {
		log.Infof("importing certificate for subject %s", crt.Subject.CommonName)
	} else {
		log.Debugf("certificate did not parse as x509: %v", err)
	}
	w, err := wallet.Open(walletPath)
	if err != nil {
		return err
	}
	err = w.ImportIdentity(wallet.Identity{
		Name:        c.name,
		Certificate: string(cert),
		PrivateKey:  string(key),
		MSPID:       c.mspID,
	})
	if err != nil {
		return err
	}
	log.Infof("imported identity %s into wallet %s", c.name, w.Path())
	return nil
}
