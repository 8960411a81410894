package gateway

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kfsoftware/hlf-gateway-manager/config"
	gatewaystore "github.com/kfsoftware/hlf-gateway-manager/store/gateway"
	"github.com/spf13/cobra"
)

type listCmd struct {
	config string
}

func newListCMD() *cobra.Command {
	c := &listCmd{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered gateways",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run()
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.config, "config", "", "path to the manager config file")
	return cmd
}

func (c *listCmd) run() error {
	cfg, err := config.Load(c.config)
	if err != nil {
		return err
	}
	store, err := gatewaystore.NewFileStore(cfg.RegistryPath())
	if err != nil {
		return err
	}
	gateways, err := store.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCONNECTION PROFILE\tWALLET")
	for _, gw := range gateways {
		fmt.Fprintf(w, "%s\t%s\t%s\n", gw.Name, gw.ConnectionProfilePath, gw.WalletPath)
	}
	return w.Flush()
}
