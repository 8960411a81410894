package gateway

import (
	"context"

	"github.com/kfsoftware/hlf-gateway-manager/config"
	"github.com/kfsoftware/hlf-gateway-manager/log"
	"github.com/kfsoftware/hlf-gateway-manager/prompt"
	gatewaystore "github.com/kfsoftware/hlf-gateway-manager/store/gateway"
	"github.com/spf13/cobra"
)

const (
	addDesc = `
'add' registers a gateway: it asks for a name, a connection profile and an
identity, stores the profile under the manager's storage directory and
records the gateway in the registry`
	addExample = `hlf-gateway-manager gateway add --config=./config.yaml`
)

type addCmd struct {
	config string
}

func newAddCMD() *cobra.Command {
	c := &addCmd{}
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Register a gateway",
		Long:    addDesc,
		Example: addExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run()
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.config, "config", "", "path to the manager config file")
	return cmd
}

func (c *addCmd) validate() error {
	return nil
}

func (c *addCmd) run() error {
	cfg, err := config.Load(c.config)
	if err != nil {
		return err
	}
	store, err := gatewaystore.NewFileStore(cfg.RegistryPath())
	if err != nil {
		return err
	}
	result, err := gatewaystore.RegisterGateway(context.Background(), gatewaystore.RegisterOpts{
		Store:       store,
		Prompter:    prompt.NewTerminalPrompter(),
		WalletsDir:  cfg.WalletsDir(),
		ProfilesDir: cfg.ProfilesDir(),
	})
	if err != nil {
		// errors stop the workflow but never cross the command boundary;
		// whatever state the registry reached stays in place
		log.Errorf("failed to add gateway: %v", err)
		log.Debugf("gateway registration failed: %+v", err)
		return nil
	}
	if result.Outcome == gatewaystore.OutcomeCompleted {
		log.Infof("successfully added gateway %s", result.Gateway.Name)
	}
	return nil
}
