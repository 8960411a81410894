package project

import (
	"context"

	"github.com/kfsoftware/hlf-gateway-manager/config"
	"github.com/kfsoftware/hlf-gateway-manager/log"
	"github.com/kfsoftware/hlf-gateway-manager/npm"
	"github.com/kfsoftware/hlf-gateway-manager/prompt"
	"github.com/kfsoftware/hlf-gateway-manager/scaffold"
	"github.com/spf13/cobra"
)

const (
	createDesc = `
'create' checks that the scaffolding tools are installed at a suitable
version, installing or reinstalling them when needed, then generates a new
smart contract project from the configured generator`
	createExample = `hlf-gateway-manager project create`
)

type createCmd struct {
	config string
}

func newCreateCMD() *cobra.Command {
	c := &createCmd{}
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a smart contract project",
		Long:    createDesc,
		Example: createExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run()
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.config, "config", "", "path to the manager config file")
	return cmd
}

func (c *createCmd) run() error {
	cfg, err := config.Load(c.config)
	if err != nil {
		return err
	}
	ctx := context.Background()
	runner := npm.ExecRunner{}
	s := scaffold.New(npm.NewClient(runner), runner, prompt.NewTerminalPrompter(), cfg.Generator)
	if err := s.EnsureDependencies(ctx); err != nil {
		log.Errorf("failed to prepare scaffolding tools: %v", err)
		log.Debugf("dependency preflight failed: %+v", err)
		return nil
	}
	if err := s.CreateProject(ctx); err != nil {
		log.Errorf("failed to create project: %v", err)
		log.Debugf("project creation failed: %+v", err)
		return nil
	}
	return nil
}
