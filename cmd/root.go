package cmd

import (
	"os"

	"github.com/casebridge-io/casebridge/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	configurationFile string
	cfg               *config.Config
)

func initConfig(filename string) (*config.Config, error) {
	cfg := config.New()
	if err := config.Load(filename, cfg); err != nil {
		return nil, errors.Wrap(err, "could not load configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func loadConfig(cmd *cobra.Command, args []string) (err error) {
	cfg, err = initConfig(configurationFile)
	return err
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "casebridge",
		Short:        "Pega webhook intake and dispatch service",
		Long:         ``,
		SilenceUsage: true,
	}

	cmd.SetOut(os.Stdout)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newMigrationsCmd())
	cmd.AddCommand(newStartCmd())

	return cmd
}

func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
