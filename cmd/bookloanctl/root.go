package main

import (
	"bookloan/internal/adapters/persistence"
	"bookloan/internal/config"
	"bookloan/internal/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	// flags
	storeDriver string

	// set up by PersistentPreRunE
	cfg     *config.Config
	backend *persistence.Backend
)

func init() {
	RootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "override STORE_DRIVER (mysql, sqlite or mongo)")
}

var RootCmd = cobra.Command{
	Use:           "bookloanctl",
	Short:         "Operate a bookloan deployment",
	Long:          "Operate a bookloan deployment: migrate the store, manage capabilities and mint tokens.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger.Setup(cfg.AppMode)

		if storeDriver != "" {
			cfg.Store = storeDriver
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if backend != nil {
			return backend.Close()
		}
		return nil
	},
}

// openBackend connects to the configured store
func openBackend(migrate bool) (*persistence.Backend, error) {
	var err error
	backend, err = persistence.Open(cfg, migrate)
	return backend, err
}
