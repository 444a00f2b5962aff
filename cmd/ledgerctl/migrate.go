package main

import (
	"github.com/spf13/cobra"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Crea la tabla de documentos y sus índices (idempotente)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		pool, _, closeFn, err := e.openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		if err := postgres.EnsureSchema(cmd.Context(), pool); err != nil {
			return err
		}
		e.log.Info().Str("db", e.cfg.DB.DBName).Msg("esquema listo")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
