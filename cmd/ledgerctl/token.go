package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/config"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un JWT de desarrollo para un propietario",
	Example: `  ledgerctl token --owner 7f3c... --tenant "Sewvee Boutique"
  ledgerctl token --owner 7f3c... --exp 1440`,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		user, _ := cmd.Flags().GetString("user")
		tenant, _ := cmd.Flags().GetString("tenant")
		exp, _ := cmd.Flags().GetInt("exp")
		if owner == "" {
			return fmt.Errorf("--owner es obligatorio")
		}
		if user == "" {
			user = uuid.New().String()
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		if exp <= 0 {
			exp = cfg.JWT.Expiration
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, jwt.Identity{UserID: user, OwnerID: owner, TenantName: tenant}, cfg.JWT.Issuer, exp)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("owner", "", "ID del propietario (tenant)")
	tokenCmd.Flags().String("user", "", "ID del usuario (por defecto uno aleatorio)")
	tokenCmd.Flags().String("tenant", "", "Nombre del negocio (prefijo de los IDs visibles)")
	tokenCmd.Flags().Int("exp", 0, "Minutos de validez (por defecto JWT_EXPIRATION_MINUTES)")
}
