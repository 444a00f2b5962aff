package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/ledger"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Compara advance, balance y agregados de clientes con los pagos vivos",
	Long: `Recalcula, para un propietario, el advance de cada pedido a partir de sus pagos y los
agregados de cada cliente, y lista los campos guardados que no coinciden. No escribe nada.
Sale con código 1 si encuentra diferencias.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		if owner == "" {
			return fmt.Errorf("--owner es obligatorio")
		}
		e, err := loadEnv()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		_, store, closeFn, err := e.openStore(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		drifts, err := ledger.NewAuditUseCase(store).Audit(ctx, owner)
		if err != nil {
			return err
		}
		for _, d := range drifts {
			fmt.Fprintln(cmd.OutOrStdout(), d.String())
		}
		if len(drifts) > 0 {
			return fmt.Errorf("%d diferencias encontradas", len(drifts))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "sin diferencias")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().String("owner", "", "ID del propietario")
}
