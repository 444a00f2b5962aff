package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/catalog"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
)

var seedCatalogCmd = &cobra.Command{
	Use:   "seed-catalog",
	Short: "Siembra el catálogo por defecto de un propietario o añade la categoría comodín",
	Long: `Hace explícitamente lo que la proyección en vivo hace al observar el catálogo:
  - catálogo vacío: escribe el catálogo por defecto en un único lote.
  - sin la categoría "others": la añade.
  - en otro caso no escribe nada.`,
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

		docs, err := store.Query(ctx, entity.CollectionCatalog, document.Where(entity.FieldOwnerID, owner))
		if err != nil {
			return err
		}
		entries := make([]entity.CatalogEntry, 0, len(docs))
		for _, d := range docs {
			entries = append(entries, entity.CatalogEntryFromDocument(d))
		}

		seed := catalog.NewSeedUseCase(store, e.log)
		switch {
		case len(entries) == 0:
			n, err := seed.SeedDefaults(ctx, owner)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catálogo sembrado: %d entradas\n", n)
		case !entity.HasCatchAll(entries):
			if err := seed.EnsureCatchAll(ctx, owner); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "categoría comodín añadida")
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "catálogo completo (%d entradas), nada que hacer\n", len(entries))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCatalogCmd)

	seedCatalogCmd.Flags().String("owner", "", "ID del propietario")
}
