// ledgerctl tareas de operación sobre el almacén PostgreSQL del libro: crear el esquema,
// emitir tokens de desarrollo, sembrar el catálogo de un propietario y auditar agregados.
//
// Uso: go run ./cmd/ledgerctl <comando> [flags]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/infrastructure/postgres"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/config"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "ledgerctl",
	Short:         "Operación del libro de clientes, pedidos y pagos",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ledgerctl: %v\n", err)
		os.Exit(1)
	}
}

// env configuración y logger comunes a todos los comandos.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	return &env{cfg: cfg, log: log}, nil
}

// openStore abre el pool y el almacén de documentos; close libera ambos.
func (e *env) openStore(ctx context.Context) (*pgxpool.Pool, *postgres.DocumentStore, func(), error) {
	if e.cfg.Store.Backend != config.StoreBackendPostgres {
		return nil, nil, nil, fmt.Errorf("ledgerctl sólo opera sobre STORE_BACKEND=postgres (actual: %s)", e.cfg.Store.Backend)
	}
	pool, err := postgres.NewPool(ctx, e.cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}
	store := postgres.NewDocumentStore(pool, e.cfg.Store.NotifyChannel, e.log)
	return pool, store, func() {
		store.Close()
		pool.Close()
	}, nil
}
