// reconcile recalcula el stock de todos los productos desde su historial de movimientos y
// reporta los que estaban desincronizados (por ejemplo tras ediciones manuales de stock).
//
// Uso: go run ./cmd/reconcile [-dry-run] [-workers N]
// Con -dry-run solo reporta; sin él corrige cada producto en su propia transacción.
// Sale con código 2 si encontró diferencias en modo -dry-run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/inventory-movements-api/internal/application/inventory"
	"github.com/jhoicas/inventory-movements-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-movements-api/pkg/config"
	"github.com/jhoicas/inventory-movements-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	dryRun := flag.Bool("dry-run", false, "solo reportar diferencias, sin escribir")
	workers := flag.Int("workers", cfg.Inventory.ReconcileWorkers, "productos conciliados en paralelo")
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "reconcile"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := inventory.NewReconcileUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewMovementRepository(pool),
		postgres.NewProductRepository(pool),
		log.Component("reconcile"),
	)

	report, err := uc.Sweep(ctx, *workers, *dryRun)
	if err != nil {
		log.Error().Err(err).Msg("barrido de conciliación")
		pool.Close()
		os.Exit(1)
	}

	for _, d := range report.Drifted {
		fmt.Printf("%s\tguardado=%d\tderivado=%d\tdiferencia=%+d\n", d.ProductID, d.PreviousStock, d.Stock, d.Drift())
	}
	log.Info().
		Bool("dry_run", *dryRun).
		Int("checked", report.Checked).
		Int("drifted", len(report.Drifted)).
		Msg("conciliación terminada")

	if *dryRun && len(report.Drifted) > 0 {
		pool.Close()
		os.Exit(2)
	}
}
