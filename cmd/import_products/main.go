// import_products carga un catálogo de productos desde CSV.
//
// Columnas (con cabecera): name,sku,category,price,stock,description
// Cada fila pasa por el caso de uso de creación, así un stock > 0 queda registrado como
// movimiento inicial. Los SKU ya existentes se omiten.
//
// Uso: go run ./cmd/import_products [-latin1] productos.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/inventory-movements-api/internal/application/usecase"
	"github.com/jhoicas/inventory-movements-api/internal/domain"
	"github.com/jhoicas/inventory-movements-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-movements-api/pkg/config"
	"github.com/jhoicas/inventory-movements-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1 (exportado desde Excel)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: import_products [-latin1] archivo.csv")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "import_products"})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := ReadCatalog(f, *latin1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productUC := usecase.NewProductUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewProductRepository(pool),
		postgres.NewMovementRepository(pool),
		nil,
		usecase.ProductPolicy{
			DeletePolicy:    cfg.Inventory.ProductDeletePolicy,
			StockEditPolicy: cfg.Inventory.StockEditPolicy,
		},
		log.Component("import"),
	)

	var created, skipped, failed int
	for _, r := range rows {
		_, err := productUC.Create(ctx, r.Request)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		default:
			failed++
			log.Error().Err(err).Int("line", r.Line).Str("sku", r.Request.SKU).Msg("fila rechazada")
		}
	}
	log.Info().Int("created", created).Int("skipped", skipped).Int("failed", failed).Msg("importación terminada")
	if failed > 0 {
		pool.Close()
		os.Exit(1)
	}
}
