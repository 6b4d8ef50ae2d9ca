package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventory-movements-api/internal/application/dto"
	"github.com/jhoicas/inventory-movements-api/internal/application/inventory"
	"github.com/jhoicas/inventory-movements-api/internal/domain"
	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
	"github.com/jhoicas/inventory-movements-api/pkg/config"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductPolicy políticas configurables de borrado y edición manual de stock.
type ProductPolicy struct {
	DeletePolicy    string // config.DeletePolicyRestrict | config.DeletePolicyCascade
	StockEditPolicy string // config.StockEditOverride | config.StockEditIgnore
}

// ProductUseCase casos de uso CRUD para productos. El stock inicial se registra como movimiento.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
	movRepo  repository.MovementRepository
	pdf      inventory.HistoryPDFGenerator
	policy   ProductPolicy
	log      zerolog.Logger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso. pdf puede ser nil (exportación deshabilitada).
func NewProductUseCase(
	txRunner inventory.TxRunner,
	repo repository.ProductRepository,
	movRepo repository.MovementRepository,
	pdf inventory.HistoryPDFGenerator,
	policy ProductPolicy,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner: txRunner,
		repo:     repo,
		movRepo:  movRepo,
		pdf:      pdf,
		policy:   policy,
		log:      log,
		now:      time.Now,
	}
}

// Create crea un producto. Si el stock inicial es > 0 registra en la misma transacción un
// movimiento "initial" fechado hoy por esa cantidad.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return nil, fmt.Errorf("%w: name y sku son requeridos", domain.ErrInvalidInput)
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	stock := int(in.Stock)
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}

	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		SKU:         sku,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Price:       in.Price.Decimal,
		Stock:       stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		existing, err := productRepo.GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if stock == 0 {
			return nil
		}
		return movRepo.Create(ctx, &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      entity.MovementTypeInitial,
			Quantity:  stock,
			Date:      calendarDay(now),
			Note:      entity.InitialStockNote,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", sku).Int("stock", stock).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if err := inventory.ValidateID(id); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista todos los productos con su stock.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Options devuelve los pares id/nombre para los formularios de movimientos.
func (uc *ProductUseCase) Options(ctx context.Context) ([]dto.ProductOptionResponse, error) {
	list, err := uc.repo.ListOptions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductOptionResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.ProductOptionResponse{ID: o.ID, Name: o.Name})
	}
	return out, nil
}

// Update actualiza los campos enviados. El stock se escribe o se descarta según StockEditPolicy.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := inventory.ValidateID(id); err != nil {
		return nil, err
	}
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := uc.applyUpdate(product, in); err != nil {
			return err
		}
		if in.SKU != nil {
			other, err := productRepo.GetBySKU(ctx, product.SKU)
			if err != nil {
				return err
			}
			if other != nil && other.ID != product.ID {
				return domain.ErrDuplicate
			}
		}
		product.UpdatedAt = uc.now()
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

func (uc *ProductUseCase) applyUpdate(product *entity.Product, in dto.UpdateProductRequest) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return fmt.Errorf("%w: sku no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.SKU = sku
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Price = in.Price.Decimal
	}
	if in.Stock != nil && uc.policy.StockEditPolicy != config.StockEditIgnore {
		if *in.Stock < 0 {
			return fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
		}
		if int(*in.Stock) != product.Stock {
			uc.log.Warn().
				Str("product_id", product.ID).
				Int("previous_stock", product.Stock).
				Int("stock", int(*in.Stock)).
				Msg("stock editado manualmente")
		}
		product.Stock = int(*in.Stock)
	}
	return nil
}

// Delete elimina un producto. Con DeletePolicy restrict devuelve ErrConflict mientras tenga
// movimientos; con cascade borra sus movimientos en la misma transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := inventory.ValidateID(id); err != nil {
		return err
	}
	var removed int64
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if uc.policy.DeletePolicy == config.DeletePolicyCascade {
			if removed, err = movRepo.DeleteByProduct(ctx, id); err != nil {
				return err
			}
		} else {
			n, err := movRepo.CountByProduct(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: el producto tiene %d movimientos", domain.ErrConflict, n)
			}
		}
		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Int64("movements_removed", removed).Msg("producto eliminado")
	return nil
}

// History devuelve el producto y todos sus movimientos, más recientes primero.
func (uc *ProductUseCase) History(ctx context.Context, id string) (*dto.MovementHistoryResponse, error) {
	product, movements, err := uc.history(ctx, id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, inventory.ToMovementResponse(m))
	}
	return &dto.MovementHistoryResponse{Product: *toProductResponse(product), Movements: items}, nil
}

// HistoryPDF genera el historial en PDF. Devuelve también un nombre de archivo sugerido.
func (uc *ProductUseCase) HistoryPDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("generador PDF no configurado")
	}
	product, movements, err := uc.history(ctx, id)
	if err != nil {
		return nil, "", err
	}
	content, err := uc.pdf.GenerateHistoryPDF(ctx, product, movements)
	if err != nil {
		return nil, "", err
	}
	return content, fmt.Sprintf("historial-%s.pdf", product.SKU), nil
}

func (uc *ProductUseCase) history(ctx context.Context, id string) (*entity.Product, []*entity.Movement, error) {
	if err := inventory.ValidateID(id); err != nil {
		return nil, nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return product, movements, nil
}

// calendarDay fecha de calendario local, sin hora.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
