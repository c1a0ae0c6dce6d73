package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// CatalogUseCase sirve el estado actual del catálogo: listado, alta de
// productos y carga inicial. No contiene lógica de stock más allá de calcular
// los campos derivados al crear; las mutaciones de cantidad pasan por el motor
// de ledger.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	gate        *domain.WriteGate
}

// NewCatalogUseCase construye el caso de uso. El gate es el mismo que usa el
// motor de ledger: todas las escrituras del proceso se serializan entre sí.
func NewCatalogUseCase(productRepo repository.ProductRepository, gate *domain.WriteGate) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, gate: gate}
}

// CreateProduct valida y da de alta un producto, calculando valor y peso_total
// en el momento de la creación. Falla con ErrInvalidInput si el nombre está
// vacío o el precio unitario es negativo.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	p := &entity.Product{
		Name:       in.Name,
		Unit:       in.Unit,
		UnitWeight: in.UnitWeight,
		Category:   in.Category,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
	}
	p.Recalculate()

	uc.gate.Lock()
	defer uc.gate.Unlock()

	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts devuelve el catálogo completo, ordenado por (nombre, peso).
// Una lista vacía es un resultado válido, no un error.
func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.List()
}

// FindProduct busca un producto por nombre. ErrProductNotFound si no existe.
func (uc *CatalogUseCase) FindProduct(ctx context.Context, name string) (*entity.Product, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// SeedIfEmpty carga el catálogo desde filas crudas solo si está vacío al
// arrancar el proceso. Las filas sin nombre se descartan en silencio; los
// numéricos ausentes ya llegan en cero. A diferencia de CreateProduct no
// rechaza nada: es una siembra idempotente, no una API de importación.
// Devuelve cuántos productos insertó.
func (uc *CatalogUseCase) SeedIfEmpty(ctx context.Context, rows []dto.SeedRow) (int, error) {
	uc.gate.Lock()
	defer uc.gate.Unlock()

	count, err := uc.productRepo.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		p := &entity.Product{
			Name:       row.Name,
			Unit:       row.Unit,
			UnitWeight: row.UnitWeight,
			Category:   row.Category,
			Quantity:   row.Quantity,
			UnitPrice:  row.UnitPrice,
		}
		// Se recalculan los derivados en vez de copiar los de la hoja:
		// la invariante valor/peso_total debe cumplirse también al sembrar.
		p.Recalculate()
		if err := uc.productRepo.Create(p); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
