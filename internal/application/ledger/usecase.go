package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// LedgerUseCase es el motor transaccional del registro de movimientos:
// insertar el movimiento y actualizar el producto correspondiente como una
// sola unidad atómica (Commit o Rollback completos). Es el único componente
// que escribe en movements y el único caller de ApplyQuantityDelta.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	gate     *domain.WriteGate
}

// NewLedgerUseCase construye el motor. movRepo (atado al pool) sirve las
// lecturas; las escrituras pasan siempre por txRunner bajo el gate.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.MovementRepository, gate *domain.WriteGate) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, gate: gate}
}

// RecordMovement registra un movimiento de stock:
//
//  1. valida entrada (cantidad > 0, dirección entrada|salida, nombre presente)
//  2. adquiere el turno global de escritura
//  3. en una transacción: inserta el movimiento con fecha del servidor,
//     aplica el delta con signo al producto y recalcula sus derivados
//  4. Commit. Si el producto no existe, o falla cualquier paso, Rollback
//     total: el insert del movimiento también se descarta.
//
// No hay piso de stock: una salida mayor que la cantidad actual es válida y
// deja la cantidad en negativo. Nunca se reintenta en silencio.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, in dto.RegisterMovementRequest) (*entity.Movement, *entity.Product, error) {
	if in.ProductName == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeEntrada && in.Type != entity.MovementTypeSalida {
		return nil, nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}

	uc.gate.Lock()
	defer uc.gate.Unlock()

	var (
		mov  *entity.Movement
		prod *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		m := &entity.Movement{
			ProductName: in.ProductName,
			Type:        in.Type,
			Quantity:    in.Quantity,
			UnitWeight:  in.UnitWeight,
			Unit:        in.Unit,
			Date:        time.Now(),
		}
		if err := movRepo.Create(m); err != nil {
			return err
		}
		p, err := productRepo.ApplyQuantityDelta(in.ProductName, m.SignedDelta())
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		mov, prod = m, p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return mov, prod, nil
}

// ListMovements devuelve el historial completo, fecha descendente.
func (uc *LedgerUseCase) ListMovements(ctx context.Context) ([]*entity.Movement, error) {
	return uc.movRepo.List()
}

// ListMovementsInRange devuelve los movimientos entre start 00:00:00 y
// end 23:59:59 inclusive, fecha descendente, con la unidad actual del
// producto.
func (uc *LedgerUseCase) ListMovementsInRange(ctx context.Context, start, end time.Time) ([]*entity.MovementWithUnit, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
	return uc.movRepo.ListByDateRange(from, to)
}
