// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria, con la misma semántica transaccional que el adaptador PostgreSQL
// (snapshot + rollback). Se usa como doble de pruebas de los casos de uso y
// los handlers HTTP.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/application/ledger"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)

// Store guarda productos y movimientos en memoria. Las lecturas toman RLock y
// solo ven estado confirmado; Run retiene el Lock durante toda la transacción
// y restaura el snapshot previo si el callback falla.
type Store struct {
	mu   sync.RWMutex
	data state
}

type state struct {
	products       []entity.Product
	movements      []entity.Movement
	nextProductID  int64
	nextMovementID int64
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{data: state{nextProductID: 1, nextMovementID: 1}}
}

// Products devuelve el puerto de catálogo (con locking propio).
func (s *Store) Products() repository.ProductRepository {
	return &lockedProductRepo{s: s}
}

// Movements devuelve el puerto de movimientos (con locking propio).
func (s *Store) Movements() repository.MovementRepository {
	return &lockedMovementRepo{s: s}
}

// Run ejecuta fn contra el estado bajo lock exclusivo; si fn devuelve error
// se restaura el snapshot previo (equivalente al Rollback de la tx).
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(&movementRepo{st: &s.data}, &productRepo{st: &s.data}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (st *state) clone() state {
	cp := state{
		products:       make([]entity.Product, len(st.products)),
		movements:      make([]entity.Movement, len(st.movements)),
		nextProductID:  st.nextProductID,
		nextMovementID: st.nextMovementID,
	}
	copy(cp.products, st.products)
	copy(cp.movements, st.movements)
	return cp
}

// firstByName devuelve el índice de la primera fila con ese nombre en orden
// (nombre, peso), o -1.
func (st *state) firstByName(name string) int {
	best := -1
	for i := range st.products {
		if st.products[i].Name != name {
			continue
		}
		if best < 0 || st.products[i].UnitWeight.LessThan(st.products[best].UnitWeight) {
			best = i
		}
	}
	return best
}

// unitsByName devuelve la unidad de medida de cada fila con ese nombre, en
// orden (nombre, peso) ascendente; vacío si el nombre no existe.
func (st *state) unitsByName(name string) []string {
	var idxs []int
	for i := range st.products {
		if st.products[i].Name == name {
			idxs = append(idxs, i)
		}
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return st.products[idxs[a]].UnitWeight.LessThan(st.products[idxs[b]].UnitWeight)
	})
	units := make([]string, len(idxs))
	for i, idx := range idxs {
		units[i] = st.products[idx].Unit
	}
	return units
}

// ── Repos sin locking: solo viven dentro de Run, que ya retiene el Lock ──

type productRepo struct{ st *state }

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(p *entity.Product) error {
	p.ID = r.st.nextProductID
	r.st.nextProductID++
	r.st.products = append(r.st.products, *p)
	return nil
}

func (r *productRepo) GetByName(name string) (*entity.Product, error) {
	idx := r.st.firstByName(name)
	if idx < 0 {
		return nil, nil
	}
	p := r.st.products[idx]
	return &p, nil
}

func (r *productRepo) List() ([]*entity.Product, error) {
	sorted := make([]entity.Product, len(r.st.products))
	copy(sorted, r.st.products)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].UnitWeight.LessThan(sorted[j].UnitWeight)
	})
	out := make([]*entity.Product, len(sorted))
	for i := range sorted {
		p := sorted[i]
		out[i] = &p
	}
	return out, nil
}

func (r *productRepo) ApplyQuantityDelta(name string, delta decimal.Decimal) (*entity.Product, error) {
	idx := r.st.firstByName(name)
	if idx < 0 {
		return nil, nil
	}
	p := &r.st.products[idx]
	p.Quantity = p.Quantity.Add(delta)
	p.Recalculate()
	cp := *p
	return &cp, nil
}

func (r *productRepo) Count() (int64, error) {
	return int64(len(r.st.products)), nil
}

type movementRepo struct{ st *state }

var _ repository.MovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(m *entity.Movement) error {
	m.ID = r.st.nextMovementID
	r.st.nextMovementID++
	r.st.movements = append(r.st.movements, *m)
	return nil
}

func (r *movementRepo) List() ([]*entity.Movement, error) {
	sorted := make([]entity.Movement, len(r.st.movements))
	copy(sorted, r.st.movements)
	sortMovementsDesc(sorted)
	out := make([]*entity.Movement, len(sorted))
	for i := range sorted {
		m := sorted[i]
		out[i] = &m
	}
	return out, nil
}

func (r *movementRepo) ListByDateRange(from, to time.Time) ([]*entity.MovementWithUnit, error) {
	var filtered []entity.Movement
	for _, m := range r.st.movements {
		if m.Date.Before(from) || m.Date.After(to) {
			continue
		}
		filtered = append(filtered, m)
	}
	sortMovementsDesc(filtered)
	// Misma multiplicidad que el LEFT JOIN por nombre del adaptador
	// PostgreSQL: una fila por producto coincidente; sin coincidencias, una
	// sola fila con la unidad vacía.
	out := make([]*entity.MovementWithUnit, 0, len(filtered))
	for _, m := range filtered {
		units := r.st.unitsByName(m.ProductName)
		if len(units) == 0 {
			out = append(out, &entity.MovementWithUnit{Movement: m})
			continue
		}
		for _, unit := range units {
			out = append(out, &entity.MovementWithUnit{Movement: m, CurrentUnit: unit})
		}
	}
	return out, nil
}

func sortMovementsDesc(list []entity.Movement) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
}

// ── Repos con locking: vista confirmada para lecturas y escrituras sueltas ──

type lockedProductRepo struct{ s *Store }

var _ repository.ProductRepository = (*lockedProductRepo)(nil)

func (r *lockedProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&productRepo{st: &r.s.data}).Create(p)
}

func (r *lockedProductRepo) GetByName(name string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return (&productRepo{st: &r.s.data}).GetByName(name)
}

func (r *lockedProductRepo) List() ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return (&productRepo{st: &r.s.data}).List()
}

func (r *lockedProductRepo) ApplyQuantityDelta(name string, delta decimal.Decimal) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&productRepo{st: &r.s.data}).ApplyQuantityDelta(name, delta)
}

func (r *lockedProductRepo) Count() (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return (&productRepo{st: &r.s.data}).Count()
}

type lockedMovementRepo struct{ s *Store }

var _ repository.MovementRepository = (*lockedMovementRepo)(nil)

func (r *lockedMovementRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&movementRepo{st: &r.s.data}).Create(m)
}

func (r *lockedMovementRepo) List() ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return (&movementRepo{st: &r.s.data}).List()
}

func (r *lockedMovementRepo) ListByDateRange(from, to time.Time) ([]*entity.MovementWithUnit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return (&movementRepo{st: &r.s.data}).ListByDateRange(from, to)
}
