package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/StockPilot-api/internal/application/stock"
	"github.com/jhoicas/StockPilot-api/internal/domain"
	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: almacén en memoria con semántica transaccional (commit o rollback)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items        map[string]entity.InventoryItem
	movements    []*entity.StockMovement
	failUpdate   bool
	failMovement bool
}

func newMemStore(items ...entity.InventoryItem) *memStore {
	s := &memStore{items: make(map[string]entity.InventoryItem)}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *memStore) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return s.GetForUpdate(ctx, id)
}

func (s *memStore) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copia := it
	return &copia, nil
}

func (s *memStore) GetUnderThreshold(ctx context.Context) ([]entity.InventoryItem, error) {
	var out []entity.InventoryItem
	for _, it := range s.items {
		if it.UnderThreshold() {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *memStore) UpdateStock(ctx context.Context, id string, newStock int) error {
	if s.failUpdate {
		return errors.New("update falló")
	}
	it, ok := s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.CurrentStock = newStock
	s.items[id] = it
	return nil
}

func (s *memStore) Create(ctx context.Context, movement *entity.StockMovement) error {
	if s.failMovement {
		return errors.New("insert de movimiento falló")
	}
	s.movements = append(s.movements, movement)
	return nil
}

func (s *memStore) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range s.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

// memTxRunner simula la transacción: si fn falla, restaura el estado previo.
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	items repository.InventoryItemRepository,
	movements repository.StockMovementRepository,
) error) error {
	backupItems := make(map[string]entity.InventoryItem, len(r.store.items))
	for k, v := range r.store.items {
		backupItems[k] = v
	}
	backupLen := len(r.store.movements)

	if err := fn(r.store, r.store); err != nil {
		r.store.items = backupItems
		r.store.movements = r.store.movements[:backupLen]
		return err
	}
	return nil
}

type fakeRechecker struct {
	calls int
}

func (f *fakeRechecker) CheckNow() { f.calls++ }

func newService(store *memStore) (*stock.AdjustmentService, *fakeRechecker) {
	recheck := &fakeRechecker{}
	return stock.NewAdjustmentService(&memTxRunner{store: store}, recheck), recheck
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// TestApply_Entrada: in suma el delta y registra el movimiento completo.
func TestApply_Entrada(t *testing.T) {
	store := newMemStore(entity.InventoryItem{ID: "i1", CurrentStock: 10, MinimumStock: 5})
	svc, recheck := newService(store)

	item, err := svc.Apply(context.Background(), stock.AdjustmentInput{
		ItemID: "i1", Type: entity.MovementTypeIn, Quantity: 7, Reason: "recepción", UserID: "u1",
	})

	require.NoError(t, err)
	assert.Equal(t, 17, item.CurrentStock)
	assert.Equal(t, 17, store.items["i1"].CurrentStock)

	require.Len(t, store.movements, 1)
	m := store.movements[0]
	assert.Equal(t, entity.MovementTypeIn, m.Type)
	assert.Equal(t, 7, m.Quantity)
	assert.Equal(t, 10, m.PreviousStock)
	assert.Equal(t, 17, m.NewStock)
	assert.Equal(t, "recepción", m.Reason)
	assert.Equal(t, "u1", m.CreatedBy)
	assert.NotEmpty(t, m.ID)

	assert.Equal(t, 1, recheck.calls, "un ajuste exitoso dispara la re-evaluación de alertas")
}

// TestApply_Salida: out resta el delta; sacar todo el stock deja cero.
func TestApply_Salida(t *testing.T) {
	store := newMemStore(entity.InventoryItem{ID: "i1", CurrentStock: 10, MinimumStock: 5})
	svc, _ := newService(store)

	item, err := svc.Apply(context.Background(), stock.AdjustmentInput{
		ItemID: "i1", Type: entity.MovementTypeOut, Quantity: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, item.CurrentStock)
	require.Len(t, store.movements, 1)
	assert.Equal(t, 10, store.movements[0].Quantity)
	assert.Equal(t, 0, store.movements[0].NewStock)
}

// TestApply_SalidaInsuficiente: out mayor al stock disponible falla con
// ErrInvalidQuantity y no deja rastro (ni stock ni movimiento ni recheck).
func TestApply_SalidaInsuficiente(t *testing.T) {
	store := newMemStore(entity.InventoryItem{ID: "i1", CurrentStock: 3, MinimumStock: 5})
	svc, recheck := newService(store)

	_, err := svc.Apply(context.Background(), stock.AdjustmentInput{
		ItemID: "i1", Type: entity.MovementTypeOut, Quantity: 4,
	})

	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 3, store.items["i1"].CurrentStock, "el stock no debe cambiar")
	assert.Empty(t, store.movements, "no debe registrarse movimiento")
	assert.Equal(t, 0, recheck.calls, "un ajuste fallido no dispara re-evaluación")
}

// TestApply_Ajuste: adjustment fija el total absoluto; el movimiento registra
// el delta como magnitud.
func TestApply_Ajuste(t *testing.T) {
	cases := []struct {
		name          string
		current       int
		target        int
		expectedDelta int
	}{
		{"ajuste hacia arriba", 10, 45, 35},
		{"ajuste hacia abajo", 45, 10, 35},
		{"ajuste a cero", 8, 0, 8},
		{"ajuste sin cambio", 12, 12, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore(entity.InventoryItem{ID: "i1", CurrentStock: tc.current, MinimumStock: 5})
			svc, _ := newService(store)

			item, err := svc.Apply(context.Background(), stock.AdjustmentInput{
				ItemID: "i1", Type: entity.MovementTypeAdjustment, Quantity: tc.target,
			})

			require.NoError(t, err)
			assert.Equal(t, tc.target, item.CurrentStock)
			require.Len(t, store.movements, 1)
			assert.Equal(t, tc.expectedDelta, store.movements[0].Quantity)
			assert.Equal(t, tc.current, store.movements[0].PreviousStock)
			assert.Equal(t, tc.target, store.movements[0].NewStock)
		})
	}
}

// TestApply_ValidacionDeCantidad: in/out exigen cantidad positiva; adjustment
// admite cero pero no negativos. Nada toca la BD.
func TestApply_ValidacionDeCantidad(t *testing.T) {
	cases := []struct {
		name     string
		typ      string
		quantity int
	}{
		{"in con cero", entity.MovementTypeIn, 0},
		{"in negativo", entity.MovementTypeIn, -1},
		{"out con cero", entity.MovementTypeOut, 0},
		{"out negativo", entity.MovementTypeOut, -5},
		{"adjustment negativo", entity.MovementTypeAdjustment, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore(entity.InventoryItem{ID: "i1", CurrentStock: 10})
			svc, _ := newService(store)

			_, err := svc.Apply(context.Background(), stock.AdjustmentInput{
				ItemID: "i1", Type: tc.typ, Quantity: tc.quantity,
			})

			require.ErrorIs(t, err, domain.ErrInvalidQuantity)
			assert.Empty(t, store.movements)
		})
	}
}

// TestApply_TipoDesconocido devuelve ErrInvalidInput.
func TestApply_TipoDesconocido(t *testing.T) {
	store := newMemStore(entity.InventoryItem{ID: "i1", CurrentStock: 10})
	svc, _ := newService(store)

	_, err := svc.Apply(context.Background(), stock.AdjustmentInput{
		ItemID: "i1", Type: "transfer", Quantity: 5,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestApply_ItemInexistente devuelve ErrNotFound.
func TestApply_ItemInexistente(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(store)

	_, err := svc.Apply(context.Background(), stock.AdjustmentInput{
		ItemID: "nope", Type: entity.MovementTypeIn, Quantity: 5,
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

// TestApply_SinEscrituraParcial: si el insert del movimiento falla, la
// transacción revierte también la actualización del stock y el error señala
// ErrNoPartialUpdate.
func TestApply_SinEscrituraParcial(t *testing.T) {
	store := newMemStore(entity.InventoryItem{ID: "i1", CurrentStock: 10, MinimumStock: 5})
	store.failMovement = true
	svc, recheck := newService(store)

	_, err := svc.Apply(context.Background(), stock.AdjustmentInput{
		ItemID: "i1", Type: entity.MovementTypeIn, Quantity: 7,
	})

	require.ErrorIs(t, err, domain.ErrNoPartialUpdate)
	assert.Equal(t, 10, store.items["i1"].CurrentStock, "el stock debe revertirse con la transacción")
	assert.Empty(t, store.movements)
	assert.Equal(t, 0, recheck.calls)
}

// TestApply_FalloDeUpdate: un update fallido también sale como ErrNoPartialUpdate.
func TestApply_FalloDeUpdate(t *testing.T) {
	store := newMemStore(entity.InventoryItem{ID: "i1", CurrentStock: 10})
	store.failUpdate = true
	svc, _ := newService(store)

	_, err := svc.Apply(context.Background(), stock.AdjustmentInput{
		ItemID: "i1", Type: entity.MovementTypeOut, Quantity: 2,
	})

	require.ErrorIs(t, err, domain.ErrNoPartialUpdate)
	assert.Equal(t, 10, store.items["i1"].CurrentStock)
}

// TestApply_SinRechecker: recheck nil no debe romper el flujo exitoso.
func TestApply_SinRechecker(t *testing.T) {
	store := newMemStore(entity.InventoryItem{ID: "i1", CurrentStock: 10})
	svc := stock.NewAdjustmentService(&memTxRunner{store: store}, nil)

	item, err := svc.Apply(context.Background(), stock.AdjustmentInput{
		ItemID: "i1", Type: entity.MovementTypeIn, Quantity: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, 11, item.CurrentStock)
}
