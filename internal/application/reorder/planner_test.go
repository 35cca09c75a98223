package reorder_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/StockPilot-api/internal/application/reorder"
	"github.com/jhoicas/StockPilot-api/internal/domain"
	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// memOrderStore acumula cabeceras y líneas; puede fallar para un proveedor
// concreto para simular el fallo parcial de una confirmación en lote.
type memOrderStore struct {
	headers      []*entity.PurchaseOrder
	items        []entity.PurchaseOrderItem
	failSupplier string
}

func (s *memOrderStore) CreateHeader(ctx context.Context, order *entity.PurchaseOrder) error {
	if order.SupplierID == s.failSupplier {
		return errors.New("insert de cabecera falló")
	}
	s.headers = append(s.headers, order)
	return nil
}

func (s *memOrderStore) CreateItems(ctx context.Context, items []entity.PurchaseOrderItem) error {
	s.items = append(s.items, items...)
	return nil
}

func (s *memOrderStore) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return s.headers, nil
}

// memOrderTxRunner restaura el almacén si fn falla, como haría el rollback.
type memOrderTxRunner struct {
	store *memOrderStore
}

func (r *memOrderTxRunner) RunOrders(ctx context.Context, fn func(orders repository.PurchaseOrderRepository) error) error {
	backupHeaders := len(r.store.headers)
	backupItems := len(r.store.items)
	if err := fn(r.store); err != nil {
		r.store.headers = r.store.headers[:backupHeaders]
		r.store.items = r.store.items[:backupItems]
		return err
	}
	return nil
}

func cents(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func catalogItem(id, supplierID string, current, minimum int, unitPriceCents int64) entity.InventoryItem {
	return entity.InventoryItem{
		ID:           id,
		Name:         "Ítem " + id,
		SKU:          "SKU-" + id,
		SupplierID:   supplierID,
		SupplierName: "Proveedor " + supplierID,
		CurrentStock: current,
		MinimumStock: minimum,
		UnitPrice:    cents(unitPriceCents),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SuggestedQuantity
// ──────────────────────────────────────────────────────────────────────────────

// TestSuggestedQuantity: max(min*2 - current, min).
func TestSuggestedQuantity(t *testing.T) {
	cases := []struct {
		name     string
		current  int
		minimum  int
		expected int
	}{
		{"repone al doble del mínimo", 5, 20, 35},
		{"nunca menos que el mínimo", 45, 50, 55},
		{"stock cero pide el doble", 0, 20, 40},
		{"stock igual al mínimo pide el mínimo", 20, 20, 20},
		{"mínimo cero da cero", 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, reorder.SuggestedQuantity(tc.current, tc.minimum))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Plan
// ──────────────────────────────────────────────────────────────────────────────

// TestPlan_AgrupaPorProveedor: un borrador por proveedor, en orden de primera
// aparición en el catálogo, con totales por línea y por borrador.
func TestPlan_AgrupaPorProveedor(t *testing.T) {
	planner := reorder.NewPlanner(&memOrderTxRunner{store: &memOrderStore{}})
	catalog := []entity.InventoryItem{
		catalogItem("a", "s1", 5, 20, 150),  // sugerido 35
		catalogItem("b", "s2", 45, 50, 100), // sugerido 55
		catalogItem("c", "s1", 0, 10, 200),  // sugerido 20
	}

	drafts := planner.Plan([]string{"a", "b", "c"}, catalog)

	require.Len(t, drafts, 2)

	s1 := drafts[0]
	assert.Equal(t, "s1", s1.SupplierID)
	assert.Equal(t, "Proveedor s1", s1.SupplierName)
	require.Len(t, s1.Lines, 2)
	assert.Equal(t, 35, s1.Lines[0].SuggestedQuantity)
	assert.True(t, s1.Lines[0].LineTotal.Equal(cents(35*150)), "total de línea = cantidad * precio")
	assert.Equal(t, 20, s1.Lines[1].SuggestedQuantity)
	assert.True(t, s1.TotalAmount.Equal(cents(35*150+20*200)), "total del borrador suma sus líneas")

	s2 := drafts[1]
	assert.Equal(t, "s2", s2.SupplierID)
	require.Len(t, s2.Lines, 1)
	assert.Equal(t, 55, s2.Lines[0].SuggestedQuantity)
	assert.True(t, s2.TotalAmount.Equal(cents(55*100)))
}

// TestPlan_FiltraSeleccionYUmbral: ignora ítems no seleccionados, ítems ya
// repuestos y líneas con cantidad sugerida cero.
func TestPlan_FiltraSeleccionYUmbral(t *testing.T) {
	planner := reorder.NewPlanner(&memOrderTxRunner{store: &memOrderStore{}})
	catalog := []entity.InventoryItem{
		catalogItem("a", "s1", 5, 20, 150),  // seleccionado y bajo umbral
		catalogItem("b", "s1", 30, 20, 150), // repuesto entre selección y plan
		catalogItem("c", "s1", 2, 20, 150),  // no seleccionado
		catalogItem("d", "s2", 0, 0, 150),   // mínimo cero: cantidad sugerida 0
	}

	drafts := planner.Plan([]string{"a", "b", "d"}, catalog)

	require.Len(t, drafts, 1, "el proveedor sin líneas válidas no genera borrador")
	require.Len(t, drafts[0].Lines, 1)
	assert.Equal(t, "a", drafts[0].Lines[0].ItemID)
}

// TestPlan_SeleccionVacia no genera borradores.
func TestPlan_SeleccionVacia(t *testing.T) {
	planner := reorder.NewPlanner(&memOrderTxRunner{store: &memOrderStore{}})
	drafts := planner.Plan(nil, []entity.InventoryItem{catalogItem("a", "s1", 5, 20, 150)})
	assert.Empty(t, drafts)
}

// ──────────────────────────────────────────────────────────────────────────────
// GeneratePONumber
// ──────────────────────────────────────────────────────────────────────────────

// TestGeneratePONumber: formato PO-YYYYMMDD-NNN con la fecha dada.
func TestGeneratePONumber(t *testing.T) {
	at := time.Date(2026, 3, 9, 15, 4, 5, 0, time.UTC)
	for i := 0; i < 20; i++ {
		number := reorder.GeneratePONumber(at)
		assert.Regexp(t, regexp.MustCompile(`^PO-20260309-\d{3}$`), number)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirm / ConfirmAll
// ──────────────────────────────────────────────────────────────────────────────

// TestConfirm_PersisteCabeceraYLineas: una transacción deja la cabecera en
// estado pending con sus líneas enlazadas.
func TestConfirm_PersisteCabeceraYLineas(t *testing.T) {
	store := &memOrderStore{}
	planner := reorder.NewPlanner(&memOrderTxRunner{store: store})
	catalog := []entity.InventoryItem{
		catalogItem("a", "s1", 5, 20, 150),
		catalogItem("c", "s1", 0, 10, 200),
	}
	drafts := planner.Plan([]string{"a", "c"}, catalog)
	require.Len(t, drafts, 1)

	order, err := planner.Confirm(context.Background(), drafts[0])

	require.NoError(t, err)
	require.Len(t, store.headers, 1)
	assert.Equal(t, order.ID, store.headers[0].ID)
	assert.Equal(t, "s1", order.SupplierID)
	assert.Equal(t, entity.POStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(cents(35*150+20*200)))
	assert.Regexp(t, regexp.MustCompile(`^PO-\d{8}-\d{3}$`), order.PONumber)

	require.Len(t, store.items, 2)
	for _, line := range store.items {
		assert.Equal(t, order.ID, line.PurchaseOrderID)
		assert.NotEmpty(t, line.ID)
	}
	assert.Equal(t, 35, store.items[0].Quantity)
	assert.True(t, store.items[0].TotalPrice.Equal(cents(35*150)))
}

// TestConfirm_BorradorVacio: sin líneas o sin proveedor no se persiste nada.
func TestConfirm_BorradorVacio(t *testing.T) {
	store := &memOrderStore{}
	planner := reorder.NewPlanner(&memOrderTxRunner{store: store})

	_, err := planner.Confirm(context.Background(), reorder.Draft{SupplierID: "s1"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = planner.Confirm(context.Background(), reorder.Draft{
		Lines: []reorder.Line{{ItemID: "a", SuggestedQuantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, store.headers)
	assert.Empty(t, store.items)
}

// TestConfirmAll_FalloParcial: cada borrador va en su propia transacción; el
// proveedor que falla no revierte las órdenes ya confirmadas de los demás y el
// caller recibe el resultado por proveedor.
func TestConfirmAll_FalloParcial(t *testing.T) {
	store := &memOrderStore{failSupplier: "s2"}
	planner := reorder.NewPlanner(&memOrderTxRunner{store: store})
	catalog := []entity.InventoryItem{
		catalogItem("a", "s1", 5, 20, 150),
		catalogItem("b", "s2", 45, 50, 100),
		catalogItem("c", "s3", 0, 10, 200),
	}
	drafts := planner.Plan([]string{"a", "b", "c"}, catalog)
	require.Len(t, drafts, 3)

	results := planner.ConfirmAll(context.Background(), drafts)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Order)
	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Order)
	assert.NoError(t, results[2].Err)

	// Las órdenes de s1 y s3 quedaron persistidas pese al fallo de s2.
	require.Len(t, store.headers, 2)
	assert.Equal(t, "s1", store.headers[0].SupplierID)
	assert.Equal(t, "s3", store.headers[1].SupplierID)
}
