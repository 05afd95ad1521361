package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/inventory"
	"github.com/tu-usuario/gestion-pro/internal/domain"
)

func newRecordUseCase(store *fakeStore) *inventory.RecordMovementUseCase {
	return inventory.NewRecordMovementUseCase(
		&fakeTxRunner{store: store},
		&fakeProductRepo{store: store},
		&fakeWarehouseRepo{store: store},
	)
}

func TestRecordMovement_CompraEntraYRecalculaCosto(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("10"))
	uc := newRecordUseCase(store)

	cost := dec("18000")
	resp, err := uc.Record(context.Background(), testCompanyID, testUserID, dto.RecordMovementRequest{
		Type:        "purchase",
		ProductID:   testProductID,
		WarehouseID: warehouseNorte,
		Quantity:    dec("5"),
		UnitCost:    &cost,
		Reference:   "OC-2026-014",
	})
	require.NoError(t, err)

	assert.Equal(t, "purchase", resp.Type)
	assert.True(t, resp.Quantity.Equal(dec("5")))
	assert.True(t, resp.BalanceBefore.Equal(dec("10")))
	assert.True(t, resp.BalanceAfter.Equal(dec("15")))
	assert.True(t, store.products[testProductID].CurrentStock.Equal(dec("15")))

	// Promedio ponderado: (10*15000 + 5*18000) / 15 = 16000
	assert.True(t, store.products[testProductID].Cost.Equal(dec("16000")))
}

// El costo promedio pondera sobre el saldo global del producto, no sobre el
// saldo de la bodega que recibe la compra. Con todo el stock en otra bodega,
// ponderar por el saldo local (cero) tomaría el costo de entrada tal cual.
func TestRecordMovement_CompraPonderaCostoSobreSaldoGlobal(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseSur, dec("10"))
	uc := newRecordUseCase(store)

	cost := dec("20000")
	resp, err := uc.Record(context.Background(), testCompanyID, testUserID, dto.RecordMovementRequest{
		Type:        "purchase",
		ProductID:   testProductID,
		WarehouseID: warehouseNorte,
		Quantity:    dec("10"),
		UnitCost:    &cost,
		Reference:   "OC-2026-019",
	})
	require.NoError(t, err)

	// El saldo de la bodega Norte arranca en cero, el global en 10
	assert.True(t, resp.BalanceBefore.IsZero())
	assert.True(t, resp.BalanceAfter.Equal(dec("10")))
	assert.True(t, store.products[testProductID].CurrentStock.Equal(dec("20")))

	// Promedio ponderado global: (10*15000 + 10*20000) / 20 = 17500
	assert.True(t, store.products[testProductID].Cost.Equal(dec("17500")))
}

// Dos compras simultáneas que estrenan la combinación (producto, bodega) no
// pueden leer ambas saldo cero: la fila se materializa y bloquea antes de
// leer, así que la segunda encadena sobre el saldo confirmado por la primera
// y la fila de stock termina con la suma de las dos entradas.
func TestRecordMovement_ComprasConcurrentesEnBodegaNueva(t *testing.T) {
	store := newScenario()
	uc := newRecordUseCase(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cost := dec("15000")
			_, errs[i] = uc.Record(context.Background(), testCompanyID, testUserID, dto.RecordMovementRequest{
				Type:        "purchase",
				ProductID:   testProductID,
				WarehouseID: warehouseNorte,
				Quantity:    dec("10"),
				UnitCost:    &cost,
				Reference:   "OC-2026-020",
			})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	require.Len(t, store.movements, 2)
	first, second := store.movements[0], store.movements[1]
	assert.True(t, first.BalanceBefore.IsZero())
	assert.True(t, second.BalanceBefore.Equal(first.BalanceAfter),
		"la segunda compra no encadena con la primera")
	assert.True(t, store.stocks[stockKey(testProductID, warehouseNorte)].Quantity.Equal(dec("20")))
	assert.True(t, store.products[testProductID].CurrentStock.Equal(dec("20")))
}

func TestRecordMovement_VentaSaleConSigno(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("10"))
	uc := newRecordUseCase(store)

	resp, err := uc.Record(context.Background(), testCompanyID, testUserID, dto.RecordMovementRequest{
		Type:        "sale",
		ProductID:   testProductID,
		WarehouseID: warehouseNorte,
		Quantity:    dec("3"),
		Reference:   "FV-00881",
	})
	require.NoError(t, err)

	// La cantidad llega positiva; el libro guarda el signo de la salida
	assert.True(t, resp.Quantity.Equal(dec("-3")))
	assert.True(t, resp.BalanceAfter.Equal(dec("7")))
	assert.True(t, store.stocks[stockKey(testProductID, warehouseNorte)].Quantity.Equal(dec("7")))
}

func TestRecordMovement_VentaSinSaldoRechaza(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("2"))
	uc := newRecordUseCase(store)

	_, err := uc.Record(context.Background(), testCompanyID, testUserID, dto.RecordMovementRequest{
		Type:        "sale",
		ProductID:   testProductID,
		WarehouseID: warehouseNorte,
		Quantity:    dec("3"),
		Reference:   "FV-00882",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, store.movements)
	assert.True(t, store.stocks[stockKey(testProductID, warehouseNorte)].Quantity.Equal(dec("2")))
}

func TestRecordMovement_SalidasPorPerdidaYVencimiento(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("10"))
	uc := newRecordUseCase(store)
	ctx := context.Background()

	for _, typ := range []string{"loss", "expired", "return_out"} {
		t.Run(typ, func(t *testing.T) {
			resp, err := uc.Record(ctx, testCompanyID, testUserID, dto.RecordMovementRequest{
				Type:        typ,
				ProductID:   testProductID,
				WarehouseID: warehouseNorte,
				Quantity:    dec("1"),
				Reference:   "DOC-1",
				Reason:      "Registro de salida",
			})
			require.NoError(t, err)
			assert.True(t, resp.Quantity.Equal(dec("-1")))
		})
	}
	assert.True(t, store.stocks[stockKey(testProductID, warehouseNorte)].Quantity.Equal(dec("7")))
}

func TestRecordMovement_DevolucionDeClienteEntra(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("4"))
	uc := newRecordUseCase(store)

	resp, err := uc.Record(context.Background(), testCompanyID, testUserID, dto.RecordMovementRequest{
		Type:        "return_in",
		ProductID:   testProductID,
		WarehouseID: warehouseNorte,
		Quantity:    dec("2"),
		Reference:   "FV-00881",
	})
	require.NoError(t, err)
	assert.True(t, resp.Quantity.Equal(dec("2")))
	assert.True(t, resp.BalanceAfter.Equal(dec("6")))
}

func TestRecordMovement_EntradasInvalidas(t *testing.T) {
	store := newScenario()
	uc := newRecordUseCase(store)
	ctx := context.Background()
	cost := dec("100")

	cases := []struct {
		name string
		in   dto.RecordMovementRequest
	}{
		{"tipo adjustment no permitido aquí", dto.RecordMovementRequest{Type: "adjustment", ProductID: testProductID, Quantity: dec("1"), Reference: "X"}},
		{"tipo transfer no permitido aquí", dto.RecordMovementRequest{Type: "transfer", ProductID: testProductID, Quantity: dec("1"), Reference: "X"}},
		{"cantidad cero", dto.RecordMovementRequest{Type: "sale", ProductID: testProductID, Quantity: decimal.Zero, Reference: "X"}},
		{"compra sin costo unitario", dto.RecordMovementRequest{Type: "purchase", ProductID: testProductID, Quantity: dec("1"), Reference: "X"}},
		{"sin referencia", dto.RecordMovementRequest{Type: "purchase", ProductID: testProductID, Quantity: dec("1"), UnitCost: &cost}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Record(ctx, testCompanyID, testUserID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, store.movements)
}
