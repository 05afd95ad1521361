package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/inventory"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

func newHistoryUseCase(store *fakeStore) *inventory.MovementHistoryUseCase {
	return inventory.NewMovementHistoryUseCase(
		&fakeMovementRepo{store: store},
		&fakeStockRepo{store: store},
		&fakeProductRepo{store: store},
	)
}

// seedMovements inserta n movimientos encadenados con timestamps crecientes.
func seedMovements(store *fakeStore, productID, warehouseID string, n int, base time.Time) {
	balance := dec("0")
	for i := 0; i < n; i++ {
		after := balance.Add(dec("1"))
		store.movements = append(store.movements, entity.StockMovement{
			ID:            fmt.Sprintf("mov-%03d", i),
			CompanyID:     testCompanyID,
			ProductID:     productID,
			WarehouseID:   warehouseID,
			Type:          entity.MovementTypeAdjustment,
			Quantity:      dec("1"),
			BalanceBefore: balance,
			BalanceAfter:  after,
			Reason:        "Entrada",
			PerformedBy:   testUserID,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
		balance = after
	}
}

func TestMovementHistory_MasRecientesPrimero(t *testing.T) {
	store := newScenario()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	seedMovements(store, testProductID, warehouseNorte, 5, base)
	uc := newHistoryUseCase(store)

	resp, err := uc.History(context.Background(), testCompanyID, testProductID, dto.MovementHistoryQuery{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 5)
	assert.Equal(t, 5, resp.Page.Total)

	for i := 1; i < len(resp.Items); i++ {
		assert.False(t, resp.Items[i].CreatedAt.After(resp.Items[i-1].CreatedAt),
			"el historial debe ir de más reciente a más antiguo")
	}
	assert.Equal(t, "mov-004", resp.Items[0].ID)

	// Leído en orden inverso (antiguo a reciente) la cadena de saldos cierra
	for i := len(resp.Items) - 1; i > 0; i-- {
		older, newer := resp.Items[i], resp.Items[i-1]
		assert.True(t, newer.BalanceBefore.Equal(older.BalanceAfter))
	}
}

func TestMovementHistory_PaginacionConsistente(t *testing.T) {
	store := newScenario()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	seedMovements(store, testProductID, warehouseNorte, 7, base)
	uc := newHistoryUseCase(store)
	ctx := context.Background()

	page1, err := uc.History(ctx, testCompanyID, testProductID, dto.MovementHistoryQuery{
		PageRequest: dto.PageRequest{Limit: 3, Offset: 0},
	})
	require.NoError(t, err)
	page2, err := uc.History(ctx, testCompanyID, testProductID, dto.MovementHistoryQuery{
		PageRequest: dto.PageRequest{Limit: 3, Offset: 3},
	})
	require.NoError(t, err)

	assert.Len(t, page1.Items, 3)
	assert.Len(t, page2.Items, 3)
	assert.Equal(t, 7, page1.Page.Total)
	// La segunda página continúa exactamente donde terminó la primera
	last := page1.Items[len(page1.Items)-1]
	assert.True(t, page2.Items[0].BalanceAfter.Equal(last.BalanceBefore))
}

func TestMovementHistory_FiltroPorTipoYBodega(t *testing.T) {
	store := newScenario()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	seedMovements(store, testProductID, warehouseNorte, 3, base)
	store.movements = append(store.movements, entity.StockMovement{
		ID: "mov-sale", CompanyID: testCompanyID, ProductID: testProductID,
		WarehouseID: warehouseSur, Type: entity.MovementTypeSale,
		Quantity: dec("-1"), BalanceBefore: dec("1"), BalanceAfter: dec("0"),
		PerformedBy: testUserID, CreatedAt: base.Add(time.Hour),
	})
	uc := newHistoryUseCase(store)
	ctx := context.Background()

	byType, err := uc.History(ctx, testCompanyID, testProductID, dto.MovementHistoryQuery{Type: "sale"})
	require.NoError(t, err)
	require.Len(t, byType.Items, 1)
	assert.Equal(t, "mov-sale", byType.Items[0].ID)

	byWarehouse, err := uc.History(ctx, testCompanyID, testProductID, dto.MovementHistoryQuery{WarehouseID: warehouseNorte})
	require.NoError(t, err)
	assert.Len(t, byWarehouse.Items, 3)
}

func TestMovementHistory_FiltroPorFechas(t *testing.T) {
	store := newScenario()
	seedMovements(store, testProductID, warehouseNorte, 1, time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC))
	seedMovements(store, testProductID, warehouseNorte, 1, time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC))
	uc := newHistoryUseCase(store)

	resp, err := uc.History(context.Background(), testCompanyID, testProductID, dto.MovementHistoryQuery{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-15", // inclusivo hasta fin de día
	})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
}

func TestMovementHistory_FechaInvalida(t *testing.T) {
	store := newScenario()
	uc := newHistoryUseCase(store)

	_, err := uc.History(context.Background(), testCompanyID, testProductID, dto.MovementHistoryQuery{
		StartDate: "15/03/2026",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementHistory_TipoInvalido(t *testing.T) {
	store := newScenario()
	uc := newHistoryUseCase(store)

	_, err := uc.History(context.Background(), testCompanyID, testProductID, dto.MovementHistoryQuery{Type: "salida"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementHistory_RespetaEmpresa(t *testing.T) {
	store := newScenario()
	uc := newHistoryUseCase(store)

	_, err := uc.History(context.Background(), otherCompanyID, testProductID, dto.MovementHistoryQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStock_DesglosePorBodega(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("8"))
	seedStock(store, testProductID, warehouseSur, dec("4"))
	uc := newHistoryUseCase(store)

	resp, err := uc.Stock(context.Background(), testCompanyID, testProductID)
	require.NoError(t, err)
	assert.True(t, resp.CurrentStock.Equal(dec("12")))
	require.Len(t, resp.Warehouses, 2)

	var sum = dec("0")
	for _, w := range resp.Warehouses {
		sum = sum.Add(w.Quantity)
	}
	// El saldo global coincide con la suma de las bodegas
	assert.True(t, sum.Equal(resp.CurrentStock))
}
