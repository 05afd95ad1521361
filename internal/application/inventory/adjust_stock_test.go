package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/inventory"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

func newAdjustUseCase(store *fakeStore) *inventory.AdjustStockUseCase {
	return inventory.NewAdjustStockUseCase(
		&fakeTxRunner{store: store},
		&fakeProductRepo{store: store},
		&fakeWarehouseRepo{store: store},
	)
}

func TestAdjustStock_AddEnBodega(t *testing.T) {
	store := newScenario()
	uc := newAdjustUseCase(store)

	resp, err := uc.Adjust(context.Background(), testCompanyID, testUserID, testProductID, dto.AdjustStockRequest{
		Operation:   "add",
		Quantity:    dec("12"),
		WarehouseID: warehouseNorte,
		Reason:      "Conteo inicial",
	})
	require.NoError(t, err)

	// El movimiento registra el antes y el después del alcance ajustado
	assert.True(t, resp.Movement.BalanceBefore.IsZero())
	assert.True(t, resp.Movement.BalanceAfter.Equal(dec("12")))
	assert.True(t, resp.Movement.Quantity.Equal(dec("12")))
	assert.Equal(t, "adjustment", resp.Movement.Type)
	assert.Equal(t, testUserID, resp.Movement.PerformedBy)

	// Saldo por bodega y saldo global denormalizado quedan alineados
	assert.True(t, store.stocks[stockKey(testProductID, warehouseNorte)].Quantity.Equal(dec("12")))
	assert.True(t, store.products[testProductID].CurrentStock.Equal(dec("12")))
	assert.True(t, resp.Product.CurrentStock.Equal(dec("12")))
}

func TestAdjustStock_SubtractSinSaldoRechaza(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("5"))
	uc := newAdjustUseCase(store)

	_, err := uc.Adjust(context.Background(), testCompanyID, testUserID, testProductID, dto.AdjustStockRequest{
		Operation:   "subtract",
		Quantity:    dec("8"),
		WarehouseID: warehouseNorte,
		Reason:      "Merma detectada",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada queda escrito: ni movimiento ni cambio de saldo
	assert.Empty(t, store.movements)
	assert.True(t, store.stocks[stockKey(testProductID, warehouseNorte)].Quantity.Equal(dec("5")))
	assert.True(t, store.products[testProductID].CurrentStock.Equal(dec("5")))
}

func TestAdjustStock_SubtractExactoDejaCero(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("5"))
	uc := newAdjustUseCase(store)

	resp, err := uc.Adjust(context.Background(), testCompanyID, testUserID, testProductID, dto.AdjustStockRequest{
		Operation:   "subtract",
		Quantity:    dec("5"),
		WarehouseID: warehouseNorte,
		Reason:      "Salida total",
	})
	require.NoError(t, err)
	assert.True(t, resp.Movement.BalanceAfter.IsZero())
	assert.True(t, store.stocks[stockKey(testProductID, warehouseNorte)].Quantity.IsZero())
}

func TestAdjustStock_SetRegistraDelta(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("12"))
	uc := newAdjustUseCase(store)

	resp, err := uc.Adjust(context.Background(), testCompanyID, testUserID, testProductID, dto.AdjustStockRequest{
		Operation:   "set",
		Quantity:    dec("20"),
		WarehouseID: warehouseNorte,
		Reason:      "Conteo físico",
	})
	require.NoError(t, err)

	// set 20 sobre saldo 12 registra delta +8, no 20
	assert.True(t, resp.Movement.Quantity.Equal(dec("8")))
	assert.True(t, resp.Movement.BalanceBefore.Equal(dec("12")))
	assert.True(t, resp.Movement.BalanceAfter.Equal(dec("20")))
	assert.True(t, store.products[testProductID].CurrentStock.Equal(dec("20")))
}

func TestAdjustStock_SetACeroEsValido(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("7"))
	uc := newAdjustUseCase(store)

	resp, err := uc.Adjust(context.Background(), testCompanyID, testUserID, testProductID, dto.AdjustStockRequest{
		Operation:   "set",
		Quantity:    decimal.Zero,
		WarehouseID: warehouseNorte,
		Reason:      "Baja total de inventario",
	})
	require.NoError(t, err)
	assert.True(t, resp.Movement.Quantity.Equal(dec("-7")))
	assert.True(t, resp.Movement.BalanceAfter.IsZero())
}

func TestAdjustStock_AlcanceGlobalBloqueaProducto(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("4"))
	uc := newAdjustUseCase(store)

	resp, err := uc.Adjust(context.Background(), testCompanyID, testUserID, testProductID, dto.AdjustStockRequest{
		Operation: "add",
		Quantity:  dec("6"),
		Reason:    "Ajuste global",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Movement.WarehouseID)
	assert.True(t, resp.Movement.BalanceBefore.Equal(dec("4")))
	assert.True(t, resp.Movement.BalanceAfter.Equal(dec("10")))
	assert.True(t, store.products[testProductID].CurrentStock.Equal(dec("10")))
}

func TestAdjustStock_EntradasInvalidas(t *testing.T) {
	store := newScenario()
	uc := newAdjustUseCase(store)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.AdjustStockRequest
	}{
		{"operación desconocida", dto.AdjustStockRequest{Operation: "increment", Quantity: dec("1"), Reason: "x"}},
		{"sin razón", dto.AdjustStockRequest{Operation: "add", Quantity: dec("1")}},
		{"cantidad cero en add", dto.AdjustStockRequest{Operation: "add", Quantity: decimal.Zero, Reason: "x"}},
		{"cantidad negativa en subtract", dto.AdjustStockRequest{Operation: "subtract", Quantity: dec("-3"), Reason: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Adjust(ctx, testCompanyID, testUserID, testProductID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, store.movements)
}

// El producto de otra empresa responde igual que uno inexistente: 404 en
// ambos casos, sin revelar que el recurso existe.
func TestAdjustStock_ProductoDeOtraEmpresa(t *testing.T) {
	store := newScenario()
	uc := newAdjustUseCase(store)

	_, err := uc.Adjust(context.Background(), testCompanyID, testUserID, otherProductID, dto.AdjustStockRequest{
		Operation: "add", Quantity: dec("1"), Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Adjust(context.Background(), testCompanyID, testUserID, "99999999-9999-9999-9999-999999999999", dto.AdjustStockRequest{
		Operation: "add", Quantity: dec("1"), Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos restas concurrentes sobre el mismo alcance se serializan: la segunda
// lee el saldo ya confirmado por la primera y no puede dejar saldo negativo.
func TestAdjustStock_SubtractConcurrenteSeSerializa(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("15"))
	uc := newAdjustUseCase(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Adjust(context.Background(), testCompanyID, testUserID, testProductID, dto.AdjustStockRequest{
				Operation:   "subtract",
				Quantity:    dec("10"),
				WarehouseID: warehouseNorte,
				Reason:      "Despacho",
			})
		}(i)
	}
	wg.Wait()

	var oks, fails int
	for _, err := range errs {
		if err == nil {
			oks++
		} else {
			require.True(t, errors.Is(err, domain.ErrInsufficientStock), "error inesperado: %v", err)
			fails++
		}
	}
	assert.Equal(t, 1, oks)
	assert.Equal(t, 1, fails)
	assert.True(t, store.stocks[stockKey(testProductID, warehouseNorte)].Quantity.Equal(dec("5")))
	assert.True(t, store.products[testProductID].CurrentStock.Equal(dec("5")))
	assert.Len(t, store.movements, 1)
}

// productRepoConHook ejecuta un callback después de la primera lectura, para
// simular un commit ajeno entre la validación inicial y la transacción.
type productRepoConHook struct {
	*fakeProductRepo
	once     sync.Once
	afterGet func()
}

func (r *productRepoConHook) GetByID(id string) (*entity.Product, error) {
	p, err := r.fakeProductRepo.GetByID(id)
	r.once.Do(r.afterGet)
	return p, err
}

// El saldo global de la respuesta se relee dentro de la transacción: si otro
// movimiento confirma entre la validación inicial y la transacción, la
// respuesta debe reflejar el saldo real, no el de la lectura previa.
func TestAdjustStock_RespuestaIncluyeCommitsIntermedios(t *testing.T) {
	store := newScenario()
	seedStock(store, testProductID, warehouseNorte, dec("10"))

	hooked := &productRepoConHook{
		fakeProductRepo: &fakeProductRepo{store: store},
		afterGet: func() {
			// Entrada de 100 unidades confirmada en otra bodega
			store.mu.Lock()
			defer store.mu.Unlock()
			store.stocks[stockKey(testProductID, warehouseSur)] = entity.Stock{
				ProductID: testProductID, WarehouseID: warehouseSur, Quantity: dec("100"), UpdatedAt: time.Now(),
			}
			p := store.products[testProductID]
			p.CurrentStock = p.CurrentStock.Add(dec("100"))
			store.products[testProductID] = p
		},
	}
	uc := inventory.NewAdjustStockUseCase(
		&fakeTxRunner{store: store},
		hooked,
		&fakeWarehouseRepo{store: store},
	)

	resp, err := uc.Adjust(context.Background(), testCompanyID, testUserID, testProductID, dto.AdjustStockRequest{
		Operation:   "add",
		Quantity:    dec("5"),
		WarehouseID: warehouseNorte,
		Reason:      "Entrada por conteo",
	})
	require.NoError(t, err)

	// 10 iniciales + 100 del commit intermedio + 5 del ajuste
	assert.True(t, store.products[testProductID].CurrentStock.Equal(dec("115")))
	assert.True(t, resp.Product.CurrentStock.Equal(dec("115")),
		"la respuesta devuelve %s y el saldo real es 115", resp.Product.CurrentStock)
	assert.True(t, resp.Movement.BalanceBefore.Equal(dec("10")))
	assert.True(t, resp.Movement.BalanceAfter.Equal(dec("15")))
}

// El encadenamiento balance_after(n) == balance_before(n+1) se sostiene a
// través de una secuencia de ajustes sobre el mismo alcance.
func TestAdjustStock_CadenaDeSaldosConsistente(t *testing.T) {
	store := newScenario()
	uc := newAdjustUseCase(store)
	ctx := context.Background()

	steps := []dto.AdjustStockRequest{
		{Operation: "add", Quantity: dec("10"), WarehouseID: warehouseNorte, Reason: "Entrada"},
		{Operation: "subtract", Quantity: dec("4"), WarehouseID: warehouseNorte, Reason: "Salida"},
		{Operation: "set", Quantity: dec("25"), WarehouseID: warehouseNorte, Reason: "Conteo"},
		{Operation: "subtract", Quantity: dec("5"), WarehouseID: warehouseNorte, Reason: "Salida"},
	}
	for _, in := range steps {
		_, err := uc.Adjust(ctx, testCompanyID, testUserID, testProductID, in)
		require.NoError(t, err)
	}

	require.Len(t, store.movements, len(steps))
	for i, m := range store.movements {
		assert.True(t, m.BalanceAfter.Equal(m.BalanceBefore.Add(m.Quantity)),
			"movimiento %d rompe balance_after = balance_before + quantity", i)
		if i > 0 {
			prev := store.movements[i-1]
			assert.True(t, m.BalanceBefore.Equal(prev.BalanceAfter),
				"movimiento %d no encadena con el anterior", i)
		}
	}
	last := store.movements[len(store.movements)-1]
	assert.True(t, last.BalanceAfter.Equal(dec("20")))
	assert.True(t, store.products[testProductID].CurrentStock.Equal(dec("20")))
}
