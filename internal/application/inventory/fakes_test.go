package inventory_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/application/inventory"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso del motor de inventario.
//
// El fakeTxRunner emula la semántica real de la BD: toma un candado global
// durante toda la transacción (serialización, como el SELECT FOR UPDATE) y
// restaura un snapshot si la función falla (rollback todo-o-nada).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu         sync.Mutex
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	stocks     map[string]entity.Stock // clave productID|warehouseID
	movements  []entity.StockMovement
	transfers  map[string]entity.StockTransfer
	seqs       map[string]int // clave companyID|kind|año
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   map[string]entity.Product{},
		warehouses: map[string]entity.Warehouse{},
		stocks:     map[string]entity.Stock{},
		transfers:  map[string]entity.StockTransfer{},
		seqs:       map[string]int{},
	}
}

func stockKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.warehouses {
		snap.warehouses[k] = v
	}
	for k, v := range s.stocks {
		snap.stocks[k] = v
	}
	snap.movements = append([]entity.StockMovement(nil), s.movements...)
	for k, v := range s.transfers {
		tr := v
		tr.Items = append([]entity.StockTransferItem(nil), v.Items...)
		snap.transfers[k] = tr
	}
	for k, v := range s.seqs {
		snap.seqs[k] = v
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.warehouses = snap.warehouses
	s.stocks = snap.stocks
	s.movements = snap.movements
	s.transfers = snap.transfers
	s.seqs = snap.seqs
}

// lockIfNeeded toma el candado sólo para repos usados fuera de una transacción.
func (s *fakeStore) lockIfNeeded(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ─── repos ───────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	store *fakeStore
	inTx  bool
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	defer r.store.lockIfNeeded(r.inTx)()
	r.store.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	for _, p := range r.store.products {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	defer r.store.lockIfNeeded(r.inTx)()
	r.store.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	defer r.store.lockIfNeeded(r.inTx)()
	p := r.store.products[productID]
	p.Cost = cost
	r.store.products[productID] = p
	return nil
}

func (r *fakeProductRepo) SetCurrentStock(productID string, stock decimal.Decimal) error {
	defer r.store.lockIfNeeded(r.inTx)()
	p := r.store.products[productID]
	p.CurrentStock = stock
	r.store.products[productID] = p
	return nil
}

func (r *fakeProductRepo) AddToCurrentStock(productID string, delta decimal.Decimal) error {
	defer r.store.lockIfNeeded(r.inTx)()
	p := r.store.products[productID]
	p.CurrentStock = p.CurrentStock.Add(delta)
	r.store.products[productID] = p
	return nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, params repository.ProductListParams) ([]*entity.Product, int, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.CompanyID == companyID {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) ListBelowMinStock(companyID string, limit, offset int) ([]*entity.Product, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.CompanyID == companyID && p.CurrentStock.LessThan(p.MinStock) {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	defer r.store.lockIfNeeded(r.inTx)()
	delete(r.store.products, id)
	return nil
}

type fakeWarehouseRepo struct {
	store *fakeStore
}

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	defer r.store.lockIfNeeded(false)()
	r.store.warehouses[w.ID] = *w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	defer r.store.lockIfNeeded(false)()
	w, ok := r.store.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := w
	return &cp, nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	defer r.store.lockIfNeeded(false)()
	r.store.warehouses[w.ID] = *w
	return nil
}

func (r *fakeWarehouseRepo) ListByCompany(companyID string, params repository.WarehouseListParams) ([]*entity.Warehouse, int, error) {
	return nil, 0, nil
}

func (r *fakeWarehouseRepo) Delete(id string) error {
	defer r.store.lockIfNeeded(false)()
	delete(r.store.warehouses, id)
	return nil
}

type fakeStockRepo struct {
	store *fakeStore
	inTx  bool
}

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	s, ok := r.store.stocks[stockKey(productID, warehouseID)]
	if !ok {
		return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
	}
	cp := s
	return &cp, nil
}

// GetForUpdate materializa la fila en cero si no existe, igual que el
// repositorio real: el bloqueo por fila necesita una fila que bloquear.
func (r *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	key := stockKey(productID, warehouseID)
	s, ok := r.store.stocks[key]
	if !ok {
		s = entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero, UpdatedAt: time.Now()}
		r.store.stocks[key] = s
	}
	cp := s
	return &cp, nil
}

func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	defer r.store.lockIfNeeded(r.inTx)()
	r.store.stocks[stockKey(stock.ProductID, stock.WarehouseID)] = *stock
	return nil
}

func (r *fakeStockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	var out []*entity.Stock
	for _, s := range r.store.stocks {
		if s.ProductID == productID {
			cp := s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, nil
}

type fakeMovementRepo struct {
	store *fakeStore
	inTx  bool
}

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	defer r.store.lockIfNeeded(r.inTx)()
	r.store.movements = append(r.store.movements, *m)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	for _, m := range r.store.movements {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, filters repository.MovementFilters, limit, offset int) ([]*entity.StockMovement, int, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	var all []entity.StockMovement
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			continue
		}
		if filters.Type != "" && m.Type != filters.Type {
			continue
		}
		if filters.WarehouseID != "" && m.WarehouseID != filters.WarehouseID {
			continue
		}
		if filters.From != nil && m.CreatedAt.Before(*filters.From) {
			continue
		}
		if filters.To != nil && m.CreatedAt.After(*filters.To) {
			continue
		}
		all = append(all, m)
	}
	// Más recientes primero, como el repositorio real
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]*entity.StockMovement, 0, len(all))
	for i := range all {
		cp := all[i]
		out = append(out, &cp)
	}
	return out, total, nil
}

func (r *fakeMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

type fakeTransferRepo struct {
	store *fakeStore
	inTx  bool
}

var _ repository.StockTransferRepository = (*fakeTransferRepo)(nil)

func (r *fakeTransferRepo) Create(tr *entity.StockTransfer) error {
	defer r.store.lockIfNeeded(r.inTx)()
	cp := *tr
	cp.Items = append([]entity.StockTransferItem(nil), tr.Items...)
	r.store.transfers[tr.ID] = cp
	return nil
}

func (r *fakeTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	tr, ok := r.store.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := tr
	return &cp, nil
}

func (r *fakeTransferRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockTransfer, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	var out []*entity.StockTransfer
	for _, tr := range r.store.transfers {
		if tr.CompanyID == companyID {
			cp := tr
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSequenceRepo struct {
	store *fakeStore
	inTx  bool
}

var _ repository.SequenceRepository = (*fakeSequenceRepo)(nil)

func (r *fakeSequenceRepo) Next(companyID, kind string, year int) (int, error) {
	defer r.store.lockIfNeeded(r.inTx)()
	key := fmt.Sprintf("%s|%s|%d", companyID, kind, year)
	r.store.seqs[key]++
	return r.store.seqs[key], nil
}

// ─── tx runner ───────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	store *fakeStore
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)
var _ inventory.TransferTxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	err := fn(
		&fakeMovementRepo{store: r.store, inTx: true},
		&fakeStockRepo{store: r.store, inTx: true},
		&fakeProductRepo{store: r.store, inTx: true},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	transferRepo repository.StockTransferRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	err := fn(
		&fakeMovementRepo{store: r.store, inTx: true},
		&fakeStockRepo{store: r.store, inTx: true},
		&fakeProductRepo{store: r.store, inTx: true},
		&fakeTransferRepo{store: r.store, inTx: true},
		&fakeSequenceRepo{store: r.store, inTx: true},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// ─── escenario base ──────────────────────────────────────────────────────────

const (
	testCompanyID   = "11111111-1111-1111-1111-111111111111"
	otherCompanyID  = "22222222-2222-2222-2222-222222222222"
	testUserID      = "33333333-3333-3333-3333-333333333333"
	testProductID   = "44444444-4444-4444-4444-444444444444"
	testProductID2  = "55555555-5555-5555-5555-555555555555"
	warehouseNorte  = "66666666-6666-6666-6666-666666666666"
	warehouseSur    = "77777777-7777-7777-7777-777777777777"
	otherProductID  = "88888888-8888-8888-8888-888888888888"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// newScenario crea un store con una empresa, dos bodegas y dos productos.
func newScenario() *fakeStore {
	store := newFakeStore()
	now := time.Now()
	store.products[testProductID] = entity.Product{
		ID: testProductID, CompanyID: testCompanyID, SKU: "SKU-001", Name: "Café Molido 500g",
		UnitMeasure: "und", Price: dec("25000"), Cost: dec("15000"),
		CurrentStock: decimal.Zero, MinStock: dec("10"), Status: "active",
		CreatedAt: now, UpdatedAt: now,
	}
	store.products[testProductID2] = entity.Product{
		ID: testProductID2, CompanyID: testCompanyID, SKU: "SKU-002", Name: "Panela Orgánica",
		UnitMeasure: "und", Price: dec("8000"), Cost: dec("5000"),
		CurrentStock: decimal.Zero, MinStock: dec("5"), Status: "active",
		CreatedAt: now, UpdatedAt: now,
	}
	store.products[otherProductID] = entity.Product{
		ID: otherProductID, CompanyID: otherCompanyID, SKU: "SKU-X", Name: "Producto Ajeno",
		UnitMeasure: "und", Status: "active", CreatedAt: now, UpdatedAt: now,
	}
	store.warehouses[warehouseNorte] = entity.Warehouse{
		ID: warehouseNorte, CompanyID: testCompanyID, Code: "BOD-N", Name: "Bodega Norte", IsActive: true,
	}
	store.warehouses[warehouseSur] = entity.Warehouse{
		ID: warehouseSur, CompanyID: testCompanyID, Code: "BOD-S", Name: "Bodega Sur", IsActive: true,
	}
	return store
}

// seedStock fija saldo inicial en una bodega y lo refleja en el saldo global.
func seedStock(store *fakeStore, productID, warehouseID string, qty decimal.Decimal) {
	store.stocks[stockKey(productID, warehouseID)] = entity.Stock{
		ProductID: productID, WarehouseID: warehouseID, Quantity: qty, UpdatedAt: time.Now(),
	}
	p := store.products[productID]
	p.CurrentStock = p.CurrentStock.Add(qty)
	store.products[productID] = p
}
