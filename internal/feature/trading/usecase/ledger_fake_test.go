package usecase

import (
	"context"
	"sort"
	"sync"

	stockdomain "brokerage_backend/internal/feature/stocks/domain"
	stockentity "brokerage_backend/internal/feature/stocks/domain/entity"
	"brokerage_backend/internal/feature/trading/domain"
	"brokerage_backend/internal/feature/trading/domain/entity"
)

// memState is the content of memLedger. WithinTx works on a clone and
// publishes it on success, so a failed fn leaves the committed state intact.
type memState struct {
	balances    map[uint]float64
	stocks      map[uint]stockentity.Stock
	holdings    map[uint]entity.Holding
	txs         []entity.Transaction
	nextHolding uint
	nextTx      uint
}

func (s *memState) clone() *memState {
	c := &memState{
		balances:    make(map[uint]float64, len(s.balances)),
		stocks:      make(map[uint]stockentity.Stock, len(s.stocks)),
		holdings:    make(map[uint]entity.Holding, len(s.holdings)),
		txs:         append([]entity.Transaction(nil), s.txs...),
		nextHolding: s.nextHolding,
		nextTx:      s.nextTx,
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	for k, v := range s.holdings {
		c.holdings[k] = v
	}
	return c
}

// memLedger is an in-memory LedgerStore. It takes no row locks, so callers
// racing on the same user would lose updates without the engine's own locking.
type memLedger struct {
	mu    sync.Mutex
	state *memState

	// failAppend, when set, is returned by AppendTransaction.
	failAppend error
}

var _ LedgerStore = (*memLedger)(nil)

func newMemLedger() *memLedger {
	return &memLedger{state: &memState{
		balances: map[uint]float64{},
		stocks:   map[uint]stockentity.Stock{},
		holdings: map[uint]entity.Holding{},
	}}
}

func (m *memLedger) addUser(id uint, balance float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.balances[id] = balance
}

func (m *memLedger) addStock(s stockentity.Stock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.stocks[s.ID] = s
}

func (m *memLedger) removeStock(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state.stocks, id)
}

func (m *memLedger) balance(userID uint) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.balances[userID]
}

func (m *memLedger) holding(userID, stockID uint) (entity.Holding, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.state.holdings {
		if h.UserID == userID && h.StockID == stockID {
			return h, true
		}
	}
	return entity.Holding{}, false
}

func (m *memLedger) transactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.txs)
}

func (m *memLedger) WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error {
	m.mu.Lock()
	work := m.state.clone()
	failAppend := m.failAppend
	m.mu.Unlock()

	if err := fn(&memTx{s: work, failAppend: failAppend}); err != nil {
		return err
	}

	m.mu.Lock()
	m.state = work
	m.mu.Unlock()
	return nil
}

func (m *memLedger) ListHoldings(ctx context.Context, userID uint) ([]entity.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Holding
	for _, h := range m.state.holdings {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StockID < out[j].StockID })
	return out, nil
}

func (m *memLedger) ListTransactions(ctx context.Context, userID uint) ([]entity.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Transaction
	for _, t := range m.state.txs {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memLedger) FindStocks(ctx context.Context, ids []uint) (map[uint]stockentity.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uint]stockentity.Stock, len(ids))
	for _, id := range ids {
		if s, ok := m.state.stocks[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

type memTx struct {
	s          *memState
	failAppend error
}

func (t *memTx) LockAccount(userID uint) (float64, error) {
	b, ok := t.s.balances[userID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	return b, nil
}

func (t *memTx) FindStock(stockID uint) (*stockentity.Stock, error) {
	s, ok := t.s.stocks[stockID]
	if !ok {
		return nil, stockdomain.ErrStockNotFound
	}
	return &s, nil
}

func (t *memTx) LockHolding(userID, stockID uint) (*entity.Holding, error) {
	for _, h := range t.s.holdings {
		if h.UserID == userID && h.StockID == stockID {
			h := h
			return &h, nil
		}
	}
	return nil, domain.ErrHoldingNotFound
}

func (t *memTx) SetBalance(userID uint, balance float64) error {
	t.s.balances[userID] = balance
	return nil
}

func (t *memTx) SaveHolding(h *entity.Holding) error {
	if h.ID == 0 {
		t.s.nextHolding++
		h.ID = t.s.nextHolding
	}
	t.s.holdings[h.ID] = *h
	return nil
}

func (t *memTx) DeleteHolding(id uint) error {
	delete(t.s.holdings, id)
	return nil
}

func (t *memTx) AppendTransaction(tr *entity.Transaction) error {
	if t.failAppend != nil {
		return t.failAppend
	}
	t.s.nextTx++
	tr.ID = t.s.nextTx
	t.s.txs = append(t.s.txs, *tr)
	return nil
}
