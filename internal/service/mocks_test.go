package service

import (
	"context"
	"errors"
	"sync"

	"pixer-marketplace/internal/client"
	"pixer-marketplace/internal/model"

	"gorm.io/gorm"
)

// callLog records cross-mock call order so tests can assert sequencing,
// e.g. that the payment call happens before any acquisition write.
type callLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *callLog) add(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func (l *callLog) indexOf(entry string) int {
	for i, e := range l.all() {
		if e == entry {
			return i
		}
	}
	return -1
}

type mockProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile
	log      *callLog
	err      error
}

func (m *mockProfileRepo) FindByID(_ context.Context, userID string) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfileRepo) Ensure(_ context.Context, profile *model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[profile.ID]; !ok {
		m.profiles[profile.ID] = profile
	}
	return nil
}

func (m *mockProfileRepo) SetFirstOrderFlag(_ context.Context, _ *gorm.DB, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.log.add("profiles.SetFirstOrderFlag")
	p, ok := m.profiles[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.HasMadeFirstOrder = true
	return nil
}

type mockAcquisitionRepo struct {
	mu   sync.Mutex
	rows []*model.AcquiredProduct
	log  *callLog
	err  error
}

func (m *mockAcquisitionRepo) CreateMany(_ context.Context, _ *gorm.DB, rows []*model.AcquiredProduct) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.log.add("acquisitions.CreateMany")
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *mockAcquisitionRepo) ListByUser(_ context.Context, userID string) ([]*model.AcquiredProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.AcquiredProduct
	for _, row := range m.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

type mockGiftRepo struct {
	mu    sync.Mutex
	gifts []*model.Gift
	log   *callLog
	err   error
}

func (m *mockGiftRepo) Create(_ context.Context, _ *gorm.DB, gift *model.Gift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.log.add("gifts.Create")
	m.gifts = append(m.gifts, gift)
	return nil
}

func (m *mockGiftRepo) ListByUser(_ context.Context, userID string) ([]*model.Gift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Gift
	for _, g := range m.gifts {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockGiftRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	gifts, _ := m.ListByUser(context.Background(), userID)
	return int64(len(gifts)), nil
}

type mockOrderRepo struct {
	mu     sync.Mutex
	orders []*model.Order
	items  []*model.OrderItem
	log    *callLog
}

func (m *mockOrderRepo) Create(_ context.Context, _ *gorm.DB, order *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log.add("orders.Create")
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockOrderRepo) CreateOrderItems(_ context.Context, _ *gorm.DB, items []*model.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, items...)
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, orderID string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID string) ([]*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type mockGatewayRepo struct {
	rows map[string]*model.PaymentGateway
}

func (m *mockGatewayRepo) Seed(context.Context) error {
	return nil
}

func (m *mockGatewayRepo) FindByName(_ context.Context, name string) (*model.PaymentGateway, error) {
	row, ok := m.rows[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (m *mockGatewayRepo) ListEnabled(context.Context) ([]*model.PaymentGateway, error) {
	var out []*model.PaymentGateway
	for _, row := range m.rows {
		if row.IsEnabled {
			out = append(out, row)
		}
	}
	return out, nil
}

type mockRazorpayClient struct {
	mu           sync.Mutex
	calls        int
	lastAmount   int64
	lastCurrency string
	lastKeyID    string
	log          *callLog
	err          error
}

func (m *mockRazorpayClient) CreateOrder(_ context.Context, keyID, _ string, amountPaise int64, currency, _ string) (*client.RazorpayOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.log.add("razorpay.CreateOrder")
	m.calls++
	m.lastAmount = amountPaise
	m.lastCurrency = currency
	m.lastKeyID = keyID
	return &client.RazorpayOrder{
		ID:       "order_rzp_test",
		Amount:   amountPaise,
		Currency: currency,
		Status:   "created",
	}, nil
}

type mockBraintreeClient struct {
	mu    sync.Mutex
	calls int
	log   *callLog
	err   error
}

func (m *mockBraintreeClient) ChargeOneTime(_ context.Context, _ string, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.log.add("braintree.ChargeOneTime")
	m.calls++
	return "bt_tx_test", nil
}

var errWriteFailed = errors.New("write failed")
