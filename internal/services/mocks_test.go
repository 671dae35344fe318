package services

import (
	"errors"
	"sync"
	"time"

	"burger_pos/internal/models"
	"burger_pos/internal/persistence"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// MockPersistence delegates to a real persistence service unless a Func
// override is set.
type MockPersistence struct {
	persistence.Service
	SaveOrdersFunc func(orders []models.Order) error
	AppendSaleFunc func(order models.Order) error
	ResetDayFunc   func(exportPerformed bool) error
	NextTicketFunc func() (int, string, error)
	LoadDayFunc    func() (*persistence.DayState, error)
}

func (m *MockPersistence) NextTicket() (int, string, error) {
	if m.NextTicketFunc != nil {
		return m.NextTicketFunc()
	}
	return m.Service.NextTicket()
}

func (m *MockPersistence) LoadDay() (*persistence.DayState, error) {
	if m.LoadDayFunc != nil {
		return m.LoadDayFunc()
	}
	return m.Service.LoadDay()
}

func (m *MockPersistence) SaveOrders(orders []models.Order) error {
	if m.SaveOrdersFunc != nil {
		return m.SaveOrdersFunc(orders)
	}
	return m.Service.SaveOrders(orders)
}

func (m *MockPersistence) AppendSale(order models.Order) error {
	if m.AppendSaleFunc != nil {
		return m.AppendSaleFunc(order)
	}
	return m.Service.AppendSale(order)
}

func (m *MockPersistence) ResetDay(exportPerformed bool) error {
	if m.ResetDayFunc != nil {
		return m.ResetDayFunc(exportPerformed)
	}
	return m.Service.ResetDay(exportPerformed)
}

type MockExporter struct {
	ExportFunc func(snap models.ClosingSnapshot) (*models.ExportArtifact, error)
	Snapshots  []models.ClosingSnapshot
}

func (m *MockExporter) Export(snap models.ClosingSnapshot) (*models.ExportArtifact, error) {
	m.Snapshots = append(m.Snapshots, snap)
	if m.ExportFunc != nil {
		return m.ExportFunc(snap)
	}
	return &models.ExportArtifact{Filename: "closing.xlsx", ContentType: "application/octet-stream", Data: []byte("xlsx")}, nil
}

type MockUploader struct {
	UploadFunc func(artifact *models.ExportArtifact) error
	Uploaded   []string
}

func (m *MockUploader) Upload(artifact *models.ExportArtifact) error {
	m.Uploaded = append(m.Uploaded, artifact.Filename)
	if m.UploadFunc != nil {
		return m.UploadFunc(artifact)
	}
	return nil
}

type MockNotifier struct {
	SendFunc func(phone, message string) error
	Messages []string
}

func (m *MockNotifier) SendTextMessage(phone, message string) error {
	m.Messages = append(m.Messages, phone+"|"+message)
	if m.SendFunc != nil {
		return m.SendFunc(phone, message)
	}
	return nil
}

type MockClosingRepository struct {
	CreateFunc func(closing *models.DailyClosing) error
	closings   []models.DailyClosing
}

func (m *MockClosingRepository) Create(closing *models.DailyClosing) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(closing)
	}
	closing.ID = uint(len(m.closings) + 1)
	m.closings = append(m.closings, *closing)
	return nil
}

func (m *MockClosingRepository) GetByID(id uint) (*models.DailyClosing, error) {
	for _, c := range m.closings {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockClosingRepository) GetByDateRange(startDate, endDate time.Time) ([]models.DailyClosing, error) {
	var out []models.DailyClosing
	for _, c := range m.closings {
		if !c.ClosedAt.Before(startDate) && !c.ClosedAt.After(endDate) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockClosingRepository) GetAll() ([]models.DailyClosing, error) {
	return m.closings, nil
}

// fixture bundles an order service over an in-memory store.
type fixture struct {
	kv     *persistence.MemoryStore
	store  *MockPersistence
	clock  *testClock
	orders OrderService
}

func newFixture() *fixture {
	kv := persistence.NewMemoryStore()
	clock := newTestClock()
	store := &MockPersistence{
		Service: persistence.NewService(kv, persistence.Options{Namespace: "test", Location: time.UTC, Now: clock.Now}, nil),
	}
	return &fixture{
		kv:     kv,
		store:  store,
		clock:  clock,
		orders: NewOrderService(store, OrderServiceOptions{Now: clock.Now}, nil),
	}
}

func flatBurger(price int64) models.Product {
	return models.Product{ID: "b1", Name: "Burger", Category: models.CategoryBurger, Price: price}
}

func lineOf(p models.Product, mods ...models.Modifier) models.OrderLine {
	return models.OrderLine{Product: p, Modifiers: mods, Quantity: 1}
}

func extra(name string, price int64) models.Modifier {
	return models.Modifier{Name: name, Kind: models.ModifierAdd, Price: price}
}
