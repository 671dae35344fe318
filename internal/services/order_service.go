package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"burger_pos/internal/models"
	"burger_pos/internal/persistence"
	"burger_pos/internal/pricing"

	"github.com/lucsky/cuid"
	"go.uber.org/zap"
)

const (
	DefaultCustomerLabel = "Walk-in"

	maxCreateAttempts = 3
)

// OrderService is the only writer of the active order list. Every change is
// written through to persistence before the in-memory list is replaced.
type OrderService interface {
	CreateOrder(lines []models.OrderLine, customer, note string, method models.PaymentMethod) (*models.Order, error)
	GetOrder(id string) (*models.Order, error)
	AdvanceStatus(id string) (*models.Order, error)
	MarkReady(id string) (*models.Order, error)
	MarkDelivered(id string) error
	CancelOrder(id string) error
	ListActive() ([]models.Order, error)
	ListByStatus(status models.OrderStatus) ([]models.Order, error)
	ListRecent() ([]models.Order, error)
	Sales() ([]models.Order, error)
	CloseBusinessDay(export func(sales []models.Order) error) error
	Refresh() error
}

type OrderServiceOptions struct {
	DefaultCustomer string
	Now             func() time.Time
	NewID           func() string
}

type orderService struct {
	store  persistence.Service
	logger *zap.Logger

	defaultCustomer string
	now             func() time.Time
	newID           func() string

	mu     sync.Mutex
	day    string
	orders []models.Order
	sales  []models.Order
}

func NewOrderService(store persistence.Service, opts OrderServiceOptions, logger *zap.Logger) OrderService {
	if opts.DefaultCustomer == "" {
		opts.DefaultCustomer = DefaultCustomerLabel
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = cuid.New
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orderService{
		store:           store,
		logger:          logger,
		defaultCustomer: opts.DefaultCustomer,
		now:             opts.Now,
		newID:           opts.NewID,
		orders:          []models.Order{},
	}
}

func (s *orderService) CreateOrder(lines []models.OrderLine, customer, note string, method models.PaymentMethod) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayment, method)
	}

	priced := make([]models.OrderLine, 0, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if l.ID == "" {
			l.ID = s.newID()
		}
		priced = append(priced, pricing.PriceLine(l))
	}

	customer = strings.TrimSpace(customer)
	if customer == "" {
		customer = s.defaultCustomer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		order, err := s.createLocked(priced, customer, strings.TrimSpace(note), method)
		if !errors.Is(err, ErrDayRolledOver) {
			return order, err
		}
		s.logger.Warn("business day changed while creating order, retrying", zap.Error(err))
		lastErr = err
	}
	return nil, lastErr
}

// createLocked takes the ticket before loading the list, so a rollover
// triggered by the ticket is already reflected in the list it joins.
func (s *orderService) createLocked(lines []models.OrderLine, customer, note string, method models.PaymentMethod) (*models.Order, error) {
	number, day, err := s.store.NextTicket()
	if err != nil {
		return nil, fmt.Errorf("failed to assign ticket number: %w", err)
	}
	if err := s.reloadLocked(); err != nil {
		return nil, err
	}
	if day != s.day {
		return nil, fmt.Errorf("%w: ticket #%d was issued for %s", ErrDayRolledOver, number, day)
	}

	order := models.Order{
		ID:            s.newID(),
		Number:        number,
		Lines:         lines,
		Customer:      customer,
		Note:          note,
		CreatedAt:     s.now(),
		PaymentMethod: method,
		Total:         pricing.OrderTotal(lines),
		Status:        models.OrderPending,
	}

	next := append(cloneOrders(s.orders), order)
	if err := s.commitLocked(next); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.Int("number", order.Number),
		zap.Int64("total", order.Total),
		zap.String("payment_method", string(order.PaymentMethod)))
	return &order, nil
}

func (s *orderService) GetOrder(id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(); err != nil {
		return nil, err
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	order := s.orders[idx]
	return &order, nil
}

// AdvanceStatus moves an order exactly one kitchen step forward.
func (s *orderService) AdvanceStatus(id string) (*models.Order, error) {
	return s.update(id, func(o *models.Order) error {
		next, ok := o.Status.Next()
		if !ok {
			return fmt.Errorf("%w: order #%d is %s", ErrInvalidTransition, o.Number, o.Status)
		}
		o.Status = next
		return nil
	})
}

// MarkReady jumps a pending or preparing order straight to ready.
func (s *orderService) MarkReady(id string) (*models.Order, error) {
	return s.update(id, func(o *models.Order) error {
		if !o.Status.InProgress() {
			return fmt.Errorf("%w: order #%d is %s", ErrInvalidTransition, o.Number, o.Status)
		}
		o.Status = models.OrderReady
		return nil
	})
}

// MarkDelivered consumes a ready order: it leaves the active list for good
// and is recorded in the day's sales. The ledger write is idempotent, so a
// retry after a failed save records the sale once.
func (s *orderService) MarkDelivered(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(); err != nil {
		return err
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	delivered := s.orders[idx]
	if delivered.Status != models.OrderReady {
		return fmt.Errorf("%w: order #%d is %s", ErrInvalidTransition, delivered.Number, delivered.Status)
	}
	delivered.Status = models.OrderDelivered

	if err := s.checkDayLocked(); err != nil {
		return err
	}
	if err := s.store.AppendSale(delivered); err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}
	if err := s.commitLocked(removeAt(s.orders, idx)); err != nil {
		return err
	}

	s.logger.Info("order delivered", zap.String("order_id", id), zap.Int("number", delivered.Number))
	return nil
}

// CancelOrder drops an order the kitchen has not finished. Confirmation is
// the caller's responsibility.
func (s *orderService) CancelOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(); err != nil {
		return err
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	o := s.orders[idx]
	if !o.Status.InProgress() {
		return fmt.Errorf("%w: order #%d is %s", ErrInvalidTransition, o.Number, o.Status)
	}
	if err := s.commitLocked(removeAt(s.orders, idx)); err != nil {
		return err
	}

	s.logger.Info("order cancelled", zap.String("order_id", id), zap.Int("number", o.Number))
	return nil
}

// ListActive returns every active order, oldest first.
func (s *orderService) ListActive() ([]models.Order, error) {
	orders, err := s.current()
	if err != nil {
		return nil, err
	}
	sortOldestFirst(orders)
	return orders, nil
}

func (s *orderService) ListByStatus(status models.OrderStatus) ([]models.Order, error) {
	orders, err := s.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListRecent returns every active order, newest first.
func (s *orderService) ListRecent() ([]models.Order, error) {
	orders, err := s.current()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return orders, nil
}

// Sales returns everything sold today (active plus delivered), newest first.
func (s *orderService) Sales() ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.salesLocked()
}

// CloseBusinessDay hands today's sales to export and resets the day only if
// export succeeds. Orders cannot be created while it runs.
func (s *orderService) CloseBusinessDay(export func(sales []models.Order) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales, err := s.salesLocked()
	if err != nil {
		return err
	}
	if err := export(sales); err != nil {
		return err
	}
	if err := s.store.ResetDay(true); err != nil {
		return fmt.Errorf("failed to reset business day: %w", err)
	}
	s.orders = []models.Order{}
	s.sales = []models.Order{}
	return nil
}

// Refresh re-reads durable state, applying the day-rollover rule.
func (s *orderService) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

func (s *orderService) update(id string, mutate func(o *models.Order) error) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(); err != nil {
		return nil, err
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}

	next := cloneOrders(s.orders)
	from := next[idx].Status
	if err := mutate(&next[idx]); err != nil {
		return nil, err
	}
	if err := s.commitLocked(next); err != nil {
		return nil, err
	}

	order := next[idx]
	s.logger.Info("order status changed",
		zap.String("order_id", id),
		zap.Int("number", order.Number),
		zap.String("from", string(from)),
		zap.String("to", string(order.Status)))
	return &order, nil
}

func (s *orderService) current() ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reloadLocked(); err != nil {
		return nil, err
	}
	return cloneOrders(s.orders), nil
}

// salesLocked merges the active list with the ledger. An order that is in
// both (its delivery was recorded but the list save failed) counts once.
func (s *orderService) salesLocked() ([]models.Order, error) {
	if err := s.reloadLocked(); err != nil {
		return nil, err
	}
	recorded := make(map[string]struct{}, len(s.sales))
	for _, o := range s.sales {
		recorded[o.ID] = struct{}{}
	}
	sales := make([]models.Order, 0, len(s.orders)+len(s.sales))
	for _, o := range s.orders {
		if _, ok := recorded[o.ID]; !ok {
			sales = append(sales, o)
		}
	}
	sales = append(sales, s.sales...)
	sortNewestFirst(sales)
	return sales, nil
}

func (s *orderService) reloadLocked() error {
	state, err := s.store.LoadDay()
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	s.day = state.Date
	s.orders = state.Orders
	s.sales = state.Sales
	return nil
}

// checkDayLocked fails when the business day changed since the last reload;
// the cached list then belongs to a day that no longer exists.
func (s *orderService) checkDayLocked() error {
	day, err := s.store.CurrentDay()
	if err != nil {
		return fmt.Errorf("failed to read business date: %w", err)
	}
	if day != s.day {
		return fmt.Errorf("%w: %s started", ErrDayRolledOver, day)
	}
	return nil
}

// commitLocked persists next and only then adopts it as the cached list.
func (s *orderService) commitLocked(next []models.Order) error {
	if err := s.checkDayLocked(); err != nil {
		return err
	}
	if err := s.store.SaveOrders(next); err != nil {
		return fmt.Errorf("failed to save orders: %w", err)
	}
	s.orders = next
	return nil
}

func (s *orderService) indexLocked(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func cloneOrders(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	copy(out, orders)
	return out
}

func removeAt(orders []models.Order, idx int) []models.Order {
	out := make([]models.Order, 0, len(orders)-1)
	out = append(out, orders[:idx]...)
	return append(out, orders[idx+1:]...)
}

func sortOldestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.Before(orders[j].CreatedAt)
		}
		return orders[i].Number < orders[j].Number
	})
}

func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].Number > orders[j].Number
	})
}
