// Package persistence owns every durable piece of till state: the active
// order list, the day's sales ledger, the ticket counter and the business
// date. Each read first applies the day-rollover rule.
package persistence

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"burger_pos/internal/models"

	"go.uber.org/zap"
)

// BusinessDateLayout matches the day/month/year locale string the till has
// always stored (no zero padding).
const BusinessDateLayout = "2/1/2006"

// DayState is everything stored for one business day, read after a single
// rollover check.
type DayState struct {
	Date   string
	Orders []models.Order
	Sales  []models.Order
}

type Service interface {
	LoadOrders() ([]models.Order, error)
	LoadDay() (*DayState, error)
	CurrentDay() (string, error)
	SaveOrders(orders []models.Order) error
	NextTicketNumber() (int, error)
	NextTicket() (number int, date string, err error)
	ResetDay(exportPerformed bool) error
	LoadSales() ([]models.Order, error)
	AppendSale(order models.Order) error
	BusinessDate() string
}

type Options struct {
	Namespace string
	Location  *time.Location
	Now       func() time.Time
}

type service struct {
	kv     KeyValueStore
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger

	keyOrders  string
	keyCounter string
	keyDate    string
	keySales   string
}

func NewService(kv KeyValueStore, opts Options, logger *zap.Logger) Service {
	if opts.Namespace == "" {
		opts.Namespace = "pos"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		kv:         kv,
		loc:        opts.Location,
		now:        opts.Now,
		logger:     logger,
		keyOrders:  opts.Namespace + ":orders",
		keyCounter: opts.Namespace + ":ticket_counter",
		keyDate:    opts.Namespace + ":business_date",
		keySales:   opts.Namespace + ":sales",
	}
}

// BusinessDate formats t as a calendar date in loc.
func BusinessDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(BusinessDateLayout)
}

// IsNewDay reports whether the stored date differs from the date of now.
func IsNewDay(stored string, now time.Time, loc *time.Location) bool {
	return stored != BusinessDate(now, loc)
}

func (s *service) BusinessDate() string {
	return BusinessDate(s.now(), s.loc)
}

// currentDay discards yesterday's orders, sales and counter when the
// calendar date moved since the last recorded one, and returns the business
// date now stored.
func (s *service) currentDay() (string, error) {
	stored, _, err := s.kv.Get(s.keyDate)
	if err != nil {
		return "", fmt.Errorf("failed to read business date: %w", err)
	}
	if !IsNewDay(stored, s.now(), s.loc) {
		return stored, nil
	}

	today := s.BusinessDate()
	s.logger.Info("new business day detected, resetting orders and ticket counter",
		zap.String("previous_date", stored),
		zap.String("today", today))
	if err := s.reset(today); err != nil {
		return "", err
	}
	return today, nil
}

func (s *service) reset(today string) error {
	if err := s.kv.Delete(s.keyOrders, s.keySales); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}
	if err := s.kv.Set(s.keyCounter, "0"); err != nil {
		return fmt.Errorf("failed to reset ticket counter: %w", err)
	}
	if err := s.kv.Set(s.keyDate, today); err != nil {
		return fmt.Errorf("failed to store business date: %w", err)
	}
	return nil
}

func (s *service) LoadOrders() ([]models.Order, error) {
	if _, err := s.currentDay(); err != nil {
		return nil, err
	}
	return s.readList(s.keyOrders)
}

// LoadDay reads the active orders and the sales ledger of the same day.
func (s *service) LoadDay() (*DayState, error) {
	date, err := s.currentDay()
	if err != nil {
		return nil, err
	}
	orders, err := s.readList(s.keyOrders)
	if err != nil {
		return nil, err
	}
	sales, err := s.readList(s.keySales)
	if err != nil {
		return nil, err
	}
	return &DayState{Date: date, Orders: orders, Sales: sales}, nil
}

// CurrentDay applies the rollover rule and returns the stored business date.
func (s *service) CurrentDay() (string, error) {
	return s.currentDay()
}

func (s *service) SaveOrders(orders []models.Order) error {
	return s.writeList(s.keyOrders, orders)
}

func (s *service) LoadSales() ([]models.Order, error) {
	if _, err := s.currentDay(); err != nil {
		return nil, err
	}
	return s.readList(s.keySales)
}

// AppendSale records order in the ledger of the stored business day. It
// does not apply the rollover, so a sale never lands in a day its order did
// not belong to. Recording the same order id again replaces the entry.
func (s *service) AppendSale(order models.Order) error {
	_, ok, err := s.kv.Get(s.keyDate)
	if err != nil {
		return fmt.Errorf("failed to read business date: %w", err)
	}
	if !ok {
		if _, err := s.currentDay(); err != nil {
			return err
		}
	}

	sales, err := s.readList(s.keySales)
	if err != nil {
		return err
	}
	for i := range sales {
		if sales[i].ID == order.ID {
			sales[i] = order
			return s.writeList(s.keySales, sales)
		}
	}
	return s.writeList(s.keySales, append(sales, order))
}

func (s *service) NextTicketNumber() (int, error) {
	n, _, err := s.NextTicket()
	return n, err
}

// NextTicket increments and stores the counter in one step, so a number is
// never handed out twice even if the caller never saves. date is the
// business day the number belongs to.
func (s *service) NextTicket() (int, string, error) {
	date, err := s.currentDay()
	if err != nil {
		return 0, "", err
	}

	n, err := s.kv.Incr(s.keyCounter)
	if err == nil {
		return int(n), date, nil
	}

	raw, ok, getErr := s.kv.Get(s.keyCounter)
	if getErr != nil || !ok {
		return 0, "", fmt.Errorf("failed to increment ticket counter: %w", err)
	}
	if _, parseErr := strconv.Atoi(raw); parseErr == nil {
		return 0, "", fmt.Errorf("failed to increment ticket counter: %w", err)
	}

	s.logger.Warn("ticket counter is corrupt, restarting at 1", zap.String("value", raw))
	if err := s.kv.Set(s.keyCounter, "1"); err != nil {
		return 0, "", fmt.Errorf("failed to repair ticket counter: %w", err)
	}
	return 1, date, nil
}

// ResetDay clears orders, sales and the counter and stamps today's date.
// exportPerformed distinguishes an operator close from a silent rollover;
// the effect on storage is the same.
func (s *service) ResetDay(exportPerformed bool) error {
	today := s.BusinessDate()
	if err := s.reset(today); err != nil {
		return err
	}
	s.logger.Info("business day reset",
		zap.String("date", today),
		zap.Bool("export_performed", exportPerformed))
	return nil
}

// readList treats missing or unparsable data as an empty list.
func (s *service) readList(key string) ([]models.Order, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return []models.Order{}, nil
	}

	var orders []models.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		s.logger.Error("stored orders are unreadable, treating as empty",
			zap.String("key", key), zap.Error(err))
		return []models.Order{}, nil
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *service) writeList(key string, orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to marshal orders: %w", err)
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
