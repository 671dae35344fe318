package services

import (
	"time"

	"burger_pos/internal/models"
)

const DefaultLateThresholdMinutes = 15

type KitchenCard struct {
	models.Order
	ElapsedMinutes int  `json:"elapsed_minutes"`
	Overdue        bool `json:"overdue"`
}

// KitchenBoard is the two-lane kitchen view: everything still cooking and
// everything waiting for pickup.
type KitchenBoard struct {
	InProgress           []KitchenCard `json:"in_progress"`
	Ready                []KitchenCard `json:"ready"`
	LateThresholdMinutes int           `json:"late_threshold_minutes"`
	GeneratedAt          time.Time     `json:"generated_at"`
}

type KitchenService interface {
	Board() (*KitchenBoard, error)
}

type kitchenService struct {
	orders    OrderService
	threshold int
	now       func() time.Time
}

func NewKitchenService(orders OrderService, lateThresholdMinutes int, now func() time.Time) KitchenService {
	if lateThresholdMinutes <= 0 {
		lateThresholdMinutes = DefaultLateThresholdMinutes
	}
	if now == nil {
		now = time.Now
	}
	return &kitchenService{orders: orders, threshold: lateThresholdMinutes, now: now}
}

// Board re-reads the active orders on every call, so elapsed minutes and
// the day-rollover check are always current.
func (s *kitchenService) Board() (*KitchenBoard, error) {
	orders, err := s.orders.ListActive()
	if err != nil {
		return nil, err
	}

	now := s.now()
	board := &KitchenBoard{
		InProgress:           []KitchenCard{},
		Ready:                []KitchenCard{},
		LateThresholdMinutes: s.threshold,
		GeneratedAt:          now,
	}
	for _, o := range orders {
		card := KitchenCard{
			Order:          o,
			ElapsedMinutes: models.ElapsedMinutes(o.CreatedAt, now),
			Overdue:        models.IsOverdue(o.CreatedAt, now, s.threshold),
		}
		if o.Status == models.OrderReady {
			board.Ready = append(board.Ready, card)
		} else {
			board.InProgress = append(board.InProgress, card)
		}
	}
	return board, nil
}
