package services

import (
	"testing"
	"time"
)

func TestKitchenBoard(t *testing.T) {
	f := newFixture()
	kitchen := NewKitchenService(f.orders, 0, f.clock.Now)

	old := mustCreate(t, f.orders, lineOf(flatBurger(6000)))
	f.clock.Advance(10 * time.Minute)
	fresh := mustCreate(t, f.orders, lineOf(flatBurger(6000)))
	ready := mustCreate(t, f.orders, lineOf(flatBurger(6000)))
	f.orders.AdvanceStatus(fresh.ID)
	f.orders.MarkReady(ready.ID)

	f.clock.Advance(6*time.Minute + 30*time.Second)

	board, err := kitchen.Board()
	if err != nil {
		t.Fatalf("Board() error = %v", err)
	}
	if board.LateThresholdMinutes != DefaultLateThresholdMinutes {
		t.Errorf("LateThresholdMinutes = %d, want %d", board.LateThresholdMinutes, DefaultLateThresholdMinutes)
	}
	if len(board.InProgress) != 2 || len(board.Ready) != 1 {
		t.Fatalf("Board() lanes = %d in progress, %d ready; want 2 and 1", len(board.InProgress), len(board.Ready))
	}

	first, second := board.InProgress[0], board.InProgress[1]
	if first.ID != old.ID || second.ID != fresh.ID {
		t.Fatalf("in-progress lane is not oldest first: %s, %s", first.ID, second.ID)
	}
	if first.ElapsedMinutes != 16 || !first.Overdue {
		t.Errorf("old order = %d min overdue=%v, want 16 min overdue", first.ElapsedMinutes, first.Overdue)
	}
	if second.ElapsedMinutes != 6 || second.Overdue {
		t.Errorf("fresh order = %d min overdue=%v, want 6 min on time", second.ElapsedMinutes, second.Overdue)
	}
	if board.Ready[0].ID != ready.ID {
		t.Errorf("ready lane = %s, want %s", board.Ready[0].ID, ready.ID)
	}
}

func TestKitchenBoardThresholdIsExclusive(t *testing.T) {
	f := newFixture()
	kitchen := NewKitchenService(f.orders, 15, f.clock.Now)
	mustCreate(t, f.orders, lineOf(flatBurger(6000)))

	f.clock.Advance(15 * time.Minute)
	board, _ := kitchen.Board()
	if board.InProgress[0].Overdue {
		t.Error("order at exactly 15 minutes flagged overdue")
	}

	f.clock.Advance(time.Minute)
	board, _ = kitchen.Board()
	if !board.InProgress[0].Overdue {
		t.Error("order at 16 minutes not flagged overdue")
	}
}

func TestKitchenBoardEmpty(t *testing.T) {
	f := newFixture()
	board, err := NewKitchenService(f.orders, 20, f.clock.Now).Board()
	if err != nil {
		t.Fatalf("Board() error = %v", err)
	}
	if board.InProgress == nil || board.Ready == nil {
		t.Error("empty lanes must be non-nil so they encode as []")
	}
	if board.LateThresholdMinutes != 20 {
		t.Errorf("LateThresholdMinutes = %d, want 20", board.LateThresholdMinutes)
	}
}
