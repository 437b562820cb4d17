package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/gctucker/cams/internal/domain"
)

func TestCurrentGroupsFiltersBoardsAndFairs(t *testing.T) {
	groups := newMockGroupRepo()
	fairs := &mockFairRepo{}
	uc := NewGroupUsecase(groups, fairs, NewPinUsecase[domain.Group](newMockPinRepo()))
	ctx := context.Background()

	current := fairOn(2013)
	current.Current = true
	if err := fairs.Save(ctx, &current); err != nil {
		t.Fatalf("save fair failed: %v", err)
	}
	past := fairOn(2012)
	if err := fairs.Save(ctx, &past); err != nil {
		t.Fatalf("save fair failed: %v", err)
	}

	boardID := uint(9)
	entry := personEntry(1, 10, "Ada", "Lovelace")

	global := domain.Group{Name: "Committee"}
	thisYear := domain.Group{Name: "Volunteers", FairID: &current.ID}
	lastYear := domain.Group{Name: "Stewards", FairID: &past.ID}
	pinned := domain.Group{Name: "Archive", BoardID: &boardID}
	for _, g := range []*domain.Group{&global, &thisYear, &lastYear, &pinned} {
		if err := groups.Save(ctx, g); err != nil {
			t.Fatalf("save group failed: %v", err)
		}
		groups.members[g.ID] = []domain.Contactable{entry}
	}

	got, err := uc.CurrentGroups(ctx, entry.ID)
	if err != nil {
		t.Fatalf("current groups failed: %v", err)
	}

	if got != "Committee, Volunteers" {
		t.Fatalf("unexpected groups %q", got)
	}
}

func TestCurrentGroupsEmpty(t *testing.T) {
	groups := newMockGroupRepo()
	fairs := &mockFairRepo{}
	uc := NewGroupUsecase(groups, fairs, NewPinUsecase[domain.Group](newMockPinRepo()))

	got, err := uc.CurrentGroups(context.Background(), 42)
	if err != nil {
		t.Fatalf("current groups failed: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestGroupSaveOntoLockedBoard(t *testing.T) {
	groups := newMockGroupRepo()
	fairs := &mockFairRepo{}
	uc := NewGroupUsecase(groups, fairs, NewPinUsecase[domain.Group](newMockPinRepo()))
	ctx := context.Background()

	board := domain.Board{ID: 1, Name: "2009", Status: domain.BoardLocked}
	if err := groups.SaveBoard(ctx, &board); err != nil {
		t.Fatalf("save board failed: %v", err)
	}

	g := domain.Group{Name: "Volunteers", BoardID: &board.ID}
	err := uc.Save(ctx, &g)
	if !errors.Is(err, domain.ErrBoardLocked) {
		t.Fatalf("expected BoardLockedError, got %v", err)
	}
	if len(groups.groups) != 0 {
		t.Fatalf("expected no write onto locked board")
	}
}

func TestGroupPinDownRejectsDoublePin(t *testing.T) {
	groups := newMockGroupRepo()
	fairs := &mockFairRepo{}
	pinRepo := newMockPinRepo()
	uc := NewGroupUsecase(groups, fairs, NewPinUsecase[domain.Group](pinRepo))
	ctx := context.Background()

	board := domain.Board{ID: 1, Name: "2009", Status: domain.BoardOpen}
	pinRepo.boards[board.ID] = board
	if err := groups.SaveBoard(ctx, &board); err != nil {
		t.Fatalf("save board failed: %v", err)
	}

	g := domain.Group{Name: "Volunteers"}
	if err := groups.Save(ctx, &g); err != nil {
		t.Fatalf("save group failed: %v", err)
	}
	pinRepo.groups[g.ID] = g
	pinRepo.nextID = g.ID

	pinned, err := uc.PinDown(ctx, g.ID, board.ID)
	if err != nil {
		t.Fatalf("pin failed: %v", err)
	}
	if pinned.BoardID == nil || *pinned.BoardID != board.ID {
		t.Fatalf("expected copy on board, got %+v", pinned)
	}

	// The live group now carries the board in its ancestry.
	groups.groups[g.ID] = pinRepo.groups[g.ID]

	_, err = uc.PinDown(ctx, g.ID, board.ID)
	if !errors.Is(err, domain.ErrMalformedChain) {
		t.Fatalf("expected rejection of double pin, got %v", err)
	}
}
