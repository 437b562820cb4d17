package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/gctucker/cams/internal/domain"
)

type GroupUsecase struct {
	repo  GroupRepository
	fairs FairRepository
	pins  *PinUsecase[domain.Group]
}

func NewGroupUsecase(repo GroupRepository, fairs FairRepository, pins *PinUsecase[domain.Group]) *GroupUsecase {
	return &GroupUsecase{repo: repo, fairs: fairs, pins: pins}
}

// Save persists the group. A pinned version may only be written while its
// board is open.
func (uc *GroupUsecase) Save(ctx context.Context, g *domain.Group) error {
	if g.BoardID != nil {
		board, err := uc.repo.GetBoard(ctx, *g.BoardID)
		if err != nil {
			return err
		}
		if board.Status != domain.BoardOpen {
			return domain.BoardLockedError{Board: board.Name}
		}
	}
	return uc.repo.Save(ctx, g)
}

func (uc *GroupUsecase) Get(ctx context.Context, id uint) (domain.Group, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *GroupUsecase) List(ctx context.Context) ([]domain.Group, error) {
	return uc.repo.List(ctx)
}

func (uc *GroupUsecase) SaveRole(ctx context.Context, r *domain.Role) error {
	return uc.repo.SaveRole(ctx, r)
}

func (uc *GroupUsecase) DeleteRole(ctx context.Context, id uint) error {
	return uc.repo.DeleteRole(ctx, id)
}

func (uc *GroupUsecase) SaveBoard(ctx context.Context, b *domain.Board) error {
	return uc.repo.SaveBoard(ctx, b)
}

func (uc *GroupUsecase) ListBoards(ctx context.Context) ([]domain.Board, error) {
	return uc.repo.ListBoards(ctx)
}

// PinDown snapshots the group onto the board, refusing a second pin of the
// same chain onto one board.
func (uc *GroupUsecase) PinDown(ctx context.Context, groupID, boardID uint) (domain.Group, error) {
	group, err := uc.repo.Get(ctx, groupID)
	if err != nil {
		return domain.Group{}, err
	}
	onBoard, err := uc.pins.IsOnBoard(ctx, group, boardID)
	if err != nil {
		return domain.Group{}, err
	}
	if onBoard {
		return domain.Group{}, domain.StructuralError{Detail: "group already pinned on board"}
	}
	return uc.pins.PinDown(ctx, group, boardID)
}

// Versions lists the group's version chain, oldest snapshot first.
func (uc *GroupUsecase) Versions(ctx context.Context, groupID uint) ([]domain.Group, error) {
	group, err := uc.repo.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return uc.pins.Versions(ctx, group)
}

// CurrentGroups renders the contactable's live group memberships: groups
// without a board whose fair, if any, is the current one, names joined
// with ", ".
func (uc *GroupUsecase) CurrentGroups(ctx context.Context, contactableID uint) (string, error) {
	groups, err := uc.repo.ListByContactable(ctx, contactableID)
	if err != nil {
		return "", err
	}

	var current domain.Fair
	haveCurrent := false
	if f, err := uc.fairs.GetCurrent(ctx); err == nil {
		current = f
		haveCurrent = true
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	var names []string
	for _, g := range groups {
		if g.BoardID != nil {
			continue
		}
		if g.FairID != nil && (!haveCurrent || *g.FairID != current.ID) {
			continue
		}
		names = append(names, g.Name)
	}
	return strings.Join(names, ", "), nil
}
