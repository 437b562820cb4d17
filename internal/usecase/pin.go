package usecase

import (
	"context"

	"github.com/gctucker/cams/internal/domain"
)

// maxChainDepth bounds version chain walks so a malformed chain fails with
// a StructuralError instead of looping.
const maxChainDepth = 1024

// Pinnable is the capability required of an entity that can be pinned onto
// a board: an identity plus the board and parent pointers forming its
// version chain.
type Pinnable interface {
	PinID() uint
	PinBoardID() *uint
	PinParentID() *uint
}

// PinRepository is implemented once per pinnable entity type. CreateCopy
// must persist a detached copy of src with a new identity, the same field
// values and parent pointer, assigned to the board, and must deep-copy the
// entity's dependent rows.
type PinRepository[T Pinnable] interface {
	Get(ctx context.Context, id uint) (T, error)
	GetBoard(ctx context.Context, id uint) (domain.Board, error)
	Children(ctx context.Context, parentID uint) ([]T, error)
	CreateCopy(ctx context.Context, src T, boardID uint) (T, error)
	SetParent(ctx context.Context, id uint, parentID *uint) error
	InTx(ctx context.Context, fn func(PinRepository[T]) error) error
}

// PinUsecase implements the board snapshot mechanism over any pinnable
// entity type.
type PinUsecase[T Pinnable] struct {
	repo PinRepository[T]
}

func NewPinUsecase[T Pinnable](repo PinRepository[T]) *PinUsecase[T] {
	return &PinUsecase[T]{repo: repo}
}

// PinDown snapshots the entity onto the board. The copy inherits the
// entity's parent pointer and the entity's parent is repointed at the copy,
// both rows written in one transaction. Pinning onto a board that is not
// open fails with BoardLockedError. Callers should check IsOnBoard first:
// an entity must not be pinned twice onto the same board.
func (uc *PinUsecase[T]) PinDown(ctx context.Context, entity T, boardID uint) (T, error) {
	var pinned T

	board, err := uc.repo.GetBoard(ctx, boardID)
	if err != nil {
		return pinned, err
	}
	if board.Status != domain.BoardOpen {
		return pinned, domain.BoardLockedError{Board: board.Name}
	}

	err = uc.repo.InTx(ctx, func(r PinRepository[T]) error {
		copied, err := r.CreateCopy(ctx, entity, boardID)
		if err != nil {
			return err
		}
		copyID := copied.PinID()
		if err := r.SetParent(ctx, entity.PinID(), &copyID); err != nil {
			return err
		}
		pinned = copied
		return nil
	})
	return pinned, err
}

// IsOnBoard reports whether the entity or any of its ancestors is pinned
// onto the board.
func (uc *PinUsecase[T]) IsOnBoard(ctx context.Context, entity T, boardID uint) (bool, error) {
	cur := entity
	for depth := 0; ; depth++ {
		if depth > maxChainDepth {
			return false, domain.StructuralError{Detail: "parent chain too deep"}
		}
		if b := cur.PinBoardID(); b != nil && *b == boardID {
			return true, nil
		}
		p := cur.PinParentID()
		if p == nil {
			return false, nil
		}
		next, err := uc.repo.Get(ctx, *p)
		if err != nil {
			return false, err
		}
		cur = next
	}
}

// Versions returns every version in the entity's chain ordered oldest to
// newest: the first snapshot ever taken comes first and the live entity
// last. A cycle or an ancestor with more than one child fails with a
// StructuralError.
func (uc *PinUsecase[T]) Versions(ctx context.Context, entity T) ([]T, error) {
	root := entity
	seen := map[uint]bool{root.PinID(): true}
	for {
		p := root.PinParentID()
		if p == nil {
			break
		}
		if seen[*p] {
			return nil, domain.StructuralError{Detail: "cycle in parent chain"}
		}
		seen[*p] = true
		next, err := uc.repo.Get(ctx, *p)
		if err != nil {
			return nil, err
		}
		root = next
	}

	out := []T{root}
	cur := root
	for depth := 0; ; depth++ {
		if depth > maxChainDepth {
			return nil, domain.StructuralError{Detail: "forward chain too deep"}
		}
		children, err := uc.repo.Children(ctx, cur.PinID())
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			break
		}
		if len(children) > 1 {
			return nil, domain.StructuralError{Detail: "version chain branches"}
		}
		cur = children[0]
		out = append(out, cur)
	}
	return out, nil
}

// CurrentVersion returns the live (most recent) version in the chain.
func (uc *PinUsecase[T]) CurrentVersion(ctx context.Context, entity T) (T, error) {
	versions, err := uc.Versions(ctx, entity)
	if err != nil {
		var zero T
		return zero, err
	}
	return versions[len(versions)-1], nil
}

// VersionForBoard returns the version pinned onto the board, or ErrNotFound.
func (uc *PinUsecase[T]) VersionForBoard(ctx context.Context, entity T, boardID uint) (T, error) {
	var zero T
	versions, err := uc.Versions(ctx, entity)
	if err != nil {
		return zero, err
	}
	for _, v := range versions {
		if b := v.PinBoardID(); b != nil && *b == boardID {
			return v, nil
		}
	}
	return zero, domain.NotFoundError{Resource: "version"}
}
