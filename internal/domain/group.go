package domain

// BoardStatus is the write gate for a pin board.
type BoardStatus int

const (
	BoardOpen BoardStatus = iota
	BoardLocked
)

func (s BoardStatus) String() string {
	switch s {
	case BoardOpen:
		return "open"
	case BoardLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Board is a named snapshot target. Entities pinned onto it become
// historical versions and may only be written while the board is open.
type Board struct {
	ID          uint        `json:"id"`
	Status      BoardStatus `json:"status"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
}

// Group is a named collection of contactables, optionally scoped to a fair
// and optionally pinned onto a board. BoardID and ParentID form the pin
// version chain: the root version has neither.
type Group struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	FairID      *uint  `json:"fairId,omitempty"`
	BoardID     *uint  `json:"boardId,omitempty"`
	ParentID    *uint  `json:"parentId,omitempty"`
}

// PinID returns the group's identity for version chain walks.
func (g Group) PinID() uint { return g.ID }

// PinBoardID returns the board the group is pinned onto, nil for the live
// version.
func (g Group) PinBoardID() *uint { return g.BoardID }

// PinParentID returns the next (newer) version in the chain, nil at the
// chain head.
func (g Group) PinParentID() *uint { return g.ParentID }

// PinnedName renders the group name with its board suffix when pinned.
func (g Group) PinnedName(board *Board) string {
	if board == nil {
		return g.Name
	}
	return g.Name + " [" + board.Name + "]"
}

// Role links a contactable to a group with an optional free-text label.
type Role struct {
	ID            uint   `json:"id"`
	ContactableID uint   `json:"contactableId"`
	GroupID       uint   `json:"groupId"`
	Role          string `json:"role,omitempty"`
}
