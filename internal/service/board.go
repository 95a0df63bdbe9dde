package service

import (
	"time"

	internal_errors "github.com/borda-dev/borda/internal/errors"

	"github.com/borda-dev/borda/internal/domain"
	"github.com/borda-dev/borda/internal/events"
	"github.com/borda-dev/borda/internal/logger"
	"github.com/borda-dev/borda/internal/markdown"
	"github.com/google/uuid"
)

// to mock service in tests
type BoardService interface {
	Query(filter domain.BoardFilter) ([]domain.Board, error)
	GetById(boardId string, filter domain.BoardDetailsFilter) (*domain.Board, error)
	Add(board domain.Board, actor domain.MiniUser) (*domain.Board, error)
	Update(board domain.Board, actor domain.MiniUser) (*domain.Board, error)
	Remove(boardId string, actor domain.MiniUser) error
	AddMsg(boardId, txt string, actor domain.MiniUser) (*domain.Msg, error)
	RemoveMsg(boardId, msgId string, actor domain.MiniUser) (string, error)
}

type BoardStorage interface {
	QueryBoards(filter domain.BoardFilter) ([]domain.Board, error)
	GetBoard(boardId string) (*domain.Board, error)
	SaveBoard(board *domain.Board) error
	UpdateBoard(board *domain.Board) error
	DeleteBoard(boardId string, actor domain.MiniUser) error
	AddBoardMsg(boardId string, msg domain.Msg) error
	RemoveBoardMsg(boardId, msgId string) error
}

// Broadcaster fans a board mutation out to the board's room. Best-effort:
// failures and slow subscribers are the hub's problem, not the caller's.
type Broadcaster interface {
	Broadcast(event events.Event)
}

type Board struct {
	storage BoardStorage
	hub     Broadcaster
	md      *markdown.Renderer
}

func NewBoard(storage BoardStorage, hub Broadcaster) *Board {
	return &Board{storage: storage, hub: hub, md: markdown.New()}
}

func (b *Board) Query(filter domain.BoardFilter) ([]domain.Board, error) {
	if filter.PageIdx != nil && *filter.PageIdx < 0 {
		zero := 0
		filter.PageIdx = &zero
	}
	boards, err := b.storage.QueryBoards(filter)
	if err != nil {
		logger.Log.Error("cannot find boards", "error", err)
		return nil, err
	}
	return boards, nil
}

func (b *Board) GetById(boardId string, filter domain.BoardDetailsFilter) (*domain.Board, error) {
	board, err := b.storage.GetBoard(boardId)
	if err != nil {
		return nil, err
	}
	ApplyDetailsFilter(board, filter)
	return board, nil
}

// Add inserts the board document, stamping the acting user as owner and
// generating an id when the client supplied none.
func (b *Board) Add(board domain.Board, actor domain.MiniUser) (*domain.Board, error) {
	if board.Id == "" {
		board.Id = uuid.NewString()
	}
	if board.CreatedAt == 0 {
		board.CreatedAt = time.Now().UnixMilli()
	}
	board.Owner = &domain.MiniUser{Id: actor.Id, FullName: actor.FullName, ImgUrl: actor.ImgUrl}

	if err := b.storage.SaveBoard(&board); err != nil {
		logger.Log.Error("cannot insert board", "error", err)
		return nil, err
	}
	return &board, nil
}

// Update replaces the whole document. The stored owner and id always win
// over the payload, and only the owner or an admin may update an owned
// board. Ownerless boards are shared and mutable by any authenticated
// user. On success the new groups and activities are broadcast to the
// board's room, tagged with the actor.
func (b *Board) Update(board domain.Board, actor domain.MiniUser) (*domain.Board, error) {
	stored, err := b.storage.GetBoard(board.Id)
	if err != nil {
		return nil, err
	}
	if stored.Owner != nil && !actor.IsAdmin && stored.Owner.Id != actor.Id {
		return nil, internal_errors.PermissionDenied("Not your board")
	}

	board.Id = stored.Id
	board.Owner = stored.Owner
	if err := b.storage.UpdateBoard(&board); err != nil {
		logger.Log.Error("cannot update board", "board_id", board.Id, "error", err)
		return nil, err
	}

	b.hub.Broadcast(events.Event{Type: events.GroupsUpdated, Data: board.Groups, UserId: actor.Id, Room: board.Id})
	b.hub.Broadcast(events.Event{Type: events.ActivitiesUpdated, Data: board.Activities, UserId: actor.Id, Room: board.Id})

	return &board, nil
}

func (b *Board) Remove(boardId string, actor domain.MiniUser) error {
	if err := b.storage.DeleteBoard(boardId, actor); err != nil {
		logger.Log.Error("cannot remove board", "board_id", boardId, "error", err)
		return err
	}
	return nil
}

func (b *Board) AddMsg(boardId, txt string, actor domain.MiniUser) (*domain.Msg, error) {
	msg := domain.Msg{
		Id:   uuid.NewString(),
		Txt:  txt,
		Html: b.md.Render(txt),
		By:   domain.MiniUser{Id: actor.Id, FullName: actor.FullName, ImgUrl: actor.ImgUrl},
	}
	if err := b.storage.AddBoardMsg(boardId, msg); err != nil {
		logger.Log.Error("cannot add board msg", "board_id", boardId, "error", err)
		return nil, err
	}
	return &msg, nil
}

func (b *Board) RemoveMsg(boardId, msgId string, actor domain.MiniUser) (string, error) {
	if err := b.storage.RemoveBoardMsg(boardId, msgId); err != nil {
		logger.Log.Error("cannot remove board msg", "board_id", boardId, "error", err)
		return "", err
	}
	return msgId, nil
}
