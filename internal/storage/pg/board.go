package pg

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	internal_errors "github.com/borda-dev/borda/internal/errors"

	"github.com/borda-dev/borda/internal/domain"
)

// sortColumns is the allow-list for client-supplied sort fields. Anything
// else falls back to insertion order (seq).
var sortColumns = map[string]string{
	"title":     "data->>'title'",
	"createdAt": "(data->>'createdAt')::numeric",
	"speed":     "(data->>'speed')::numeric",
}

// QueryBoards scans the boards collection applying the list filter.
// Text matches title or description case-insensitively; MinSpeed is an
// inclusive lower bound; paging chunks results into fixed-size pages.
func (s *Storage) QueryBoards(filter domain.BoardFilter) ([]domain.Board, error) {
	var query strings.Builder
	query.WriteString("SELECT data FROM boards")

	var conds []string
	var args []any
	if filter.Txt != "" {
		args = append(args, "%"+filter.Txt+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(data->>'title' ILIKE $%d OR data->>'description' ILIKE $%d)", n, n))
	}
	if filter.MinSpeed > 0 {
		args = append(args, filter.MinSpeed)
		conds = append(conds, fmt.Sprintf("COALESCE((data->>'speed')::numeric, 0) >= $%d", len(args)))
	}
	if len(conds) > 0 {
		query.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	if col, ok := sortColumns[filter.SortField]; ok {
		dir := "ASC"
		if filter.SortDir < 0 {
			dir = "DESC"
		}
		query.WriteString(fmt.Sprintf(" ORDER BY %s %s", col, dir))
	} else {
		query.WriteString(" ORDER BY seq")
	}

	if filter.PageIdx != nil {
		pageSize := s.cfg.Public.BoardPageSize
		args = append(args, pageSize, *filter.PageIdx*pageSize)
		query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))
	}

	rows, err := s.db.Query(query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var board domain.Board
		if err := json.Unmarshal(raw, &board); err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	return boards, rows.Err()
}

func (s *Storage) GetBoard(boardId string) (*domain.Board, error) {
	var raw []byte
	err := s.db.QueryRow("SELECT data FROM boards WHERE id = $1", boardId).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Board not found")
		}
		return nil, err
	}

	var board domain.Board
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Storage) SaveBoard(board *domain.Board) error {
	raw, err := json.Marshal(board)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("INSERT INTO boards(id, data) VALUES($1, $2)", board.Id, raw)
	return err
}

// UpdateBoard replaces the whole document by id.
func (s *Storage) UpdateBoard(board *domain.Board) error {
	raw, err := json.Marshal(board)
	if err != nil {
		return err
	}
	res, err := s.db.Exec("UPDATE boards SET data = $2 WHERE id = $1", board.Id, raw)
	if err != nil {
		return err
	}
	return requireRow(res, "Board not found")
}

// DeleteBoard removes the board, enforcing ownership in the delete
// criteria itself: non-admin actors only match rows they own (or rows
// without an owner). A zero row count is disambiguated into 404 vs 403.
func (s *Storage) DeleteBoard(boardId string, actor domain.MiniUser) error {
	var res sql.Result
	var err error
	if actor.IsAdmin {
		res, err = s.db.Exec("DELETE FROM boards WHERE id = $1", boardId)
	} else {
		res, err = s.db.Exec(
			"DELETE FROM boards WHERE id = $1 AND COALESCE(data->'owner'->>'_id', $2) = $2",
			boardId, actor.Id)
	}
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM boards WHERE id = $1)", boardId).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return internal_errors.PermissionDenied("Not your board")
		}
		return internal_errors.NotFound("Board not found")
	}
	return nil
}

// AddBoardMsg appends one message in a single atomic statement, the JSONB
// analogue of a $push.
func (s *Storage) AddBoardMsg(boardId string, msg domain.Msg) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE boards
		SET data = jsonb_set(data, '{msgs}', COALESCE(data->'msgs', '[]'::jsonb) || $2::jsonb)
		WHERE id = $1`, boardId, raw)
	if err != nil {
		return err
	}
	return requireRow(res, "Board not found")
}

// RemoveBoardMsg drops the matching message, the JSONB analogue of a $pull.
func (s *Storage) RemoveBoardMsg(boardId, msgId string) error {
	res, err := s.db.Exec(`
		UPDATE boards
		SET data = jsonb_set(data, '{msgs}', COALESCE(
			(SELECT jsonb_agg(m) FROM jsonb_array_elements(data->'msgs') m WHERE m->>'id' <> $2),
			'[]'::jsonb))
		WHERE id = $1`, boardId, msgId)
	if err != nil {
		return err
	}
	return requireRow(res, "Board not found")
}

func requireRow(res sql.Result, notFoundMsg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return internal_errors.NotFound(notFoundMsg)
	}
	return nil
}
