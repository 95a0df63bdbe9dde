package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	internal_errors "github.com/borda-dev/borda/internal/errors"

	"github.com/borda-dev/borda/internal/domain"
	"github.com/borda-dev/borda/internal/logger"
	mw "github.com/borda-dev/borda/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	filter, err := parseBoardFilter(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	boards, err := h.board.Query(filter)
	if err != nil {
		logger.Log.Error("failed to get boards", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, boards)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "id")
	filter := parseDetailsFilter(r.URL.Query())

	board, err := h.board.GetById(boardId, filter)
	if err != nil {
		logger.Log.Error("failed to get board", "board_id", boardId, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, board)
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	actor := mw.GetUserFromContext(r)
	if actor == nil {
		writeError(w, internal_errors.Unauthorized("Please sign-in"))
		return
	}

	var board domain.Board
	if err := decodeValidate(r.Body, &board); err != nil {
		writeError(w, err)
		return
	}

	added, err := h.board.Add(board, *actor)
	if err != nil {
		logger.Log.Error("failed to add board", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, added)
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	actor := mw.GetUserFromContext(r)
	if actor == nil {
		writeError(w, internal_errors.Unauthorized("Please sign-in"))
		return
	}

	var board domain.Board
	if err := decodeValidate(r.Body, &board); err != nil {
		writeError(w, err)
		return
	}
	board.Id = chi.URLParam(r, "id")

	updated, err := h.board.Update(board, *actor)
	if err != nil {
		logger.Log.Error("failed to update board", "board_id", board.Id, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, updated)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	actor := mw.GetUserFromContext(r)
	if actor == nil {
		writeError(w, internal_errors.Unauthorized("Please sign-in"))
		return
	}
	boardId := chi.URLParam(r, "id")

	if err := h.board.Remove(boardId, *actor); err != nil {
		logger.Log.Error("failed to remove board", "board_id", boardId, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, boardId)
}

type addMsgRequest struct {
	Txt string `json:"txt" validate:"required"`
}

func (h *Handler) AddBoardMsg(w http.ResponseWriter, r *http.Request) {
	actor := mw.GetUserFromContext(r)
	if actor == nil {
		writeError(w, internal_errors.Unauthorized("Please sign-in"))
		return
	}

	var body addMsgRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}
	boardId := chi.URLParam(r, "id")

	msg, err := h.board.AddMsg(boardId, body.Txt, *actor)
	if err != nil {
		logger.Log.Error("failed to add board msg", "board_id", boardId, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, msg)
}

func (h *Handler) DeleteBoardMsg(w http.ResponseWriter, r *http.Request) {
	actor := mw.GetUserFromContext(r)
	if actor == nil {
		writeError(w, internal_errors.Unauthorized("Please sign-in"))
		return
	}
	boardId := chi.URLParam(r, "id")
	msgId := chi.URLParam(r, "msgId")

	removedId, err := h.board.RemoveMsg(boardId, msgId, *actor)
	if err != nil {
		logger.Log.Error("failed to remove board msg", "board_id", boardId, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, removedId)
}

// parseBoardFilter builds the explicit list filter from query params,
// with defined defaults: empty text, no threshold, storage order, no
// paging.
func parseBoardFilter(q url.Values) (domain.BoardFilter, error) {
	filter := domain.BoardFilter{
		Txt:       q.Get("txt"),
		SortField: q.Get("sortField"),
		SortDir:   1,
	}

	if raw := q.Get("minSpeed"); raw != "" {
		minSpeed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, internal_errors.BadRequest("invalid minSpeed: must be a number")
		}
		filter.MinSpeed = minSpeed
	}
	if raw := q.Get("sortDir"); raw != "" {
		sortDir, err := strconv.Atoi(raw)
		if err != nil {
			return filter, internal_errors.BadRequest("invalid sortDir: must be an integer")
		}
		filter.SortDir = sortDir
	}
	if raw := q.Get("pageIdx"); raw != "" {
		pageIdx, err := strconv.Atoi(raw)
		if err != nil {
			return filter, internal_errors.BadRequest("invalid pageIdx: must be an integer")
		}
		filter.PageIdx = &pageIdx
	}

	return filter, nil
}

func parseDetailsFilter(q url.Values) domain.BoardDetailsFilter {
	return domain.BoardDetailsFilter{
		Txt:           q.Get("txt"),
		NoMembers:     q.Get("noMembers") == "true",
		NoDueDate:     q.Get("noDueDate") == "true",
		NoLabels:      q.Get("noLabels") == "true",
		SelectMembers: parseList(q["selectMembers"]),
		SelectLabels:  parseList(q["selectLabels"]),
	}
}

// parseList accepts both repeated params and comma-separated values.
func parseList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
