package pg

import (
	"fmt"
	"testing"

	internal_errors "github.com/borda-dev/borda/internal/errors"

	"github.com/borda-dev/borda/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	boardOwner  = domain.MiniUser{Id: "owner-1", FullName: "Owner One"}
	someoneElse = domain.MiniUser{Id: "stranger-1", FullName: "Someone Else"}
	siteAdmin   = domain.MiniUser{Id: "admin-1", FullName: "Admin", IsAdmin: true}
)

func mustSaveBoard(t *testing.T, board *domain.Board) {
	t.Helper()
	require.NoError(t, storage.SaveBoard(board))
}

func TestBoardRoundTrip(t *testing.T) {
	mustTruncate(t)

	board := &domain.Board{
		Id:          "b1",
		Title:       "Sprint board",
		Description: "iteration planning",
		Speed:       4.5,
		Owner:       &boardOwner,
		Labels:      []domain.Label{{Id: "l1", Title: "Urgent", Color: "#ff0000"}},
		Groups: []domain.Group{{
			Id:    "g1",
			Title: "Backlog",
			Tasks: []domain.Task{{Id: "t1", Title: "Fix login"}},
		}},
	}
	mustSaveBoard(t, board)

	loaded, err := storage.GetBoard("b1")
	require.NoError(t, err)
	assert.Equal(t, board, loaded)
}

func TestGetBoardNotFound(t *testing.T) {
	mustTruncate(t)

	_, err := storage.GetBoard("nope")
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestQueryBoards(t *testing.T) {
	mustTruncate(t)

	mustSaveBoard(t, &domain.Board{Id: "b1", Title: "Retro board", Speed: 1})
	mustSaveBoard(t, &domain.Board{Id: "b2", Title: "Alpha", Description: "retro notes", Speed: 5})
	mustSaveBoard(t, &domain.Board{Id: "b3", Title: "Zulu", Speed: 3})

	t.Run("no filter returns everything in insertion order", func(t *testing.T) {
		boards, err := storage.QueryBoards(domain.BoardFilter{})
		require.NoError(t, err)
		require.Len(t, boards, 3)
		assert.Equal(t, "b1", boards[0].Id)
		assert.Equal(t, "b3", boards[2].Id)
	})

	t.Run("text matches title or description, case insensitive", func(t *testing.T) {
		boards, err := storage.QueryBoards(domain.BoardFilter{Txt: "RETRO"})
		require.NoError(t, err)
		require.Len(t, boards, 2)
	})

	t.Run("minSpeed is an inclusive lower bound", func(t *testing.T) {
		boards, err := storage.QueryBoards(domain.BoardFilter{MinSpeed: 3})
		require.NoError(t, err)
		require.Len(t, boards, 2)
		for _, b := range boards {
			assert.GreaterOrEqual(t, b.Speed, 3.0)
		}
	})

	t.Run("sort by title descending", func(t *testing.T) {
		boards, err := storage.QueryBoards(domain.BoardFilter{SortField: "title", SortDir: -1})
		require.NoError(t, err)
		require.Len(t, boards, 3)
		assert.Equal(t, "Zulu", boards[0].Title)
		assert.Equal(t, "Alpha", boards[2].Title)
	})

	t.Run("unknown sort field falls back to insertion order", func(t *testing.T) {
		boards, err := storage.QueryBoards(domain.BoardFilter{SortField: "data->>'title'; DROP TABLE boards"})
		require.NoError(t, err)
		require.Len(t, boards, 3)
		assert.Equal(t, "b1", boards[0].Id)
	})
}

func TestQueryBoardsPaging(t *testing.T) {
	mustTruncate(t)

	// Page size is 2 in the test config.
	for i := 1; i <= 5; i++ {
		mustSaveBoard(t, &domain.Board{Id: fmt.Sprintf("b%d", i), Title: fmt.Sprintf("Board %d", i)})
	}

	page := func(idx int) []domain.Board {
		boards, err := storage.QueryBoards(domain.BoardFilter{PageIdx: &idx})
		require.NoError(t, err)
		return boards
	}

	first := page(0)
	require.Len(t, first, 2)
	assert.Equal(t, "b1", first[0].Id)

	second := page(1)
	require.Len(t, second, 2)
	assert.Equal(t, "b3", second[0].Id)

	last := page(2)
	require.Len(t, last, 1)
	assert.Equal(t, "b5", last[0].Id)

	assert.Empty(t, page(3))
}

func TestUpdateBoard(t *testing.T) {
	mustTruncate(t)

	mustSaveBoard(t, &domain.Board{Id: "b1", Title: "Before"})

	t.Run("replaces the whole document", func(t *testing.T) {
		updated := &domain.Board{Id: "b1", Title: "After", IsStarred: true}
		require.NoError(t, storage.UpdateBoard(updated))

		loaded, err := storage.GetBoard("b1")
		require.NoError(t, err)
		assert.Equal(t, "After", loaded.Title)
		assert.True(t, loaded.IsStarred)
	})

	t.Run("missing board should 404", func(t *testing.T) {
		err := storage.UpdateBoard(&domain.Board{Id: "nope", Title: "x"})
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestDeleteBoardPermissions(t *testing.T) {
	mustTruncate(t)

	owned := func(id string) *domain.Board {
		return &domain.Board{Id: id, Title: "Owned", Owner: &boardOwner}
	}

	t.Run("owner deletes own board", func(t *testing.T) {
		mustSaveBoard(t, owned("b1"))
		require.NoError(t, storage.DeleteBoard("b1", boardOwner))

		_, err := storage.GetBoard("b1")
		assert.True(t, internal_errors.IsNotFound(err))
	})

	t.Run("stranger is denied and the board survives", func(t *testing.T) {
		mustSaveBoard(t, owned("b2"))
		err := storage.DeleteBoard("b2", someoneElse)
		assert.True(t, internal_errors.IsPermissionDenied(err))

		_, err = storage.GetBoard("b2")
		assert.NoError(t, err)
	})

	t.Run("admin deletes any board", func(t *testing.T) {
		mustSaveBoard(t, owned("b3"))
		require.NoError(t, storage.DeleteBoard("b3", siteAdmin))
	})

	t.Run("ownerless board is deletable by anyone", func(t *testing.T) {
		mustSaveBoard(t, &domain.Board{Id: "b4", Title: "Orphan"})
		require.NoError(t, storage.DeleteBoard("b4", someoneElse))
	})

	t.Run("missing board should 404 regardless of actor", func(t *testing.T) {
		err := storage.DeleteBoard("nope", siteAdmin)
		assert.True(t, internal_errors.IsNotFound(err))

		err = storage.DeleteBoard("nope", someoneElse)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestBoardMsgStorage(t *testing.T) {
	mustTruncate(t)

	mustSaveBoard(t, &domain.Board{Id: "b1", Title: "Chatty"})

	msg := func(id, txt string) domain.Msg {
		return domain.Msg{Id: id, Txt: txt, Html: "<p>" + txt + "</p>", By: boardOwner}
	}

	t.Run("append keeps arrival order", func(t *testing.T) {
		require.NoError(t, storage.AddBoardMsg("b1", msg("m1", "first")))
		require.NoError(t, storage.AddBoardMsg("b1", msg("m2", "second")))

		loaded, err := storage.GetBoard("b1")
		require.NoError(t, err)
		require.Len(t, loaded.Msgs, 2)
		assert.Equal(t, "m1", loaded.Msgs[0].Id)
		assert.Equal(t, "second", loaded.Msgs[1].Txt)
		assert.Equal(t, boardOwner.Id, loaded.Msgs[0].By.Id)
	})

	t.Run("remove drops only the matching message", func(t *testing.T) {
		require.NoError(t, storage.RemoveBoardMsg("b1", "m1"))

		loaded, err := storage.GetBoard("b1")
		require.NoError(t, err)
		require.Len(t, loaded.Msgs, 1)
		assert.Equal(t, "m2", loaded.Msgs[0].Id)
	})

	t.Run("removing an absent message id is a no-op", func(t *testing.T) {
		require.NoError(t, storage.RemoveBoardMsg("b1", "ghost"))

		loaded, err := storage.GetBoard("b1")
		require.NoError(t, err)
		assert.Len(t, loaded.Msgs, 1)
	})

	t.Run("missing board should 404", func(t *testing.T) {
		err := storage.AddBoardMsg("nope", msg("m3", "hi"))
		assert.True(t, internal_errors.IsNotFound(err))

		err = storage.RemoveBoardMsg("nope", "m3")
		assert.True(t, internal_errors.IsNotFound(err))
	})
}
