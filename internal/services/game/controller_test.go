package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/salvo-game/salvo/internal/dependencies/mocks"
	"github.com/salvo-game/salvo/internal/model"
	"github.com/salvo-game/salvo/internal/services/board"
	"github.com/salvo-game/salvo/internal/storage/memory"
	"github.com/salvo-game/salvo/internal/testutil"
)

const (
	alice = model.PlayerID("player-alice")
	bob   = model.PlayerID("player-bob")
	carol = model.PlayerID("player-carol")
)

type ControllerSuite struct {
	suite.Suite
	storage      *memory.Storage
	boardService *board.Service
	clock        *mocks.MockClock
	random       *mocks.MockRandom
	controller   *Controller
	ctx          context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.boardService = board.New(s.storage, s.random)
	s.controller = NewController(s.storage, s.boardService, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()

	for _, id := range []model.PlayerID{alice, bob, carol} {
		err := s.storage.SavePlayer(s.ctx, &model.Player{
			ID:          id,
			DisplayName: string(id),
			IsGuest:     true,
			CreatedAt:   s.clock.Now(),
		})
		s.Require().NoError(err)
	}
}

// queueBoard queues coordinates so the next generated board has its
// ships exactly on rows 0 and 1 except (7, 1)
func (s *ControllerSuite) queueBoard() {
	for x := 0; x < model.GridSize; x++ {
		s.random.QueueIntn(x, 0)
	}
	for x := 0; x < model.ShipCount-model.GridSize; x++ {
		s.random.QueueIntn(x, 1)
	}
}

// activeGame creates a game for alice with bob joined, both with the
// known two-row ship layout
func (s *ControllerSuite) activeGame() model.GameID {
	s.queueBoard()
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	s.queueBoard()
	_, err = s.controller.JoinGame(s.ctx, detail.Game.ID, bob)
	s.Require().NoError(err)

	return detail.Game.ID
}

// CreateGame tests

func (s *ControllerSuite) TestCreateGameSucceeds() {
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	s.Equal(model.GameStatusWaiting, detail.Game.Status)
	s.Equal(alice, detail.Game.Player1)
	s.Equal(model.PlayerID(""), detail.Game.Player2)
	s.Equal(model.PlayerID(""), detail.Game.Winner)
	s.NotEmpty(detail.Game.ID)
	s.Equal("player-alice", detail.Player1.DisplayName)
	s.Nil(detail.Player2)
}

func (s *ControllerSuite) TestCreateGameGeneratesCreatorBoard() {
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	s.Require().Len(detail.Boards, 1)
	s.Equal(alice, detail.Boards[0].PlayerID)
	s.Equal(model.ShipCount, detail.Boards[0].ShipCells())
}

func (s *ControllerSuite) TestCreateGameIsPersisted() {
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	retrieved, err := s.controller.GetGameDetail(s.ctx, detail.Game.ID)
	s.Require().NoError(err)
	s.Equal(detail.Game.ID, retrieved.Game.ID)
}

// ListOpenGames tests

func (s *ControllerSuite) TestListOpenGamesExcludesOwnGames() {
	_, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)
	bobGame, err := s.controller.CreateGame(s.ctx, bob)
	s.Require().NoError(err)

	open, err := s.controller.ListOpenGames(s.ctx, alice)
	s.Require().NoError(err)

	s.Require().Len(open, 1)
	s.Equal(bobGame.Game.ID, open[0].Game.ID)
	s.Equal("player-bob", open[0].Player1.DisplayName)
}

func (s *ControllerSuite) TestListOpenGamesExcludesNonWaitingGames() {
	gameID := s.activeGame()

	open, err := s.controller.ListOpenGames(s.ctx, carol)
	s.Require().NoError(err)

	for _, o := range open {
		s.NotEqual(gameID, o.Game.ID)
	}
}

// JoinGame tests

func (s *ControllerSuite) TestJoinGameActivates() {
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	joined, err := s.controller.JoinGame(s.ctx, detail.Game.ID, bob)
	s.Require().NoError(err)

	s.Equal(model.GameStatusActive, joined.Game.Status)
	s.Equal(bob, joined.Game.Player2)
	s.Len(joined.Boards, 2)
	s.Equal("player-bob", joined.Player2.DisplayName)
}

func (s *ControllerSuite) TestJoinGameFailsWhenAlreadyActive() {
	gameID := s.activeGame()

	_, err := s.controller.JoinGame(s.ctx, gameID, carol)
	s.ErrorIs(err, model.ErrGameNotWaiting)
}

func (s *ControllerSuite) TestJoinGameFailsForCreator() {
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	_, err = s.controller.JoinGame(s.ctx, detail.Game.ID, alice)
	s.ErrorIs(err, model.ErrAlreadyInGame)
}

func (s *ControllerSuite) TestJoinGameFailsForUnknownGame() {
	_, err := s.controller.JoinGame(s.ctx, "missing", bob)
	s.ErrorIs(err, model.ErrGameNotFound)
}

// CancelGame tests

func (s *ControllerSuite) TestCancelGameSucceedsForOwner() {
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	cancelled, err := s.controller.CancelGame(s.ctx, detail.Game.ID, alice)
	s.Require().NoError(err)

	s.Equal(model.GameStatusCancelled, cancelled.Game.Status)
}

func (s *ControllerSuite) TestCancelGameFailsForNonOwner() {
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	_, err = s.controller.CancelGame(s.ctx, detail.Game.ID, bob)
	s.ErrorIs(err, model.ErrNotGameOwner)
}

func (s *ControllerSuite) TestCancelGameFailsWhenActive() {
	gameID := s.activeGame()

	_, err := s.controller.CancelGame(s.ctx, gameID, alice)
	s.ErrorIs(err, model.ErrGameNotWaiting)
}

// AbandonGame tests

func (s *ControllerSuite) TestAbandonGameForfeitsToOpponent() {
	gameID := s.activeGame()

	abandoned, err := s.controller.AbandonGame(s.ctx, gameID, alice)
	s.Require().NoError(err)

	s.Equal(model.GameStatusFinished, abandoned.Game.Status)
	s.Equal(bob, abandoned.Game.Winner)
}

func (s *ControllerSuite) TestAbandonGameFailsForNonParticipant() {
	gameID := s.activeGame()

	_, err := s.controller.AbandonGame(s.ctx, gameID, carol)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestAbandonGameFailsWhenWaiting() {
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	_, err = s.controller.AbandonGame(s.ctx, detail.Game.ID, alice)
	s.ErrorIs(err, model.ErrGameNotActive)
}

// SubmitMove tests

func (s *ControllerSuite) TestSubmitMoveHit() {
	gameID := s.activeGame()

	// Bob's ships occupy row 0
	result, detail, err := s.controller.SubmitMove(s.ctx, gameID, alice, 0, 0)
	s.Require().NoError(err)

	s.Equal(model.MoveResultHit, result)
	s.Require().Len(detail.Moves, 1)
	s.Equal(int64(1), detail.Moves[0].ID)
	s.Equal(alice, detail.Moves[0].PlayerID)
	s.Equal(model.MoveResultHit, detail.Moves[0].Result)
}

func (s *ControllerSuite) TestSubmitMoveMiss() {
	gameID := s.activeGame()

	result, detail, err := s.controller.SubmitMove(s.ctx, gameID, alice, 7, 7)
	s.Require().NoError(err)

	s.Equal(model.MoveResultMiss, result)
	s.Equal(model.GameStatusActive, detail.Game.Status)
}

func (s *ControllerSuite) TestSubmitMoveAlternatesTurns() {
	gameID := s.activeGame()

	_, _, err := s.controller.SubmitMove(s.ctx, gameID, alice, 7, 7)
	s.Require().NoError(err)

	_, _, err = s.controller.SubmitMove(s.ctx, gameID, alice, 6, 7)
	s.ErrorIs(err, model.ErrInvalidTurnOrState)

	_, _, err = s.controller.SubmitMove(s.ctx, gameID, bob, 7, 7)
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestSubmitMoveFailsOutOfTurnForSecondPlayer() {
	gameID := s.activeGame()

	_, _, err := s.controller.SubmitMove(s.ctx, gameID, bob, 0, 0)
	s.ErrorIs(err, model.ErrInvalidTurnOrState)
}

func (s *ControllerSuite) TestSubmitMoveFailsOutOfBounds() {
	gameID := s.activeGame()

	for _, coords := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		_, _, err := s.controller.SubmitMove(s.ctx, gameID, alice, coords[0], coords[1])
		s.ErrorIs(err, model.ErrInvalidCoordinates)
	}
}

func (s *ControllerSuite) TestSubmitMoveFailsOnDuplicateTarget() {
	gameID := s.activeGame()

	_, _, err := s.controller.SubmitMove(s.ctx, gameID, alice, 7, 7)
	s.Require().NoError(err)
	_, _, err = s.controller.SubmitMove(s.ctx, gameID, bob, 7, 7)
	s.Require().NoError(err)

	_, _, err = s.controller.SubmitMove(s.ctx, gameID, alice, 7, 7)
	s.ErrorIs(err, model.ErrDuplicateMove)
}

func (s *ControllerSuite) TestSubmitMoveFailsWhenWaiting() {
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	_, _, err = s.controller.SubmitMove(s.ctx, detail.Game.ID, alice, 0, 0)
	s.ErrorIs(err, model.ErrInvalidTurnOrState)
}

func (s *ControllerSuite) TestSubmitMoveFailsWhenFinished() {
	gameID := s.activeGame()
	_, err := s.controller.AbandonGame(s.ctx, gameID, bob)
	s.Require().NoError(err)

	_, _, err = s.controller.SubmitMove(s.ctx, gameID, alice, 0, 0)
	s.ErrorIs(err, model.ErrGameFinished)
}

func (s *ControllerSuite) TestSubmitMoveFailsWhenCancelled() {
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)
	_, err = s.controller.CancelGame(s.ctx, detail.Game.ID, alice)
	s.Require().NoError(err)

	_, _, err = s.controller.SubmitMove(s.ctx, detail.Game.ID, alice, 0, 0)
	s.ErrorIs(err, model.ErrGameFinished)
}

func (s *ControllerSuite) TestFifteenthHitWinsTheGame() {
	gameID := s.activeGame()

	// Bob's ships occupy row 0 and row 1 up to x=6. Alice fires at each
	// ship cell; bob answers with misses along rows 7 and 6.
	shipCells := make([][2]int, 0, model.ShipCount)
	for x := 0; x < model.GridSize; x++ {
		shipCells = append(shipCells, [2]int{x, 0})
	}
	for x := 0; x < model.ShipCount-model.GridSize; x++ {
		shipCells = append(shipCells, [2]int{x, 1})
	}

	for i, cell := range shipCells {
		result, detail, err := s.controller.SubmitMove(s.ctx, gameID, alice, cell[0], cell[1])
		s.Require().NoError(err)
		s.Equal(model.MoveResultHit, result)

		if i < len(shipCells)-1 {
			s.Equal(model.GameStatusActive, detail.Game.Status)
			_, _, err = s.controller.SubmitMove(s.ctx, gameID, bob, i%model.GridSize, 7-i/model.GridSize)
			s.Require().NoError(err)
		} else {
			s.Equal(model.GameStatusFinished, detail.Game.Status)
			s.Equal(alice, detail.Game.Winner)
		}
	}

	_, _, err := s.controller.SubmitMove(s.ctx, gameID, bob, 7, 7)
	s.ErrorIs(err, model.ErrGameFinished)
}

// Inactivity tests

func (s *ControllerSuite) TestPollAutoPlaysMissForStaller() {
	gameID := s.activeGame()

	s.clock.Advance(InactivityTimeout)
	s.random.QueueIntn(7, 7)

	result, err := s.controller.PollGame(s.ctx, gameID, 0)
	s.Require().NoError(err)

	s.Require().Len(result.Detail.Moves, 1)
	auto := result.Detail.Moves[0]
	s.Equal(alice, auto.PlayerID)
	s.Equal(model.MoveResultMiss, auto.Result)
	s.Equal(7, auto.X)
	s.Equal(7, auto.Y)
	s.Equal(1, result.Detail.Game.Player1InactiveMisses)
	s.True(result.Changed)
	s.Equal(auto.ID, result.LastMoveID)
}

func (s *ControllerSuite) TestAutoPlayedMoveIsMissEvenOnShipCell() {
	gameID := s.activeGame()

	s.clock.Advance(InactivityTimeout)
	// (0, 0) holds one of bob's ships
	s.random.QueueIntn(0, 0)

	result, err := s.controller.PollGame(s.ctx, gameID, 0)
	s.Require().NoError(err)

	s.Require().Len(result.Detail.Moves, 1)
	s.Equal(model.MoveResultMiss, result.Detail.Moves[0].Result)
}

func (s *ControllerSuite) TestPollBeforeTimeoutPlaysNothing() {
	gameID := s.activeGame()

	s.clock.Advance(InactivityTimeout - time.Second)

	result, err := s.controller.PollGame(s.ctx, gameID, 0)
	s.Require().NoError(err)

	s.Empty(result.Detail.Moves)
	s.False(result.Changed)
}

func (s *ControllerSuite) TestStallerLateMoveIsRejectedAfterAutoPlay() {
	gameID := s.activeGame()

	s.clock.Advance(InactivityTimeout)
	s.random.QueueIntn(7, 7)

	// The auto-played miss consumed alice's turn, so her own late
	// request is now out of turn
	_, _, err := s.controller.SubmitMove(s.ctx, gameID, alice, 0, 0)
	s.ErrorIs(err, model.ErrInvalidTurnOrState)

	detail, err := s.controller.GetGameDetail(s.ctx, gameID)
	s.Require().NoError(err)
	s.Require().Len(detail.Moves, 1)
	s.Equal(alice, detail.Moves[0].PlayerID)
}

func (s *ControllerSuite) TestOpponentPollAdvancesStallerForfeiture() {
	gameID := s.activeGame()

	autoCells := [][2]int{{0, 7}, {1, 7}, {2, 7}}
	for i, cell := range autoCells {
		s.clock.Advance(InactivityTimeout)
		s.random.QueueIntn(cell[0], cell[1])

		result, err := s.controller.PollGame(s.ctx, gameID, 0)
		s.Require().NoError(err)
		s.Equal(i+1, result.Detail.Game.Player1InactiveMisses)

		if i < len(autoCells)-1 {
			// Bob answers promptly each round, putting alice back on
			// the clock
			_, _, err = s.controller.SubmitMove(s.ctx, gameID, bob, i, 6)
			s.Require().NoError(err)
		}
	}

	detail, err := s.controller.GetGameDetail(s.ctx, gameID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusFinished, detail.Game.Status)
	s.Equal(bob, detail.Game.Winner)
	s.Equal(3, detail.Game.Player1InactiveMisses)
}

func (s *ControllerSuite) TestCheckInactivitySkipsNonActiveGames() {
	detail, err := s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	s.clock.Advance(InactivityTimeout * 2)

	result, err := s.controller.PollGame(s.ctx, detail.Game.ID, 0)
	s.Require().NoError(err)
	s.Empty(result.Detail.Moves)
}

// PollGame tests

func (s *ControllerSuite) TestPollReturnsNewMoves() {
	gameID := s.activeGame()

	_, _, err := s.controller.SubmitMove(s.ctx, gameID, alice, 7, 7)
	s.Require().NoError(err)

	result, err := s.controller.PollGame(s.ctx, gameID, 0)
	s.Require().NoError(err)

	s.True(result.Changed)
	s.Equal(int64(1), result.LastMoveID)
	s.Len(result.Detail.Moves, 1)
}

func (s *ControllerSuite) TestPollReportsNoChangesAtCursor() {
	gameID := s.activeGame()

	_, _, err := s.controller.SubmitMove(s.ctx, gameID, alice, 7, 7)
	s.Require().NoError(err)

	result, err := s.controller.PollGame(s.ctx, gameID, 1)
	s.Require().NoError(err)

	s.False(result.Changed)
	s.Equal(int64(1), result.LastMoveID)
}

func (s *ControllerSuite) TestPollFailsForUnknownGame() {
	_, err := s.controller.PollGame(s.ctx, "missing", 0)
	s.ErrorIs(err, model.ErrGameNotFound)
}

// PlayerStats tests

func (s *ControllerSuite) TestPlayerStatsListsOnlyFinishedGames() {
	finishedID := s.activeGame()
	_, err := s.controller.AbandonGame(s.ctx, finishedID, bob)
	s.Require().NoError(err)

	// A second, still waiting game should not appear
	_, err = s.controller.CreateGame(s.ctx, alice)
	s.Require().NoError(err)

	stats, err := s.controller.PlayerStats(s.ctx, alice)
	s.Require().NoError(err)

	s.Require().Len(stats, 1)
	s.Equal(finishedID, stats[0].Game.ID)
	s.Equal(alice, stats[0].Game.Winner)
	s.Len(stats[0].Boards, 2)
}

func (s *ControllerSuite) TestPlayerStatsEmptyForNewPlayer() {
	stats, err := s.controller.PlayerStats(s.ctx, carol)
	s.Require().NoError(err)
	s.Empty(stats)
}
