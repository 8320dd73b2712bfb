package daily

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/testutil/mocks"
	"github.com/idiomoji/server/internal/worker"
)

const testDate = "2026-08-28"

type fakeQueue struct {
	jobs []worker.Job
}

func (q *fakeQueue) Submit(job worker.Job) {
	q.jobs = append(q.jobs, job)
}

type fixture struct {
	puzzles *mocks.MockPuzzleRepository
	players *mocks.MockPlayerRepository
	games   *mocks.MockDailyGameRepository
	queue   *fakeQueue
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{
		puzzles: new(mocks.MockPuzzleRepository),
		players: new(mocks.MockPlayerRepository),
		games:   new(mocks.MockDailyGameRepository),
		queue:   new(fakeQueue),
	}
	f.svc = NewService(f.puzzles, f.players, f.games, f.queue, nil)
	f.svc.today = func() string { return testDate }
	return f
}

func testPuzzle() *models.Puzzle {
	return &models.Puzzle{
		ID:     testDate,
		Emoji:  "🐘🏠",
		Answer: "elephant in the room",
		Hint:   "an obvious problem nobody mentions",
	}
}

func TestStartOrResumeCreatesFreshGame(t *testing.T) {
	f := newFixture()

	f.puzzles.On("Get", mock.Anything, testDate).Return(testPuzzle(), nil)
	f.games.On("Get", mock.Anything, "uid-1", testDate).Return(nil, nil)
	f.games.On("Save", mock.Anything, mock.MatchedBy(func(dg models.DailyGame) bool {
		return dg.PlayerUID == "uid-1" && dg.Date == testDate && !dg.GameOver && len(dg.Attempts) == 0
	})).Return(nil)
	f.players.On("Get", mock.Anything, "uid-1").Return(&models.PlayerStats{UID: "uid-1"}, nil)

	st, err := f.svc.StartOrResume(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, testDate, st.Game.Date)
	assert.Equal(t, "🐘🏠", st.Puzzle.Emoji)
	assert.Empty(t, st.Puzzle.Answer, "answer must stay hidden while in play")
	assert.Empty(t, st.Puzzle.Hint)
	f.games.AssertExpectations(t)
}

func TestStartOrResumeRestoresSavedGame(t *testing.T) {
	f := newFixture()

	saved := &models.DailyGame{
		PlayerUID: "uid-1", Date: testDate, PuzzleID: testDate,
		Attempts: []string{"wrong one"}, ShowHint: true,
	}
	f.puzzles.On("Get", mock.Anything, testDate).Return(testPuzzle(), nil)
	f.games.On("Get", mock.Anything, "uid-1", testDate).Return(saved, nil)
	f.players.On("Get", mock.Anything, "uid-1").Return(&models.PlayerStats{UID: "uid-1"}, nil)

	st, err := f.svc.StartOrResume(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Len(t, st.Game.Attempts, 1)
	assert.Equal(t, "an obvious problem nobody mentions", st.Puzzle.Hint)
	f.games.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestStartOrResumeNoPuzzleScheduled(t *testing.T) {
	f := newFixture()
	f.puzzles.On("Get", mock.Anything, testDate).Return(nil, nil)

	_, err := f.svc.StartOrResume(context.Background(), "uid-1")
	require.Error(t, err)
}

func TestGuessWinSecondAttemptScores75(t *testing.T) {
	f := newFixture()

	inPlay := &models.DailyGame{
		PlayerUID: "uid-1", Date: testDate, PuzzleID: testDate,
		Attempts: []string{"spill the beans"},
	}
	f.games.On("Get", mock.Anything, "uid-1", testDate).Return(inPlay, nil)
	f.puzzles.On("Get", mock.Anything, testDate).Return(testPuzzle(), nil)
	f.games.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.players.On("Get", mock.Anything, "uid-1").Return(&models.PlayerStats{UID: "uid-1"}, nil)

	st, err := f.svc.Guess(context.Background(), "uid-1", "  Elephant In The Room ")
	require.NoError(t, err)
	assert.True(t, st.Game.Won)
	assert.True(t, st.Game.GameOver)
	assert.Equal(t, 75, st.Game.Score)
	assert.Equal(t, "elephant in the room", st.Puzzle.Answer)
	assert.Contains(t, st.ShareText, "Solved in 2 tries (75 points)!")

	require.Len(t, f.queue.jobs, 1)
	syncJob, ok := f.queue.jobs[0].(*worker.SyncPlayerStatsJob)
	require.True(t, ok)
	assert.Equal(t, 1, syncJob.Stats.TotalGames)
	assert.Equal(t, 1, syncJob.Stats.CurrentStreak)
	assert.Equal(t, 75, syncJob.Stats.TotalScore)
}

func TestGuessWinWithHintsAppliesPenalties(t *testing.T) {
	f := newFixture()

	inPlay := &models.DailyGame{
		PlayerUID: "uid-1", Date: testDate, PuzzleID: testDate,
		Attempts: []string{}, ShowHint: true, ShowPatternHint: true,
	}
	f.games.On("Get", mock.Anything, "uid-1", testDate).Return(inPlay, nil)
	f.puzzles.On("Get", mock.Anything, testDate).Return(testPuzzle(), nil)
	f.games.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.players.On("Get", mock.Anything, "uid-1").Return(&models.PlayerStats{UID: "uid-1"}, nil)

	st, err := f.svc.Guess(context.Background(), "uid-1", "elephant in the room")
	require.NoError(t, err)
	assert.Equal(t, 70, st.Game.Score) // 100 - 20 - 10
}

func TestGuessFifthMissLosesRound(t *testing.T) {
	f := newFixture()

	inPlay := &models.DailyGame{
		PlayerUID: "uid-1", Date: testDate, PuzzleID: testDate,
		Attempts: []string{"a", "b", "c", "d"},
	}
	stats := &models.PlayerStats{UID: "uid-1", CurrentStreak: 4, MaxStreak: 4}
	f.games.On("Get", mock.Anything, "uid-1", testDate).Return(inPlay, nil)
	f.puzzles.On("Get", mock.Anything, testDate).Return(testPuzzle(), nil)
	f.games.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.players.On("Get", mock.Anything, "uid-1").Return(stats, nil)

	st, err := f.svc.Guess(context.Background(), "uid-1", "still wrong")
	require.NoError(t, err)
	assert.True(t, st.Game.GameOver)
	assert.False(t, st.Game.Won)
	assert.Equal(t, 0, st.Game.Score)
	assert.Contains(t, st.ShareText, "Try again tomorrow!")

	require.Len(t, f.queue.jobs, 1)
	syncJob := f.queue.jobs[0].(*worker.SyncPlayerStatsJob)
	assert.Equal(t, 0, syncJob.Stats.CurrentStreak, "loss resets the streak")
	assert.Equal(t, 4, syncJob.Stats.MaxStreak)
}

func TestGuessAfterGameOverIsIdempotent(t *testing.T) {
	f := newFixture()

	finished := &models.DailyGame{
		PlayerUID: "uid-1", Date: testDate, PuzzleID: testDate,
		Attempts: []string{"elephant in the room"}, GameOver: true, Won: true, Score: 100,
	}
	f.games.On("Get", mock.Anything, "uid-1", testDate).Return(finished, nil)
	f.puzzles.On("Get", mock.Anything, testDate).Return(testPuzzle(), nil)
	f.players.On("Get", mock.Anything, "uid-1").Return(&models.PlayerStats{UID: "uid-1"}, nil)

	st, err := f.svc.Guess(context.Background(), "uid-1", "another guess")
	require.NoError(t, err)
	assert.Equal(t, 100, st.Game.Score)
	assert.Len(t, st.Game.Attempts, 1)
	f.games.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, f.queue.jobs)
}

func TestGuessDuplicateDateDoesNotDoubleCount(t *testing.T) {
	f := newFixture()

	inPlay := &models.DailyGame{
		PlayerUID: "uid-1", Date: testDate, PuzzleID: testDate,
		Attempts: []string{},
	}
	// History already holds today's entry, so the fold must be a no-op.
	stats := &models.PlayerStats{
		UID: "uid-1", TotalGames: 1, TotalWins: 1, LastPlayed: testDate,
		History: []models.DailyStats{{Date: testDate, Won: true, Score: 100}},
	}
	f.games.On("Get", mock.Anything, "uid-1", testDate).Return(inPlay, nil)
	f.puzzles.On("Get", mock.Anything, testDate).Return(testPuzzle(), nil)
	f.games.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.players.On("Get", mock.Anything, "uid-1").Return(stats, nil)

	_, err := f.svc.Guess(context.Background(), "uid-1", "elephant in the room")
	require.NoError(t, err)
	assert.Empty(t, f.queue.jobs, "no sync job for a date already in history")
}

func TestGuessEmptyRejected(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Guess(context.Background(), "uid-1", "   ")
	require.Error(t, err)
}

func TestUseHintTogglesOneWay(t *testing.T) {
	f := newFixture()

	inPlay := &models.DailyGame{
		PlayerUID: "uid-1", Date: testDate, PuzzleID: testDate, Attempts: []string{},
	}
	f.games.On("Get", mock.Anything, "uid-1", testDate).Return(inPlay, nil)
	f.puzzles.On("Get", mock.Anything, testDate).Return(testPuzzle(), nil)
	f.games.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.players.On("Get", mock.Anything, "uid-1").Return(&models.PlayerStats{UID: "uid-1"}, nil)

	st, err := f.svc.UseHint(context.Background(), "uid-1", HintPattern)
	require.NoError(t, err)
	assert.True(t, st.Game.ShowPatternHint)
	assert.Equal(t, "________ __ ___ ____", st.Puzzle.Pattern)
}

func TestUseHintInvalidKind(t *testing.T) {
	f := newFixture()

	inPlay := &models.DailyGame{
		PlayerUID: "uid-1", Date: testDate, PuzzleID: testDate, Attempts: []string{},
	}
	f.games.On("Get", mock.Anything, "uid-1", testDate).Return(inPlay, nil)
	f.puzzles.On("Get", mock.Anything, testDate).Return(testPuzzle(), nil)

	_, err := f.svc.UseHint(context.Background(), "uid-1", "reveal")
	require.Error(t, err)
}

func TestUseHintAfterGameOverRejected(t *testing.T) {
	f := newFixture()

	finished := &models.DailyGame{
		PlayerUID: "uid-1", Date: testDate, PuzzleID: testDate,
		Attempts: []string{"x"}, GameOver: true,
	}
	f.games.On("Get", mock.Anything, "uid-1", testDate).Return(finished, nil)
	f.puzzles.On("Get", mock.Anything, testDate).Return(testPuzzle(), nil)

	_, err := f.svc.UseHint(context.Background(), "uid-1", HintText)
	require.Error(t, err)
}
