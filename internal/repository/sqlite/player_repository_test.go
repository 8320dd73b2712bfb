package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/repository"
	"github.com/idiomoji/server/internal/repository/sqlite"
	"github.com/idiomoji/server/internal/testutil"
)

type PlayerRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.PlayerRepository
}

func (s *PlayerRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewPlayerRepository(s.db)
}

func (s *PlayerRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *PlayerRepositorySuite) TestGet_Missing() {
	got, err := s.repo.Get(context.Background(), "nobody")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *PlayerRepositorySuite) TestInit_CreatesAndRefreshes() {
	ctx := context.Background()

	stats, err := s.repo.Init(ctx, "uid-1", "Ada", "ada@example.com", "https://img/a.png")
	s.Require().NoError(err)
	s.Assert().Equal("Ada", stats.Name)
	s.Assert().Equal(0, stats.TotalGames)

	// Counters survive a profile refresh on the next sign-in.
	_, err = s.db.ExecContext(ctx, `UPDATE players SET total_games = 3, total_score = 250 WHERE uid = ?`, "uid-1")
	s.Require().NoError(err)

	stats, err = s.repo.Init(ctx, "uid-1", "Ada L.", "ada@example.com", "https://img/b.png")
	s.Require().NoError(err)
	s.Assert().Equal("Ada L.", stats.Name)
	s.Assert().Equal("https://img/b.png", stats.PhotoURL)
	s.Assert().Equal(3, stats.TotalGames)
	s.Assert().Equal(250, stats.TotalScore)
}

func (s *PlayerRepositorySuite) TestSaveAndGet_RoundTripWithHistory() {
	ctx := context.Background()

	_, err := s.repo.Init(ctx, "uid-1", "Ada", "ada@example.com", "")
	s.Require().NoError(err)

	stats := models.PlayerStats{
		UID: "uid-1", Name: "Ada", Email: "ada@example.com",
		TotalGames: 2, TotalWins: 1, TotalScore: 175,
		CurrentStreak: 1, MaxStreak: 1, LastPlayed: "2026-08-28",
		History: []models.DailyStats{
			{Date: "2026-08-27", Attempts: 5, Won: false, Score: 0, AttemptValues: []string{"a", "b", "c", "d", "e"}},
			{Date: "2026-08-28", Attempts: 2, Won: true, Score: 75, UsedHint: true, AttemptValues: []string{"x", "elephant in the room"}},
		},
	}
	s.Require().NoError(s.repo.Save(ctx, stats))

	got, err := s.repo.Get(ctx, "uid-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(2, got.TotalGames)
	s.Assert().Equal("2026-08-28", got.LastPlayed)
	s.Require().Len(got.History, 2)
	s.Assert().Equal("2026-08-27", got.History[0].Date)
	s.Assert().True(got.History[1].UsedHint)
	s.Assert().Equal([]string{"x", "elephant in the room"}, got.History[1].AttemptValues)
}

func (s *PlayerRepositorySuite) TestSave_ReplacesHistory() {
	ctx := context.Background()

	_, err := s.repo.Init(ctx, "uid-1", "Ada", "", "")
	s.Require().NoError(err)

	first := models.PlayerStats{
		UID: "uid-1", Name: "Ada", TotalGames: 1,
		History: []models.DailyStats{{Date: "2026-08-27", Attempts: 1, Won: true, Score: 100, AttemptValues: []string{"x"}}},
	}
	s.Require().NoError(s.repo.Save(ctx, first))

	first.TotalGames = 2
	first.History = append(first.History, models.DailyStats{Date: "2026-08-28", Attempts: 3, Won: true, Score: 50, AttemptValues: []string{"a", "b", "c"}})
	s.Require().NoError(s.repo.Save(ctx, first))

	got, err := s.repo.Get(ctx, "uid-1")
	s.Require().NoError(err)
	s.Require().Len(got.History, 2, "history rows are rewritten, not duplicated")
}

func (s *PlayerRepositorySuite) TestList() {
	ctx := context.Background()

	_, err := s.repo.Init(ctx, "uid-1", "Ada", "", "")
	s.Require().NoError(err)
	_, err = s.repo.Init(ctx, "uid-2", "Grace", "", "")
	s.Require().NoError(err)

	players, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
}

func TestPlayerRepositorySuite(t *testing.T) {
	suite.Run(t, new(PlayerRepositorySuite))
}
