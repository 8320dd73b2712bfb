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

type DailyGameRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.DailyGameRepository
}

func (s *DailyGameRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewDailyGameRepository(s.db)
}

func (s *DailyGameRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *DailyGameRepositorySuite) TestGet_Missing() {
	got, err := s.repo.Get(context.Background(), "uid-1", "2026-08-28")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *DailyGameRepositorySuite) TestSaveAndGet() {
	ctx := context.Background()

	dg := models.DailyGame{
		PlayerUID: "uid-1",
		Date:      "2026-08-28",
		PuzzleID:  "2026-08-28",
		Attempts:  []string{"first try", "second try"},
		ShowHint:  true,
	}
	s.Require().NoError(s.repo.Save(ctx, dg))

	got, err := s.repo.Get(ctx, "uid-1", "2026-08-28")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal([]string{"first try", "second try"}, got.Attempts)
	s.Assert().True(got.ShowHint)
	s.Assert().False(got.GameOver)
}

func (s *DailyGameRepositorySuite) TestSave_Upserts() {
	ctx := context.Background()

	dg := models.DailyGame{PlayerUID: "uid-1", Date: "2026-08-28", PuzzleID: "2026-08-28", Attempts: []string{"a"}}
	s.Require().NoError(s.repo.Save(ctx, dg))

	dg.Attempts = append(dg.Attempts, "elephant in the room")
	dg.GameOver = true
	dg.Won = true
	dg.Score = 75
	s.Require().NoError(s.repo.Save(ctx, dg))

	got, err := s.repo.Get(ctx, "uid-1", "2026-08-28")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().True(got.Won)
	s.Assert().Equal(75, got.Score)
	s.Require().Len(got.Attempts, 2)
}

func TestDailyGameRepositorySuite(t *testing.T) {
	suite.Run(t, new(DailyGameRepositorySuite))
}
