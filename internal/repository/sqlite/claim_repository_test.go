package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/idiomoji/server/internal/repository"
	"github.com/idiomoji/server/internal/repository/sqlite"
	"github.com/idiomoji/server/internal/testutil"
)

type ClaimRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ClaimRepository
}

func (s *ClaimRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewClaimRepository(s.db)
}

func (s *ClaimRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ClaimRepositorySuite) TestIsAdmin_DefaultFalse() {
	isAdmin, err := s.repo.IsAdmin(context.Background(), "uid-1")
	s.Require().NoError(err)
	s.Assert().False(isAdmin)
}

func (s *ClaimRepositorySuite) TestSetAndRevoke() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SetAdmin(ctx, "uid-1", true))
	isAdmin, err := s.repo.IsAdmin(ctx, "uid-1")
	s.Require().NoError(err)
	s.Assert().True(isAdmin)

	s.Require().NoError(s.repo.SetAdmin(ctx, "uid-1", false))
	isAdmin, err = s.repo.IsAdmin(ctx, "uid-1")
	s.Require().NoError(err)
	s.Assert().False(isAdmin)
}

func TestClaimRepositorySuite(t *testing.T) {
	suite.Run(t, new(ClaimRepositorySuite))
}
