package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/repository"
	"github.com/vytor/flashstudy/internal/repository/sqlite"
	"github.com/vytor/flashstudy/internal/testutil"
)

type FlashcardRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.FlashcardRepository
	base time.Time
}

func (s *FlashcardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFlashcardRepository(s.db)
	s.base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	testutil.InsertBook(s.T(), s.db, "b1", "u1", s.base)
	testutil.InsertSection(s.T(), s.db, "s1", "b1", s.base)
	testutil.InsertSection(s.T(), s.db, "s2", "b1", s.base.Add(time.Second))
}

func (s *FlashcardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *FlashcardRepositorySuite) TestInsertAppliesDefaults() {
	ctx := context.Background()

	card, err := s.repo.Insert(ctx, models.Flashcard{
		SectionID: "s1",
		FrontText: "bonjour",
		BackText:  "hello",
		Back:      models.CardFace{Gradient: "gradient-7", Audio: "/uploads/hello.mp3"},
	})
	s.Require().NoError(err)
	s.Assert().NotEmpty(card.ID)
	s.Assert().False(card.CreatedAt.IsZero())

	got, err := s.repo.Get(ctx, card.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("bonjour", got.FrontText)
	s.Assert().Equal("hello", got.BackText)
	s.Assert().Equal(models.DefaultFrontGradient, got.Front.Gradient)
	s.Assert().Equal("gradient-7", got.Back.Gradient)
	s.Assert().Equal(models.DefaultFont, got.Front.Font)
	s.Assert().Equal(models.DefaultFont, got.Back.Font)
	s.Assert().Equal("/uploads/hello.mp3", got.Back.Audio)
	s.Assert().Empty(got.Front.Image)
}

func (s *FlashcardRepositorySuite) TestInsertUnknownSection() {
	_, err := s.repo.Insert(context.Background(), models.Flashcard{SectionID: "missing", FrontText: "a", BackText: "b"})
	s.Assert().Error(err)
}

func (s *FlashcardRepositorySuite) TestGetMissing() {
	got, err := s.repo.Get(context.Background(), "nope")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *FlashcardRepositorySuite) TestListBySectionNewestFirst() {
	ctx := context.Background()
	testutil.InsertFlashcard(s.T(), s.db, "c1", "s1", s.base)
	testutil.InsertFlashcard(s.T(), s.db, "c2", "s1", s.base.Add(2*time.Second))
	testutil.InsertFlashcard(s.T(), s.db, "c3", "s1", s.base.Add(time.Second))
	testutil.InsertFlashcard(s.T(), s.db, "other", "s2", s.base)

	cards, err := s.repo.ListBySection(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Equal([]string{"c2", "c3", "c1"}, testutil.IDs(cards))
	for _, c := range cards {
		s.Assert().Equal("s1", c.SectionID)
	}
}

func (s *FlashcardRepositorySuite) TestListBySectionEmpty() {
	cards, err := s.repo.ListBySection(context.Background(), "s2")
	s.Require().NoError(err)
	s.Assert().Empty(cards)
}

func TestFlashcardRepositorySuite(t *testing.T) {
	suite.Run(t, new(FlashcardRepositorySuite))
}
