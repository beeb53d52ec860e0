package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashstudy/internal/models"
	"github.com/vytor/flashstudy/internal/repository/sqlite"
	"github.com/vytor/flashstudy/internal/services"
	"github.com/vytor/flashstudy/internal/study"
	"github.com/vytor/flashstudy/internal/testutil"
	"github.com/vytor/flashstudy/internal/testutil/mocks"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

type APISuite struct {
	suite.Suite
	queue    *mocks.MockJobQueue
	progress services.ProgressService
	handler  http.Handler
	closeDB  func()
}

func (s *APISuite) SetupTest() {
	db := testutil.NewTestDB(s.T())
	s.closeDB = func() { testutil.MustClose(s.T(), db) }

	books := sqlite.NewBookRepository(db)
	sections := sqlite.NewSectionRepository(db)
	flashcards := sqlite.NewFlashcardRepository(db)
	cards := services.NewCardSource(books, sections, flashcards)

	s.queue = new(mocks.MockJobQueue)
	s.queue.On("EnqueueProgress", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.progress = services.NewProgressService(sqlite.NewProgressRepository(db))

	server := NewServer(
		services.NewStudyService(cards, s.queue),
		s.progress,
		services.NewLibraryService(books, sections, flashcards),
		cards,
		fakePinger{},
	)
	s.handler = server.Routes()
}

func (s *APISuite) TearDownTest() {
	s.closeDB()
}

func (s *APISuite) do(method, path, user string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(userHeaderName, user)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) decode(rec *httptest.ResponseRecorder, dst any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func (s *APISuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body errorBody
	s.decode(rec, &body)
	return body.Error.Code
}

// seed creates a book with one section holding the given card fronts.
func (s *APISuite) seed(fronts ...string) (models.Book, models.Section) {
	rec := s.do(http.MethodPost, "/api/books", "u1", map[string]string{"title": "Spanish"})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var book models.Book
	s.decode(rec, &book)

	rec = s.do(http.MethodPost, "/api/sections", "u1", map[string]string{"name": "Verbs", "book_id": book.ID})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var section models.Section
	s.decode(rec, &section)

	for _, front := range fronts {
		rec = s.do(http.MethodPost, "/api/flashcards", "u1", map[string]string{
			"section_id": section.ID, "front_text": front, "back_text": front + " (back)",
		})
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	}
	return book, section
}

func (s *APISuite) startSection(sectionID string) services.SessionView {
	rec := s.do(http.MethodPost, "/api/study/sessions", "u1", map[string]string{"scope": "section", "id": sectionID})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var res services.StartResult
	s.decode(rec, &res)
	s.Require().NotNil(res.Session)
	return *res.Session
}

func (s *APISuite) TestRequiresUser() {
	rec := s.do(http.MethodGet, "/api/books", "", nil)
	s.Assert().Equal(http.StatusUnauthorized, rec.Code)
	s.Assert().Equal("UNAUTHORIZED", s.errorCode(rec))
}

func (s *APISuite) TestUserFromCookie() {
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.AddCookie(&http.Cookie{Name: userCookieName, Value: "u1"})
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	s.Assert().Equal(http.StatusOK, rec.Code)
	s.Assert().JSONEq(`[]`, rec.Body.String())
}

func (s *APISuite) TestStudyFlow() {
	_, section := s.seed("uno", "dos", "tres")
	view := s.startSection(section.ID)
	s.Assert().Equal(3, view.Total)
	s.Assert().Equal("active", view.State)

	rec := s.do(http.MethodPost, "/api/study/sessions/"+view.ID+"/flip", "u1", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var flipped services.SessionView
	s.decode(rec, &flipped)
	s.Assert().True(flipped.Flipped)

	var answer services.AnswerResult
	for _, d := range []string{"easy", "HARD", "easy"} {
		rec = s.do(http.MethodPost, "/api/study/sessions/"+view.ID+"/answer", "u1", map[string]string{"difficulty": d})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.decode(rec, &answer)
		s.Assert().True(answer.ProgressQueued)
	}
	s.Assert().True(answer.Complete)
	s.Require().NotNil(answer.Summary)
	s.Assert().Equal(study.Summary{Answered: 3, Total: 3}, *answer.Summary)
	s.queue.AssertNumberOfCalls(s.T(), "EnqueueProgress", 3)
	s.queue.AssertCalled(s.T(), "EnqueueProgress", "u1", mock.Anything, models.DifficultyHard)

	rec = s.do(http.MethodGet, "/api/study/sessions/"+view.ID, "u1", nil)
	s.Assert().Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestExitConfirmation() {
	_, section := s.seed("uno", "dos")
	view := s.startSection(section.ID)

	rec := s.do(http.MethodPost, "/api/study/sessions/"+view.ID+"/answer", "u1", map[string]string{"difficulty": "easy"})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/study/sessions/"+view.ID+"/exit", "u1", nil)
	s.Require().Equal(http.StatusConflict, rec.Code, rec.Body.String())
	var exit services.ExitResult
	s.decode(rec, &exit)
	s.Assert().True(exit.ConfirmationRequired)
	s.Assert().Equal(study.Summary{Answered: 1, Total: 2}, exit.Summary)

	rec = s.do(http.MethodGet, "/api/study/sessions/"+view.ID+"/summary", "u1", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/study/sessions/"+view.ID+"/exit", "u1", map[string]bool{"confirm": true})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &exit)
	s.Assert().False(exit.ConfirmationRequired)
	s.Assert().Equal(1, exit.Summary.Answered)
}

func (s *APISuite) TestStartSession_Errors() {
	book, _ := s.seed()

	rec := s.do(http.MethodPost, "/api/study/sessions", "u1", map[string]string{"scope": "book", "id": book.ID})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().JSONEq(`{"empty":true}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/study/sessions", "u1", map[string]string{"scope": "section", "id": "missing"})
	s.Assert().Equal(http.StatusNotFound, rec.Code)
	s.Assert().Equal("NOT_FOUND", s.errorCode(rec))

	rec = s.do(http.MethodPost, "/api/study/sessions", "u1", map[string]string{"scope": "shelf", "id": "x"})
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal("VALIDATION_ERROR", s.errorCode(rec))

	rec = s.do(http.MethodPost, "/api/study/sessions", "u1", "not an object")
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal("BAD_REQUEST", s.errorCode(rec))
}

func (s *APISuite) TestAnswer_BadDifficulty() {
	_, section := s.seed("uno")
	view := s.startSection(section.ID)

	rec := s.do(http.MethodPost, "/api/study/sessions/"+view.ID+"/answer", "u1", map[string]string{"difficulty": "medium"})
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal("VALIDATION_ERROR", s.errorCode(rec))
	s.queue.AssertNotCalled(s.T(), "EnqueueProgress", mock.Anything, mock.Anything, mock.Anything)
}

func (s *APISuite) TestSessionBelongsToUser() {
	_, section := s.seed("uno")
	view := s.startSection(section.ID)

	rec := s.do(http.MethodPost, "/api/study/sessions/"+view.ID+"/flip", "u2", nil)
	s.Assert().Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestCardListings() {
	book, section := s.seed("uno", "dos")

	rec := s.do(http.MethodGet, "/api/sections/"+section.ID+"/flashcards", "u1", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var cards []models.Flashcard
	s.decode(rec, &cards)
	s.Assert().Len(cards, 2)

	rec = s.do(http.MethodGet, "/api/books/"+book.ID+"/flashcards", "u1", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &cards)
	s.Assert().Len(cards, 2)

	rec = s.do(http.MethodGet, "/api/books/"+book.ID+"/sections", "u1", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var sections []models.Section
	s.decode(rec, &sections)
	s.Assert().Len(sections, 1)

	rec = s.do(http.MethodGet, "/api/books/missing/flashcards", "u1", nil)
	s.Assert().Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestProgressEndpoints() {
	_, section := s.seed("uno")
	rec := s.do(http.MethodGet, "/api/sections/"+section.ID+"/flashcards", "u1", nil)
	var cards []models.Flashcard
	s.decode(rec, &cards)
	s.Require().Len(cards, 1)

	_, err := s.progress.RecordAnswer(context.Background(), "u1", cards[0].ID, models.DifficultyHard)
	s.Require().NoError(err)

	rec = s.do(http.MethodGet, "/api/progress?difficulty=hard&section_id="+section.ID, "u1", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var list []models.StudyProgress
	s.decode(rec, &list)
	s.Require().Len(list, 1)
	s.Assert().Equal(1, list[0].Repetitions)

	rec = s.do(http.MethodGet, "/api/progress?difficulty=easy", "u1", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().JSONEq(`[]`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/progress/"+cards[0].ID, "u1", nil)
	s.Assert().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/progress/"+cards[0].ID, "u2", nil)
	s.Assert().Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/progress?limit=-1", "u1", nil)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestHealth() {
	rec := s.do(http.MethodGet, "/healthz", "", nil)
	s.Assert().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/readyz", "", nil)
	s.Assert().Equal(http.StatusOK, rec.Code)

	down := &Server{DB: fakePinger{err: stderrors.New("closed")}}
	rec = httptest.NewRecorder()
	down.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	s.Assert().Equal(http.StatusServiceUnavailable, rec.Code)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
