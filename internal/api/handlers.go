package api

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/flashstudy/internal/services"
)

// Pinger reports whether the backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	StudyService    services.StudyService
	ProgressService services.ProgressService
	LibraryService  services.LibraryService
	CardSource      services.CardSource
	DB              Pinger

	validate *validator.Validate
}

// NewServer wires the HTTP handlers to the services.
func NewServer(study services.StudyService, progress services.ProgressService, library services.LibraryService, cards services.CardSource, db Pinger) *Server {
	return &Server{
		StudyService:    study,
		ProgressService: progress,
		LibraryService:  library,
		CardSource:      cards,
		DB:              db,
		validate:        newValidator(),
	}
}
