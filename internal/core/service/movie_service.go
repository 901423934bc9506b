package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/ports"
)

type movieService struct {
	repo ports.MovieRepository
	log  zerolog.Logger
}

// NewMovieService returns a MovieService implementation.
func NewMovieService(repo ports.MovieRepository, log zerolog.Logger) ports.MovieService {
	return &movieService{repo: repo, log: log}
}

func (s *movieService) Create(ctx context.Context, input ports.CreateMovieInput) (*domain.Movie, error) {
	existing, err := s.repo.FindByTitle(ctx, input.Title)
	if err != nil && !errors.Is(err, domain.ErrMovieNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrMovieExists
	}

	now := time.Now().UTC()
	movie := &domain.Movie{
		Title:           input.Title,
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		ReleaseDate:     input.ReleaseDate,
		PosterURL:       input.PosterURL,
		Genres:          input.Genres,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, movie)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("title", created.Title).Msg("movie created")
	return created, nil
}

func (s *movieService) Get(ctx context.Context, id string) (*domain.Movie, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *movieService) List(ctx context.Context, input ports.ListMoviesInput) (*ports.ListMoviesResult, error) {
	input.Page, input.Limit = normalizePage(input.Page, input.Limit)

	items, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, err
	}

	return &ports.ListMoviesResult{
		Items:      items,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages(total, input.Limit),
	}, nil
}

func (s *movieService) Update(ctx context.Context, id string, update ports.UpdateMovieInput) (*domain.Movie, error) {
	return s.repo.Update(ctx, id, update)
}

func (s *movieService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("movie_id", id).Msg("movie deleted")
	return nil
}
