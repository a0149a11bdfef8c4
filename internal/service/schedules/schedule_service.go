package schedules

import (
	"context"

	"github.com/wittybrains/busbooking/internal/domain"
	"github.com/wittybrains/busbooking/internal/repository"
)

// Paging defaults used when the caller supplies none.
const (
	DefaultPage     = 0
	DefaultPageSize = 3
)

type ScheduleUseCase interface {
	List(ctx context.Context) ([]domain.TravelSchedule, error)
	Get(ctx context.Context, id int64) (*domain.TravelSchedule, error)
	Search(ctx context.Context, criteria domain.ScheduleCriteria, page, size int) (*SearchResult, error)
}

type Cache interface {
	GetSchedules(ctx context.Context) ([]domain.TravelSchedule, error)
	SetSchedules(ctx context.Context, schedules []domain.TravelSchedule) error
}

// SearchResult is one page of matching schedules plus total-count metadata.
// Page indices are 0-based.
type SearchResult struct {
	Schedules []domain.TravelSchedule
	Page      int
	Size      int
	Total     int
}

type ScheduleService struct {
	repo  repository.ScheduleRepository
	cache Cache
}

func NewScheduleService(repo repository.ScheduleRepository, cache Cache) *ScheduleService {
	return &ScheduleService{repo: repo, cache: cache}
}

func (s *ScheduleService) List(ctx context.Context) ([]domain.TravelSchedule, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSchedules(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	schedules, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetSchedules(ctx, schedules)
	}
	return schedules, nil
}

func (s *ScheduleService) Get(ctx context.Context, id int64) (*domain.TravelSchedule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ScheduleService) Search(ctx context.Context, criteria domain.ScheduleCriteria, page, size int) (*SearchResult, error) {
	if page < 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	schedules, total, err := s.repo.Search(ctx, criteria, size, page*size)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Schedules: schedules,
		Page:      page,
		Size:      size,
		Total:     total,
	}, nil
}

var _ ScheduleUseCase = (*ScheduleService)(nil)
