package service

import (
	"errors"

	"github.com/scholarassist/scholarassist/backend/go-services/internal/paper"
	"github.com/scholarassist/scholarassist/backend/go-services/internal/paper/repository"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/metrics"
)

var (
	ErrNotFound = errors.New("not found")
)

// Service defines the paper operations used by the handler layer.
type Service interface {
	Create(f paper.Fields) (*paper.Paper, error)
	Get(id string) (*paper.Paper, error)
	List() ([]*paper.Paper, error)
	Update(id string, f paper.Fields) (*paper.Paper, error)
	Delete(id string) error
}

// Repository is the storage contract the service runs on.
type Repository interface {
	Create(f paper.Fields) (*paper.Paper, error)
	Get(id string) (*paper.Paper, error)
	List() ([]*paper.Paper, error)
	Update(id string, f paper.Fields) (*paper.Paper, error)
	Delete(id string) error
	Len() int
}

// NewMemoryService returns a Service backed by a fresh in-memory store.
func NewMemoryService() Service {
	return NewService(repository.NewMemoryRepo())
}

func NewService(repo Repository) Service {
	return &paperService{repo: repo}
}

type paperService struct {
	repo Repository
}

func (s *paperService) Create(f paper.Fields) (*paper.Paper, error) {
	p, err := s.repo.Create(f)
	s.observe("create", err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *paperService) Get(id string) (*paper.Paper, error) {
	p, err := s.repo.Get(id)
	s.observe("get", err)
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (s *paperService) List() ([]*paper.Paper, error) {
	list, err := s.repo.List()
	s.observe("list", err)
	return list, err
}

func (s *paperService) Update(id string, f paper.Fields) (*paper.Paper, error) {
	p, err := s.repo.Update(id, f)
	s.observe("update", err)
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (s *paperService) Delete(id string) error {
	err := s.repo.Delete(id)
	s.observe("delete", err)
	return mapErr(err)
}

func (s *paperService) observe(op string, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, repository.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	case err != nil:
		outcome = metrics.OutcomeError
	}
	metrics.PaperOperations.WithLabelValues(op, outcome).Inc()
	metrics.PapersStored.Set(float64(s.repo.Len()))
}

func mapErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
