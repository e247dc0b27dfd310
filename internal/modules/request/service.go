// README: Pickup request service: validation, state transitions and waiting-pool indexing.
package request

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"campusride/internal/modules/matching"
	"campusride/internal/types"
)

var (
	ErrNotFound     = errors.New("request not found")
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidState = errors.New("invalid state transition")
	ErrConflict     = errors.New("request state conflict")
)

// Repository is the persistence the service needs; *Store implements it.
type Repository interface {
	Create(ctx context.Context, r *Request) error
	Get(ctx context.Context, id types.ID) (*Request, error)
	ListByStatus(ctx context.Context, status Status) ([]*Request, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error)
}

// Pool is the waiting pool pending requests are indexed into.
type Pool interface {
	AddCandidate(ctx context.Context, c matching.Candidate) error
	RemoveCandidate(ctx context.Context, id types.ID) error
}

type Service struct {
	repo Repository
	pool Pool
	log  logrus.FieldLogger
}

func NewService(repo Repository, pool Pool, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, pool: pool, log: log}
}

type CreateCommand struct {
	Name        string
	Contact     string
	Pickup      types.Point
	Destination types.Point
}

// Create persists a pending request and adds it to the waiting pool. A pool
// failure is logged only: the request is stored and Resync re-indexes it.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" || !matching.Indexable(cmd.Pickup) || !cmd.Destination.Valid() {
		return "", ErrBadRequest
	}
	if !CanTransition(StatusNone, StatusPending) {
		return "", ErrInvalidState
	}

	r := &Request{
		ID:          types.NewID(),
		Name:        name,
		Contact:     strings.TrimSpace(cmd.Contact),
		Pickup:      cmd.Pickup,
		Destination: cmd.Destination,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return "", err
	}
	if err := s.pool.AddCandidate(ctx, r.Candidate()); err != nil {
		s.log.WithError(err).WithField("request_id", r.ID).Warn("index pickup request in waiting pool")
	}
	return r.ID, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Request, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	return s.repo.Get(ctx, id)
}

// Cancel moves a pending request to cancelled and drops it from the waiting pool.
func (s *Service) Cancel(ctx context.Context, id types.ID) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(r.Status, StatusCancelled) {
		return ErrInvalidState
	}
	ok, err := s.repo.UpdateStatus(ctx, r.ID, r.Status, StatusCancelled, r.StatusVersion)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	if err := s.pool.RemoveCandidate(ctx, r.ID); err != nil {
		s.log.WithError(err).WithField("request_id", r.ID).Warn("remove pickup request from waiting pool")
	}
	return nil
}

func (s *Service) Pending(ctx context.Context) ([]*Request, error) {
	return s.repo.ListByStatus(ctx, StatusPending)
}

// Resync indexes every pending request into the waiting pool and returns how
// many were indexed. Rows the pool rejects are logged and skipped.
func (s *Service) Resync(ctx context.Context) (int, error) {
	pending, err := s.Pending(ctx)
	if err != nil {
		return 0, err
	}
	indexed := 0
	for _, r := range pending {
		if err := s.pool.AddCandidate(ctx, r.Candidate()); err != nil {
			s.log.WithError(err).WithField("request_id", r.ID).Warn("skip pending request during resync")
			continue
		}
		indexed++
	}
	s.log.WithFields(logrus.Fields{"pending": len(pending), "indexed": indexed}).Info("waiting pool resynced")
	return indexed, nil
}
