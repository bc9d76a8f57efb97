package content

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/promptdesk/pkg/logger"
	"github.com/dmitrymomot/promptdesk/pkg/sanitizer"
	"github.com/dmitrymomot/promptdesk/pkg/slug"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// createAttempts bounds how often Create re-resolves a derived identifier
// that lost a race against a concurrent insert.
const createAttempts = 3

// Invalidator drops cached lookup answers for a resource.
type Invalidator interface {
	Invalidate(ctx context.Context, resource string) error
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithInvalidator is called after every write.
func WithInvalidator(inv Invalidator) ServiceOption {
	return func(s *Service) {
		s.invalidator = inv
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// Service applies the content rules on top of a Store.
type Service struct {
	registry    *Registry
	store       Store
	backend     slugfield.Backend
	invalidator Invalidator
	logger      *slog.Logger
}

// NewService creates a service. backend answers identifier lookups and is
// normally the cached lookup chain over the same database as store.
// Reserved identifiers are reported as taken on top of it.
func NewService(reg *Registry, store Store, backend slugfield.Backend, opts ...ServiceOption) *Service {
	s := &Service{
		registry: reg,
		store:    store,
		backend:  reservedBackend{next: backend, registry: reg},
		logger:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the resource registry.
func (s *Service) Registry() *Registry { return s.registry }

// Backend returns the lookup backend, with reserved identifiers counted
// as taken.
func (s *Service) Backend() slugfield.Backend { return s.backend }

func (s *Service) List(ctx context.Context, resource string, opts ListOptions) ([]Record, error) {
	if _, err := s.registry.Lookup(resource); err != nil {
		return nil, err
	}
	return s.store.List(ctx, resource, opts)
}

func (s *Service) Get(ctx context.Context, resource, id string) (Record, error) {
	if _, err := s.registry.Lookup(resource); err != nil {
		return Record{}, err
	}
	return s.store.Get(ctx, resource, id)
}

// Create stores a new record. An empty in.ID is derived from the name and
// made unique with the slug resolver; a given one must be a valid,
// unreserved slug and is stored as is or rejected with ErrConflict.
func (s *Service) Create(ctx context.Context, resource string, in Input) (Record, error) {
	res, err := s.registry.Lookup(resource)
	if err != nil {
		return Record{}, err
	}
	if err := s.clean(&in); err != nil {
		return Record{}, err
	}

	explicit := in.ID != ""
	if explicit {
		if err := validateID(res, in.ID); err != nil {
			return Record{}, err
		}
	}

	for range createAttempts {
		id := in.ID
		if !explicit {
			if id, err = s.deriveID(ctx, res, in.Name); err != nil {
				return Record{}, err
			}
		}

		rec, err := s.store.Create(ctx, res.Name, Record{
			ID:          id,
			Name:        in.Name,
			Description: in.Description,
			Body:        in.Body,
		})
		if err == nil {
			s.invalidate(ctx, res.Name)
			return rec, nil
		}
		if explicit || !errors.Is(err, ErrConflict) {
			return Record{}, err
		}

		// The cached answer was stale or another writer won the race.
		s.logger.WarnContext(ctx, "derived identifier taken, retrying",
			slog.String("resource", res.Name),
			slog.String("id", id),
		)
		s.invalidate(ctx, res.Name)
	}

	return Record{}, ErrConflict
}

// Update rewrites name, description and body. The identifier never changes.
func (s *Service) Update(ctx context.Context, resource, id string, in Input) (Record, error) {
	res, err := s.registry.Lookup(resource)
	if err != nil {
		return Record{}, err
	}
	if err := s.clean(&in); err != nil {
		return Record{}, err
	}
	if in.ID != "" && in.ID != id {
		return Record{}, ErrImmutableID
	}

	rec, err := s.store.Update(ctx, res.Name, Record{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Body:        in.Body,
	})
	if err != nil {
		return Record{}, err
	}
	s.invalidate(ctx, res.Name)
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, resource, id string) error {
	res, err := s.registry.Lookup(resource)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, res.Name, id); err != nil {
		return err
	}
	s.invalidate(ctx, res.Name)
	return nil
}

// CheckResult is the answer to a one-shot slug check.
type CheckResult struct {
	Base      string           `json:"base"`
	Candidate string           `json:"candidate"`
	Status    slugfield.Status `json:"status"`
}

// Check resolves value against resource.field. The status is available
// when value itself is free and taken otherwise.
func (s *Service) Check(ctx context.Context, resource, field, value string) (CheckResult, error) {
	t, err := s.registry.Target(resource, field)
	if err != nil {
		return CheckResult{}, err
	}

	candidate, err := slugfield.Resolve(ctx, s.backend, t, value)
	if err != nil {
		return CheckResult{}, err
	}

	status := slugfield.StatusAvailable
	if candidate != value {
		status = slugfield.StatusTaken
	}
	return CheckResult{Base: value, Candidate: candidate, Status: status}, nil
}

func (s *Service) deriveID(ctx context.Context, res Resource, name string) (string, error) {
	base := res.Slug(name)
	if base == "" {
		return "", ErrEmptySlug
	}
	id, err := slugfield.Resolve(ctx, s.backend, res.IdentifierTarget(), base)
	if err != nil {
		return "", errors.Join(ErrLookup, err)
	}
	return id, nil
}

func (s *Service) clean(in *Input) error {
	if err := sanitizer.SanitizeStruct(in); err != nil {
		return err
	}
	if in.Name == "" {
		return ErrNameRequired
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, resource string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, resource); err != nil {
		s.logger.WarnContext(ctx, "lookup cache invalidation failed",
			slog.String("resource", resource),
			slog.String("error", err.Error()),
		)
	}
}

func validateID(res Resource, id string) error {
	if !slug.Valid(id) {
		return ErrInvalidSlug
	}
	if res.IsReserved(id) {
		return ErrReservedSlug
	}
	if res.MaxLength > 0 && len(id) > res.MaxLength {
		return ErrInvalidSlug
	}
	return nil
}
