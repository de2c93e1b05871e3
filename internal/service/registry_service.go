package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"alpr-service/internal/plate"
	"alpr-service/internal/registry"
	"alpr-service/internal/repository"
)

// RegistryService owns the in-memory registry snapshot. Lookups read
// whatever snapshot is current; administrative writes go to the
// database and then swap in a freshly built snapshot, so readers
// never see a half-updated index.
type RegistryService struct {
	repo    *repository.RegistryRepository
	current atomic.Pointer[registry.Registry]
	log     zerolog.Logger
}

func NewRegistryService(repo *repository.RegistryRepository, log zerolog.Logger) *RegistryService {
	s := &RegistryService{
		repo: repo,
		log:  log,
	}
	s.current.Store(registry.New(nil))
	return s
}

// Load builds the registry index from the database. Called once at
// startup before the service starts answering lookups.
func (s *RegistryService) Load(ctx context.Context) error {
	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	s.current.Store(registry.New(records))
	s.log.Info().Int("records", len(records)).Msg("registry index loaded")
	return nil
}

// Lookup resolves a plate identifier against the current snapshot.
// Any formatting variant of the same plate finds the same record; a
// miss is a normal outcome.
func (s *RegistryService) Lookup(identifier string) registry.LookupResult {
	return s.current.Load().Lookup(identifier)
}

// FindByOwner searches the current snapshot by owner name substring.
func (s *RegistryService) FindByOwner(owner string) []registry.Record {
	return s.current.Load().FindByOwner(owner)
}

// FindByStateCode lists records registered under a jurisdiction code.
func (s *RegistryService) FindByStateCode(code string) []registry.Record {
	return s.current.Load().FindByStateCode(code)
}

// Register validates and stores a new registration, then rebuilds the
// snapshot. The plate must be a valid recognized format.
func (s *RegistryService) Register(ctx context.Context, rec registry.Record) (registry.Record, error) {
	validated := plate.Validate(rec.PlateNumber)
	if !validated.IsValid {
		return registry.Record{}, fmt.Errorf("%w: %s", ErrInvalidInput, validated.Message)
	}
	if rec.OwnerName == "" {
		return registry.Record{}, fmt.Errorf("%w: owner_name is required", ErrInvalidInput)
	}

	rec.PlateNumber = registry.CanonicalKey(validated.FormattedPlate)
	if rec.State == "" {
		rec.State = validated.StateName
	}
	if rec.PlateType == "" {
		rec.PlateType = string(validated.Category)
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		s.log.Error().Err(err).Str("plate", rec.PlateNumber).Msg("failed to register vehicle")
		return registry.Record{}, err
	}

	if err := s.Load(ctx); err != nil {
		return registry.Record{}, err
	}

	s.log.Info().
		Str("plate", rec.PlateNumber).
		Str("owner", rec.OwnerName).
		Msg("vehicle registered")

	return rec, nil
}

// Deregister removes a registration by plate identifier and rebuilds
// the snapshot.
func (s *RegistryService) Deregister(ctx context.Context, identifier string) error {
	key := registry.CanonicalKey(identifier)
	if key == "" {
		return fmt.Errorf("%w: plate identifier is required", ErrInvalidInput)
	}

	deleted, err := s.repo.Delete(ctx, key)
	if err != nil {
		s.log.Error().Err(err).Str("plate", key).Msg("failed to deregister vehicle")
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: plate %s", ErrNotFound, key)
	}

	if err := s.Load(ctx); err != nil {
		return err
	}

	s.log.Info().Str("plate", key).Msg("vehicle deregistered")
	return nil
}
