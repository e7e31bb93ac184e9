package clinic

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// DirectoryService registers and lists physicians and patients. A duplicate
// contact email is a normal outcome, signalled by a nil record rather than an
// error.
type DirectoryService struct {
	store Store
	log   zerolog.Logger
}

func NewDirectoryService(store Store, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{store: store, log: log}
}

func (s *DirectoryService) RegisterPhysician(ctx context.Context, p *Physician) (*Physician, error) {
	existing, err := s.store.Physicians().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load physicians: %w", err)
	}
	for _, e := range existing {
		if e.Email == p.Email {
			s.log.Warn().Str("email", p.Email).Msg("physician registration with duplicate email")
			return nil, nil
		}
	}

	if err := s.store.Physicians().Add(ctx, p); err != nil {
		return nil, fmt.Errorf("insert physician: %w", err)
	}
	return p, nil
}

func (s *DirectoryService) RegisterPatient(ctx context.Context, p *Patient) (*Patient, error) {
	existing, err := s.store.Patients().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}
	for _, e := range existing {
		if e.Email == p.Email {
			s.log.Warn().Str("email", p.Email).Msg("patient registration with duplicate email")
			return nil, nil
		}
	}

	// Balance is always opened at zero, whatever the caller sent.
	p.Balance = 0

	if err := s.store.Patients().Add(ctx, p); err != nil {
		return nil, fmt.Errorf("insert patient: %w", err)
	}
	return p, nil
}

func (s *DirectoryService) ListPhysicians(ctx context.Context) ([]Physician, error) {
	return s.store.Physicians().GetAll(ctx)
}

func (s *DirectoryService) ListPatients(ctx context.Context) ([]Patient, error) {
	return s.store.Patients().GetAll(ctx)
}

// PhysicianFilter narrows SearchPhysicians; name and specialty match by
// case-insensitive substring, the rest exactly.
type PhysicianFilter struct {
	ID        *int64
	Name      string
	Specialty string
	Phone     string
	Page      int
	PageSize  int
}

func (s *DirectoryService) SearchPhysicians(ctx context.Context, f PhysicianFilter) ([]Physician, Page, error) {
	all, err := s.store.Physicians().GetAll(ctx)
	if err != nil {
		return nil, Page{}, fmt.Errorf("load physicians: %w", err)
	}

	var filtered []Physician
	for _, p := range all {
		if f.ID != nil && p.ID != *f.ID {
			continue
		}
		if f.Name != "" && !containsFold(p.Name, f.Name) {
			continue
		}
		if f.Specialty != "" && !containsFold(p.Specialty, f.Specialty) {
			continue
		}
		if f.Phone != "" && p.Phone != f.Phone {
			continue
		}
		filtered = append(filtered, p)
	}

	paged, meta := Paginate(filtered, f.Page, f.PageSize)
	return paged, meta, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
