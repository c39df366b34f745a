package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/youthadmin/internal/db"
	"github.com/youthadmin/internal/logger"
	"github.com/youthadmin/internal/store"
)

// ErrVisitationNotFound is returned when no visitation has the requested id.
var ErrVisitationNotFound = errors.New("visitation not found")

// VisitationService handles visitation CRUD. The id and authored timestamp
// are always assigned by the store.
type VisitationService struct {
	store     store.VisitationStore
	sanitizer *bluemonday.Policy
}

// VisitationInput represents fields accepted when creating or updating a visitation.
type VisitationInput struct {
	SubjectName       string
	SubjectDepartment string
	SubjectGroup      string
	SubjectPosition   int
	SubjectBirthYear  int

	VisitDate string
	Method    db.VisitMethod

	VisitorName       string
	VisitorRole       string
	VisitorDepartment string
	VisitorGroup      string
	VisitorPosition   int
	VisitorBirthYear  int

	Content string
	Photo   *string
}

// NewVisitationService creates a VisitationService instance.
func NewVisitationService(s store.VisitationStore) *VisitationService {
	return &VisitationService{store: s, sanitizer: bluemonday.StrictPolicy()}
}

// List returns every visitation in id order.
func (s *VisitationService) List() ([]db.Visitation, error) {
	visitations, err := s.store.ListVisitations()
	if err != nil {
		return nil, fmt.Errorf("list visitations: %w", err)
	}
	return visitations, nil
}

// Get fetches a visitation by id.
func (s *VisitationService) Get(id int) (*db.Visitation, error) {
	visitation, err := s.store.GetVisitation(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrVisitationNotFound
		}
		return nil, fmt.Errorf("get visitation: %w", err)
	}
	return &visitation, nil
}

// Create inserts a new visitation.
func (s *VisitationService) Create(input VisitationInput) (*db.Visitation, error) {
	input = s.cleanInput(input)
	if err := validateVisitationInput(input); err != nil {
		return nil, err
	}

	visitation, err := s.store.CreateVisitation(toVisitationRecord(input))
	if err != nil {
		return nil, fmt.Errorf("create visitation: %w", err)
	}
	logger.Info("visitation created", "id", visitation.ID, "method", string(visitation.Method))
	return &visitation, nil
}

// Update replaces an existing visitation.
func (s *VisitationService) Update(id int, input VisitationInput) (*db.Visitation, error) {
	input = s.cleanInput(input)
	if err := validateVisitationInput(input); err != nil {
		return nil, err
	}

	visitation, err := s.store.UpdateVisitation(id, toVisitationRecord(input))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrVisitationNotFound
		}
		return nil, fmt.Errorf("update visitation: %w", err)
	}
	logger.Info("visitation updated", "id", visitation.ID)
	return &visitation, nil
}

// Delete removes a visitation and returns the removed record.
func (s *VisitationService) Delete(id int) (*db.Visitation, error) {
	visitation, err := s.store.DeleteVisitation(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrVisitationNotFound
		}
		return nil, fmt.Errorf("delete visitation: %w", err)
	}
	logger.Info("visitation deleted", "id", visitation.ID)
	return &visitation, nil
}

func (s *VisitationService) cleanInput(input VisitationInput) VisitationInput {
	input.SubjectName = stripTags(s.sanitizer, input.SubjectName)
	input.SubjectDepartment = stripTags(s.sanitizer, input.SubjectDepartment)
	input.SubjectGroup = stripTags(s.sanitizer, input.SubjectGroup)
	input.VisitDate = strings.TrimSpace(input.VisitDate)
	input.VisitorName = stripTags(s.sanitizer, input.VisitorName)
	input.VisitorRole = stripTags(s.sanitizer, input.VisitorRole)
	input.VisitorDepartment = stripTags(s.sanitizer, input.VisitorDepartment)
	input.VisitorGroup = stripTags(s.sanitizer, input.VisitorGroup)
	input.Content = stripTags(s.sanitizer, input.Content)

	if input.Photo != nil {
		trimmed := strings.TrimSpace(*input.Photo)
		input.Photo = nil
		if trimmed != "" {
			input.Photo = &trimmed
		}
	}
	return input
}

func toVisitationRecord(input VisitationInput) db.Visitation {
	return db.Visitation{
		SubjectName:       input.SubjectName,
		SubjectDepartment: input.SubjectDepartment,
		SubjectGroup:      input.SubjectGroup,
		SubjectPosition:   db.Position(input.SubjectPosition),
		SubjectBirthYear:  input.SubjectBirthYear,
		VisitDate:         input.VisitDate,
		Method:            input.Method,
		VisitorName:       input.VisitorName,
		VisitorRole:       input.VisitorRole,
		VisitorDepartment: input.VisitorDepartment,
		VisitorGroup:      input.VisitorGroup,
		VisitorPosition:   db.Position(input.VisitorPosition),
		VisitorBirthYear:  input.VisitorBirthYear,
		Content:           input.Content,
		Photo:             input.Photo,
	}
}

func validateVisitationInput(input VisitationInput) error {
	if strings.TrimSpace(input.SubjectName) == "" {
		return fmt.Errorf("%w: subject name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.VisitorName) == "" {
		return fmt.Errorf("%w: visitor name is required", ErrInvalidInput)
	}
	if !input.Method.Valid() {
		return fmt.Errorf("%w: unknown visit method %q", ErrInvalidInput, input.Method)
	}
	if _, err := time.Parse(db.DateLayout, strings.TrimSpace(input.VisitDate)); err != nil {
		return fmt.Errorf("%w: visit date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

func validateOptionalDate(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if _, err := time.Parse(db.DateLayout, value); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, value)
	}
	return nil
}
