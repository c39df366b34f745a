package service

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/youthadmin/internal/db"
	"github.com/youthadmin/internal/logger"
	"github.com/youthadmin/internal/store"
)

var (
	// ErrMemberNotFound 구성원이 존재하지 않을 때 반환
	ErrMemberNotFound = errors.New("member not found")
	// ErrInvalidInput 입력값이 허용 범위를 벗어났을 때 반환
	ErrInvalidInput = errors.New("invalid input")
)

// MemberService 는 구성원 CRUD 와 상태별 조회를 담당합니다.
type MemberService struct {
	store     store.MemberStore
	sanitizer *bluemonday.Policy
}

// MemberInput 은 생성/수정 시 호출자가 설정할 수 있는 필드입니다. ID 는 포함하지 않습니다.
type MemberInput struct {
	Department string
	Group      string
	Position   int
	Name       string
	Role       string
	Status     db.AttendanceStatus

	SundayYouthAttended db.AttendanceFlag
	SundayYouthDate     string
	WednesdayAttended   db.AttendanceFlag
	WednesdayDate       string
	FridayAttended      db.AttendanceFlag
	FridayDate          string
	MainAttended        db.AttendanceFlag
	MainDate            string
}

// NewMemberService 는 저장소를 감싼 MemberService 를 만듭니다.
func NewMemberService(s store.MemberStore) *MemberService {
	return &MemberService{store: s, sanitizer: bluemonday.StrictPolicy()}
}

// List returns every member in id order.
func (s *MemberService) List() ([]db.Member, error) {
	members, err := s.store.ListMembers()
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// Get fetches a member by id.
func (s *MemberService) Get(id int) (*db.Member, error) {
	member, err := s.store.GetMember(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &member, nil
}

// ListByStatus returns members whose status equals status exactly.
func (s *MemberService) ListByStatus(status db.AttendanceStatus) ([]db.Member, error) {
	members, err := s.List()
	if err != nil {
		return nil, err
	}

	filtered := make([]db.Member, 0, len(members))
	for _, m := range members {
		if m.Status == status {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// Create validates input and stores a new member with a fresh id.
func (s *MemberService) Create(input MemberInput) (*db.Member, error) {
	input = s.cleanInput(input)
	if err := validateMemberInput(input); err != nil {
		return nil, err
	}

	member, err := s.store.CreateMember(toMemberRecord(input))
	if err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	logger.Info("member created", "id", member.ID, "department", member.Department, "group", member.Group)
	return &member, nil
}

// Update replaces every field of the member except its id.
func (s *MemberService) Update(id int, input MemberInput) (*db.Member, error) {
	input = s.cleanInput(input)
	if err := validateMemberInput(input); err != nil {
		return nil, err
	}

	member, err := s.store.UpdateMember(id, toMemberRecord(input))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("update member: %w", err)
	}
	logger.Info("member updated", "id", member.ID)
	return &member, nil
}

// Delete removes a member and returns the removed record.
func (s *MemberService) Delete(id int) (*db.Member, error) {
	member, err := s.store.DeleteMember(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("delete member: %w", err)
	}
	logger.Info("member deleted", "id", member.ID)
	return &member, nil
}

// cleanInput strips markup from the free-text fields. Entities produced by
// the policy are decoded again so "&" and "<" survive a round trip.
func (s *MemberService) cleanInput(input MemberInput) MemberInput {
	input.Department = stripTags(s.sanitizer, input.Department)
	input.Group = stripTags(s.sanitizer, input.Group)
	input.Name = stripTags(s.sanitizer, input.Name)
	input.Role = stripTags(s.sanitizer, input.Role)
	input.SundayYouthDate = strings.TrimSpace(input.SundayYouthDate)
	input.WednesdayDate = strings.TrimSpace(input.WednesdayDate)
	input.FridayDate = strings.TrimSpace(input.FridayDate)
	input.MainDate = strings.TrimSpace(input.MainDate)
	return input
}

func toMemberRecord(input MemberInput) db.Member {
	return db.Member{
		Department:          input.Department,
		Group:               input.Group,
		Position:            db.Position(input.Position),
		Name:                input.Name,
		Role:                input.Role,
		Status:              input.Status,
		SundayYouthAttended: input.SundayYouthAttended,
		SundayYouthDate:     input.SundayYouthDate,
		WednesdayAttended:   input.WednesdayAttended,
		WednesdayDate:       input.WednesdayDate,
		FridayAttended:      input.FridayAttended,
		FridayDate:          input.FridayDate,
		MainAttended:        input.MainAttended,
		MainDate:            input.MainDate,
	}
}

func stripTags(policy *bluemonday.Policy, value string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(value)))
}

func validateMemberInput(input MemberInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Department) == "" || strings.TrimSpace(input.Group) == "" {
		return fmt.Errorf("%w: department and group are required", ErrInvalidInput)
	}
	if !input.Status.Valid() {
		return fmt.Errorf("%w: unknown attendance status %q", ErrInvalidInput, input.Status)
	}

	flags := []db.AttendanceFlag{input.SundayYouthAttended, input.WednesdayAttended, input.FridayAttended, input.MainAttended}
	for _, flag := range flags {
		if !flag.Valid() {
			return fmt.Errorf("%w: attendance flag must be %q or %q, got %q", ErrInvalidInput, db.Present, db.Absent, flag)
		}
	}

	dates := []string{input.SundayYouthDate, input.WednesdayDate, input.FridayDate, input.MainDate}
	for _, date := range dates {
		if err := validateOptionalDate(date); err != nil {
			return err
		}
	}
	return nil
}
