package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/youthadmin/internal/db"
	"gorm.io/gorm"
)

// GormStore keeps both collections in a gorm database.
type GormStore struct {
	mu  sync.Mutex
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore wraps an already migrated connection. now defaults to time.Now.
func NewGormStore(gdb *gorm.DB, now func() time.Time) *GormStore {
	if now == nil {
		now = time.Now
	}
	return &GormStore{db: gdb, now: now}
}

func (s *GormStore) SeedMembers(members []db.Member) error {
	if len(members) == 0 {
		return nil
	}
	if err := s.db.Create(&members).Error; err != nil {
		return fmt.Errorf("seed members: %w", err)
	}
	return nil
}

func (s *GormStore) SeedVisitations(visitations []db.Visitation) error {
	if len(visitations) == 0 {
		return nil
	}
	if err := s.db.Create(&visitations).Error; err != nil {
		return fmt.Errorf("seed visitations: %w", err)
	}
	return nil
}

func (s *GormStore) ListMembers() ([]db.Member, error) {
	members := make([]db.Member, 0)
	if err := s.db.Order("id asc").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *GormStore) GetMember(id int) (db.Member, error) {
	var member db.Member
	if err := s.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Member{}, ErrNotFound
		}
		return db.Member{}, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

func (s *GormStore) CreateMember(m db.Member) (db.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		id, err := nextRowID(tx, &db.Member{})
		if err != nil {
			return err
		}
		m.Restamp(id)
		return tx.Create(&m).Error
	})
	if err != nil {
		return db.Member{}, fmt.Errorf("create member: %w", err)
	}
	return m, nil
}

func (s *GormStore) UpdateMember(id int, m db.Member) (db.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing db.Member
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}
		m.Restamp(id)
		return tx.Save(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Member{}, ErrNotFound
		}
		return db.Member{}, fmt.Errorf("update member: %w", err)
	}
	return m, nil
}

func (s *GormStore) DeleteMember(id int) (db.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing db.Member
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Member{}, ErrNotFound
		}
		return db.Member{}, fmt.Errorf("delete member: %w", err)
	}
	return existing, nil
}

func (s *GormStore) ListVisitations() ([]db.Visitation, error) {
	visitations := make([]db.Visitation, 0)
	if err := s.db.Order("id asc").Find(&visitations).Error; err != nil {
		return nil, fmt.Errorf("list visitations: %w", err)
	}
	return visitations, nil
}

func (s *GormStore) GetVisitation(id int) (db.Visitation, error) {
	var visitation db.Visitation
	if err := s.db.First(&visitation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Visitation{}, ErrNotFound
		}
		return db.Visitation{}, fmt.Errorf("get visitation: %w", err)
	}
	return visitation, nil
}

func (s *GormStore) CreateVisitation(v db.Visitation) (db.Visitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		id, err := nextRowID(tx, &db.Visitation{})
		if err != nil {
			return err
		}
		v.Restamp(id, s.now())
		return tx.Create(&v).Error
	})
	if err != nil {
		return db.Visitation{}, fmt.Errorf("create visitation: %w", err)
	}
	return v, nil
}

func (s *GormStore) UpdateVisitation(id int, v db.Visitation) (db.Visitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing db.Visitation
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}
		v.Restamp(id, s.now())
		return tx.Save(&v).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Visitation{}, ErrNotFound
		}
		return db.Visitation{}, fmt.Errorf("update visitation: %w", err)
	}
	return v, nil
}

func (s *GormStore) DeleteVisitation(id int) (db.Visitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing db.Visitation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Visitation{}, ErrNotFound
		}
		return db.Visitation{}, fmt.Errorf("delete visitation: %w", err)
	}
	return existing, nil
}

func nextRowID(tx *gorm.DB, model any) (int, error) {
	var maxID int
	if err := tx.Model(model).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error; err != nil {
		return 0, err
	}
	return maxID + 1, nil
}
