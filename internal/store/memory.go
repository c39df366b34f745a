package store

import (
	"sync"
	"time"

	"github.com/youthadmin/internal/db"
)

// MemoryStore keeps both collections in plain slices.
type MemoryStore struct {
	mu          sync.RWMutex
	now         func() time.Time
	members     []db.Member
	visitations []db.Visitation
}

// NewMemoryStore creates an empty store. now defaults to time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now}
}

func (s *MemoryStore) SeedMembers(members []db.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append(s.members, members...)
	return nil
}

func (s *MemoryStore) SeedVisitations(visitations []db.Visitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visitations = append(s.visitations, visitations...)
	return nil
}

func (s *MemoryStore) ListMembers() ([]db.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]db.Member, len(s.members))
	copy(out, s.members)
	return out, nil
}

func (s *MemoryStore) GetMember(id int) (db.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.ID == id {
			return m, nil
		}
	}
	return db.Member{}, ErrNotFound
}

func (s *MemoryStore) CreateMember(m db.Member) (db.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.members))
	for _, existing := range s.members {
		ids = append(ids, existing.ID)
	}
	m.Restamp(nextID(ids))
	s.members = append(s.members, m)
	return m, nil
}

func (s *MemoryStore) UpdateMember(id int, m db.Member) (db.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.members {
		if s.members[i].ID == id {
			m.Restamp(id)
			s.members[i] = m
			return m, nil
		}
	}
	return db.Member{}, ErrNotFound
}

func (s *MemoryStore) DeleteMember(id int) (db.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.members {
		if m.ID == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return m, nil
		}
	}
	return db.Member{}, ErrNotFound
}

func (s *MemoryStore) ListVisitations() ([]db.Visitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]db.Visitation, len(s.visitations))
	copy(out, s.visitations)
	return out, nil
}

func (s *MemoryStore) GetVisitation(id int) (db.Visitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.visitations {
		if v.ID == id {
			return v, nil
		}
	}
	return db.Visitation{}, ErrNotFound
}

func (s *MemoryStore) CreateVisitation(v db.Visitation) (db.Visitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.visitations))
	for _, existing := range s.visitations {
		ids = append(ids, existing.ID)
	}
	v.Restamp(nextID(ids), s.now())
	s.visitations = append(s.visitations, v)
	return v, nil
}

func (s *MemoryStore) UpdateVisitation(id int, v db.Visitation) (db.Visitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.visitations {
		if s.visitations[i].ID == id {
			v.Restamp(id, s.now())
			s.visitations[i] = v
			return v, nil
		}
	}
	return db.Visitation{}, ErrNotFound
}

func (s *MemoryStore) DeleteVisitation(id int) (db.Visitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.visitations {
		if v.ID == id {
			s.visitations = append(s.visitations[:i], s.visitations[i+1:]...)
			return v, nil
		}
	}
	return db.Visitation{}, ErrNotFound
}
