// Package store holds the authoritative member and visitation collections.
//
// Identifiers are always assigned as max(existing)+1, or 1 for an empty
// collection. Both implementations serialize writers behind a mutex so that
// two concurrent creates can never observe the same maximum.
package store

import (
	"errors"

	"github.com/youthadmin/internal/db"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// MemberStore is the CRUD surface over members.
type MemberStore interface {
	ListMembers() ([]db.Member, error)
	GetMember(id int) (db.Member, error)
	CreateMember(m db.Member) (db.Member, error)
	UpdateMember(id int, m db.Member) (db.Member, error)
	DeleteMember(id int) (db.Member, error)
}

// VisitationStore is the CRUD surface over visitations. Implementations
// stamp AuthoredAt on every create and update.
type VisitationStore interface {
	ListVisitations() ([]db.Visitation, error)
	GetVisitation(id int) (db.Visitation, error)
	CreateVisitation(v db.Visitation) (db.Visitation, error)
	UpdateVisitation(id int, v db.Visitation) (db.Visitation, error)
	DeleteVisitation(id int) (db.Visitation, error)
}

// Store combines both collections.
type Store interface {
	MemberStore
	VisitationStore
}

// Seeder loads records verbatim, keeping their ids and timestamps.
type Seeder interface {
	SeedMembers(members []db.Member) error
	SeedVisitations(visitations []db.Visitation) error
}

func nextID(ids []int) int {
	highest := 0
	for _, id := range ids {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}
