package domain

import "time"

type User struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Permission struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// UserGrants is everything the access checks need about one user: the union of
// permissions over held roles plus the explicit area/program scope grants.
type UserGrants struct {
	UserID      int64
	Permissions map[string]struct{}
	AreaIDs     map[int64]struct{}
	ProgramIDs  map[int64]struct{}
}

func (g *UserGrants) HasPermission(name string) bool {
	_, ok := g.Permissions[name]
	return ok
}
