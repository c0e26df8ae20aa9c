package pagination

import "gorm.io/gorm"

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Pagination is the offset/limit window shared by collection endpoints.
type Pagination struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit,default=100"`
}

// Normalize clamps the window to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Apply adds the window to a gorm statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return stmt.Offset(p.Skip).Limit(p.Limit)
}
