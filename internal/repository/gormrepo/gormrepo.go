package gormrepo

import (
	"context"
	"log/slog"
	"time"

	"github.com/siahsang/blog-orms/internal/core"
	"gorm.io/gorm"
)

// New builds the repositories backed by gorm models and associations.
func New(db *gorm.DB, timeout time.Duration, log *slog.Logger) core.Repositories {
	s := session{db: db, timeout: timeout}
	return core.Repositories{
		Articles: &ArticleRepository{session: s, log: log},
		Comments: &CommentRepository{session: s},
		Tags:     &TagRepository{session: s},
		Users:    &UserRepository{session: s},
	}
}

type session struct {
	db      *gorm.DB
	timeout time.Duration
}

// with returns a handle bound to ctx and bounded by the query timeout.
func (s session) with(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if s.timeout <= 0 {
		ctx, cancel := context.WithCancel(ctx)
		return s.db.WithContext(ctx), cancel
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
