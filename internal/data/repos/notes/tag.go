package notes

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

type TagRepo interface {
	// UpsertByNames returns one tag per distinct non-blank name, creating the missing ones.
	UpsertByNames(ctx context.Context, tx *gorm.DB, names []string) ([]types.Tag, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) UpsertByNames(ctx context.Context, tx *gorm.DB, names []string) ([]types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	clean := NormalizeTagNames(names)
	if len(clean) == 0 {
		return []types.Tag{}, nil
	}

	rows := make([]types.Tag, 0, len(clean))
	for _, n := range clean {
		rows = append(rows, types.Tag{Name: n})
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error; err != nil {
		return nil, err
	}

	var out []types.Tag
	if err := transaction.WithContext(ctx).
		Where("name IN ?", clean).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeTagNames trims, drops blanks and de-duplicates while keeping first-seen order.
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
