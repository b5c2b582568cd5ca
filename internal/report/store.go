package report

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// RecentRow is the dashboard feed projection of a report: just enough for a
// map marker, nothing that identifies the submitter.
type RecentRow struct {
	Date         string
	Category     int
	CreationTime time.Time
	Latitude     string
	Longitude    string
}

// Store is the storage collaborator for persisted reports. Failures pass
// through to callers unmodified; nothing here retries or masks them.
type Store interface {
	Insert(ctx context.Context, r *Report) error
	FindByID(ctx context.Context, id string) (*Report, error)
	FindByEmail(ctx context.Context, email string) ([]Report, error)
	FindAll(ctx context.Context) ([]Report, error)
	FindRecentProjected(ctx context.Context, limit int, categories []int) ([]RecentRow, error)
	UpdateByID(ctx context.Context, id string, fields map[string]any) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// GormStore is the postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(ctx context.Context, r *Report) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *GormStore) FindByID(ctx context.Context, id string) (*Report, error) {
	var r Report
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) ([]Report, error) {
	var reports []Report
	err := s.db.WithContext(ctx).Where("user_email = ?", email).Find(&reports).Error
	return reports, err
}

func (s *GormStore) FindAll(ctx context.Context) ([]Report, error) {
	var reports []Report
	err := s.db.WithContext(ctx).Find(&reports).Error
	return reports, err
}

// FindRecentProjected returns the newest reports, projected down to the
// dashboard fields. An optional category-code filter narrows the feed.
func (s *GormStore) FindRecentProjected(ctx context.Context, limit int, categories []int) ([]RecentRow, error) {
	query := `
		SELECT date, category, creation_time, latitude, longitude
		FROM reports.reports
	`
	var args []interface{}
	argIdx := 1

	if len(categories) > 0 {
		query += fmt.Sprintf("WHERE category = ANY($%d)\n", argIdx)
		args = append(args, pq.Array(categories))
		argIdx++
	}
	query += fmt.Sprintf("ORDER BY creation_time DESC, id DESC LIMIT $%d", argIdx)
	args = append(args, limit)

	rows, err := s.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("recent reports query failed: %w", err)
	}
	defer rows.Close()

	var out []RecentRow
	for rows.Next() {
		var row RecentRow
		if err := rows.Scan(&row.Date, &row.Category, &row.CreationTime, &row.Latitude, &row.Longitude); err != nil {
			return nil, fmt.Errorf("scan recent report: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *GormStore) UpdateByID(ctx context.Context, id string, fields map[string]any) (int64, error) {
	res := s.db.WithContext(ctx).Model(&Report{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (s *GormStore) DeleteByID(ctx context.Context, id string) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&Report{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
