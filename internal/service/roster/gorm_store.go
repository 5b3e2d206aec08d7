package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// userRow is the GORM model for the users table.
type userRow struct {
	GokID int64  `gorm:"column:gokid;type:integer"`
	Name  string `gorm:"column:name;type:text"`
}

func (userRow) TableName() string {
	return "users"
}

func (r userRow) toEntry() domain.RosterEntry {
	return domain.RosterEntry{GokID: r.GokID, Name: r.Name}
}

// GormStore keeps the roster in an embedded SQLite file.
type GormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormStore migrates the users table and returns the store.
func NewGormStore(db *gorm.DB, logger *zap.Logger) (*GormStore, error) {
	if err := db.AutoMigrate(&userRow{}); err != nil {
		return nil, storageError("migrate users table", err)
	}
	return &GormStore{db: db, logger: logger}, nil
}

func (s *GormStore) Insert(ctx context.Context, entry domain.RosterEntry) error {
	row := userRow{GokID: entry.GokID, Name: entry.Name}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return storageError("insert roster entry", err)
	}
	return nil
}

func (s *GormStore) All(ctx context.Context) ([]domain.RosterEntry, error) {
	var rows []userRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, storageError("list roster", err)
	}
	return toEntries(rows), nil
}

func (s *GormStore) FindByID(ctx context.Context, gokID int64) (*domain.RosterEntry, error) {
	return s.take(ctx, "gokid = ?", gokID)
}

func (s *GormStore) FindByName(ctx context.Context, name string) (*domain.RosterEntry, error) {
	return s.take(ctx, "name = ?", name)
}

func (s *GormStore) Search(ctx context.Context, field Field, pattern string) ([]domain.RosterEntry, error) {
	column, err := searchColumn(field)
	if err != nil {
		return nil, err
	}

	var rows []userRow
	err = s.db.WithContext(ctx).
		Where(column+" LIKE ?", "%"+pattern+"%").
		Find(&rows).Error
	if err != nil {
		return nil, storageError("search roster", err)
	}
	return toEntries(rows), nil
}

func (s *GormStore) UpdateName(ctx context.Context, gokID int64, name string) error {
	err := s.db.WithContext(ctx).
		Model(&userRow{}).
		Where("gokid = ?", gokID).
		Update("name", name).Error
	if err != nil {
		return storageError("update roster entry", err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, gokID int64) error {
	if err := s.db.WithContext(ctx).Where("gokid = ?", gokID).Delete(&userRow{}).Error; err != nil {
		return storageError("delete roster entry", err)
	}
	return nil
}

func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&userRow{}).Count(&n).Error; err != nil {
		return 0, storageError("count roster", err)
	}
	return n, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) take(ctx context.Context, query string, arg any) (*domain.RosterEntry, error) {
	var row userRow
	err := s.db.WithContext(ctx).Where(query, arg).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("query roster", err)
	}
	entry := row.toEntry()
	return &entry, nil
}

func toEntries(rows []userRow) []domain.RosterEntry {
	entries := make([]domain.RosterEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toEntry())
	}
	return entries
}

func searchColumn(field Field) (string, error) {
	switch field {
	case FieldID:
		return "gokid", nil
	case FieldName:
		return "name", nil
	default:
		return "", fmt.Errorf("unsupported search field %q", field)
	}
}
