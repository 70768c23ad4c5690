package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresKVStore keeps records in the kv_store table
type PostgresKVStore struct {
	DB *gorm.DB
}

// NewPostgresKVStore creates a new Postgres-backed record store
func NewPostgresKVStore(db *gorm.DB) *PostgresKVStore {
	return &PostgresKVStore{DB: db}
}

// Migrate creates the kv_store table if needed
func (s *PostgresKVStore) Migrate(ctx context.Context) error {
	return s.DB.WithContext(ctx).AutoMigrate(&models.KVRecord{})
}

func (s *PostgresKVStore) live(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Where("expires_at IS NULL OR expires_at > ?", utils.UTCNow())
}

func (s *PostgresKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record models.KVRecord
	err := s.live(ctx).Where("key = ?", key).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get record %q: %w", key, err)
	}
	return []byte(record.Value), nil
}

func (s *PostgresKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := utils.UTCNow()
	record := models.KVRecord{
		Key:       key,
		Value:     string(value),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ttl > 0 {
		expiresAt := now.Add(ttl)
		record.ExpiresAt = &expiresAt
	}

	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save record %q: %w", key, err)
	}
	return nil
}

func (s *PostgresKVStore) ScanPrefix(ctx context.Context, prefix string) ([]KVPair, error) {
	var records []models.KVRecord
	err := s.live(ctx).
		Where("key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("key").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan records %q: %w", prefix, err)
	}

	pairs := make([]KVPair, 0, len(records))
	for _, r := range records {
		pairs = append(pairs, KVPair{Key: r.Key, Value: []byte(r.Value)})
	}
	return pairs, nil
}

func (s *PostgresKVStore) Delete(ctx context.Context, key string) error {
	if err := s.DB.WithContext(ctx).Where("key = ?", key).Delete(&models.KVRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete record %q: %w", key, err)
	}
	return nil
}

// DeleteExpired removes rows whose ttl has passed
func (s *PostgresKVStore) DeleteExpired(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", utils.UTCNow()).
		Delete(&models.KVRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete expired records: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *PostgresKVStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}
