package models

import "time"

// KVRecord is a row of the kv_store table used by the postgres-backed record store
type KVRecord struct {
	Key       string     `gorm:"primaryKey;size:512" json:"key"`
	Value     string     `gorm:"type:jsonb;not null" json:"value"`
	ExpiresAt *time.Time `gorm:"index:idx_kv_store_expires_at" json:"expires_at,omitempty"`
	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (KVRecord) TableName() string { return "kv_store" }

// Expired reports whether the record is past its expiry at now
func (r *KVRecord) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && !now.Before(*r.ExpiresAt)
}
