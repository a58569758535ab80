package entity

import "time"

// KVEntry - строка таблицы ключ-значение для SQL-хранилищ
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (KVEntry) TableName() string {
	return "kv_entries"
}
