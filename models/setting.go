package models

import "time"

// Setting is one persisted key-value preference (theme mode, theme
// overrides). Values are opaque strings; callers own the encoding.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:64"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
