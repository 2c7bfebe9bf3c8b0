package models

import (
	"time"

	"gorm.io/datatypes"
)

// ShareLink records a minted public invoice link: the static payload
// variant embeds the raw bundle, the token variant carries a signed
// access token for the same transaction.
type ShareLink struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	LinkID            string         `json:"link_id" gorm:"size:36;uniqueIndex"`
	TransactionNumber string         `json:"no_transaksi" gorm:"size:64;index"`
	StaticPayload     string         `json:"static_payload" gorm:"type:text"`
	Token             string         `json:"token" gorm:"type:text"`
	Bundle            datatypes.JSON `json:"bundle" gorm:"type:jsonb"`
	ExpiresAt         time.Time      `json:"expires_at"`
	CreatedAt         time.Time      `json:"created_at"`
}
