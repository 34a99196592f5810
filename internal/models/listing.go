package models

import "time"

type Listing struct {
	// 基本情報
	ID      string         `json:"id"`
	OwnerID string         `json:"owner_id"`
	Details ListingDetails `json:"details"`

	// ステータス管理
	Status ListingStatus `json:"status"`

	// タイムスタンプ
	CreatedAt time.Time `json:"created_at"`

	// Seq is a process-local monotonic sequence number assigned at creation.
	// Wall-clock timestamps can collide; Seq makes recency ordering total.
	Seq uint64 `json:"-"`
}

// ListingDetails holds the attributes supplied at creation. Location,
// Price and PropertyType are indexed; Description and Amenities are not.
type ListingDetails struct {
	Location     string   `json:"location"`
	Price        float64  `json:"price"`
	PropertyType string   `json:"property_type"`
	Description  string   `json:"description,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
}

// ListingStatus は物件のステータス
type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusSold      ListingStatus = "sold"
)

// Valid reports whether s is one of the defined statuses.
func (s ListingStatus) Valid() bool {
	return s == StatusAvailable || s == StatusSold
}

// IsAvailable は物件が販売中かどうか
func (l *Listing) IsAvailable() bool {
	return l.Status == StatusAvailable
}
