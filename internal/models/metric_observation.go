package models

import "time"

// MetricObservation is one timestamped value of a metric for a product.
// Immutable time-series data, so there is no status column. Duplicate (product, metric,
// date) rows are a data-quality concern, not rejected here.
type MetricObservation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	MetricID   uint      `gorm:"not null;index" json:"metric_id"`
	RecordDate time.Time `gorm:"not null" json:"record_date"`
	Value      float64   `gorm:"not null" json:"value"`
	Source     string    `json:"source"`
	Remark     string    `json:"remark"`
	CreatedAt  time.Time `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Metric  Metric  `gorm:"foreignKey:MetricID" json:"metric,omitempty"`
}
