package domain

import "time"

// TrackingEvent is the audit trail entry written after a tracking record is
// saved.
type TrackingEvent struct {
	IndicatorID int64
	Year        int
	Username    string
	Fields      []string // column keys touched by the save
	Timestamp   time.Time
}
