package domain

import "time"

// ConversionEvent summarises one successful conversion.
type ConversionEvent struct {
	ID        string        `json:"id"`
	Points    int           `json:"points"`
	Length    float64       `json:"length_m"`
	ZMin      int           `json:"z_min"`
	ZMax      int           `json:"z_max"`
	Gridlines int           `json:"gridlines"`
	Bytes     int           `json:"bytes"`
	Duration  time.Duration `json:"duration_ns"`
	CreatedAt time.Time     `json:"created_at"`
}
