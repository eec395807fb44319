package models

import (
	"time"
)

// TripRecord is a billed trip. KmDriven and TotalCharges are derived when the
// record is written; TotalCharges counts as income in period summaries.
type TripRecord struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	UserID       string    `json:"userId" gorm:"not null;size:191;index:idx_trip_user_time,priority:1"`
	VehicleNo    string    `json:"vehicleNo" gorm:"not null;size:32"`
	InitialKm    float64   `json:"initialKm" gorm:"not null"`
	FinalKm      float64   `json:"finalKm" gorm:"not null"`
	PricePerKm   float64   `json:"pricePerKm" gorm:"not null"`
	KmDriven     float64   `json:"kmDriven" gorm:"not null"`
	TotalCharges float64   `json:"totalCharges" gorm:"not null"`
	Time         time.Time `json:"time" gorm:"column:trip_time;not null;index:idx_trip_user_time,priority:2"`
	CreatedAt    time.Time `json:"createdAt"`
}
