package models

import (
	"time"
)

// MileageRecord is a fuel-efficiency reading. Distance and Mileage are derived
// from the odometer readings and the fuel used when the record is written.
type MileageRecord struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"userId" gorm:"not null;size:191;index:idx_mileage_user_date,priority:1"`
	VehicleNo string    `json:"vehicleNo" gorm:"not null;size:32"`
	InitialKm float64   `json:"initialKm" gorm:"not null"`
	FinalKm   float64   `json:"finalKm" gorm:"not null"`
	Distance  float64   `json:"distance" gorm:"not null"`
	FuelUsed  float64   `json:"fuelUsed" gorm:"not null"`
	Mileage   float64   `json:"mileage" gorm:"not null"`
	Date      time.Time `json:"date" gorm:"not null;index:idx_mileage_user_date,priority:2"`
	CreatedAt time.Time `json:"createdAt"`
}
