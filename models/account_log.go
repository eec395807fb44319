package models

import (
	"time"
)

// AccountLogRecord is a vehicle expense.
type AccountLogRecord struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"userId" gorm:"not null;size:191;index:idx_account_log_user_date,priority:1"`
	VehicleNo string    `json:"vehicleNo" gorm:"not null;size:32"`
	Reason    string    `json:"reason" gorm:"not null;size:255"`
	Cost      float64   `json:"cost" gorm:"not null"`
	Date      time.Time `json:"date" gorm:"not null;index:idx_account_log_user_date,priority:2"`
	CreatedAt time.Time `json:"createdAt"`
}
