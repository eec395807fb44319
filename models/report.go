package models

import (
	"time"
)

// Entry kinds used in history and summary views.
const (
	EntryTypeMileage = "Mileage"
	EntryTypeTrip    = "Trip"
	EntryTypeExpense = "Expense"
	EntryTypeIncome  = "Income"
)

type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// HistoryEntry is one row of a merged, newest-first view over several record
// kinds.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	VehicleNo string    `json:"vehicleNo"`
	Details   string    `json:"details"`
}

type SummaryTotals struct {
	TotalExpense Money `json:"totalExpense"`
	TotalIncome  Money `json:"totalIncome"`
	ProfitLoss   Money `json:"profitLoss"`
}

// PeriodSummary is the profit/loss view over the current month or year.
type PeriodSummary struct {
	Period    Period         `json:"period"`
	StartDate time.Time      `json:"startDate"`
	Summary   SummaryTotals  `json:"summary"`
	Logs      []HistoryEntry `json:"logs"`
}
