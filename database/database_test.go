package database

import (
	"testing"
	"time"

	gormlogger "gorm.io/gorm/logger"
	"milestone-api/services"
)

func TestGormLogLevel(t *testing.T) {
	cases := map[string]gormlogger.LogLevel{
		"silent":  gormlogger.Silent,
		"ERROR":   gormlogger.Error,
		"info":    gormlogger.Info,
		"debug":   gormlogger.Info,
		"":        gormlogger.Warn,
		"verbose": gormlogger.Warn,
	}
	for in, want := range cases {
		if got := gormLogLevel(in); got != want {
			t.Errorf("gormLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSeedRecordsAreConsistent(t *testing.T) {
	now := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
	user, mileage, trip, expense := seedRecords("hash", now)

	if mileage.UserID != user.ID || trip.UserID != user.ID || expense.UserID != user.ID {
		t.Fatal("seed records must belong to the demo user")
	}

	calc, err := services.CalculateMileage(mileage.InitialKm, mileage.FinalKm, mileage.FuelUsed)
	if err != nil || calc.Distance != mileage.Distance || calc.Mileage != mileage.Mileage {
		t.Fatalf("mileage seed does not match calculator: %+v, %v", calc, err)
	}

	charge, err := services.CalculateTripCharge(trip.InitialKm, trip.FinalKm, trip.PricePerKm)
	if err != nil || charge.KmDriven != trip.KmDriven || charge.TotalCharges != trip.TotalCharges {
		t.Fatalf("trip seed does not match calculator: %+v, %v", charge, err)
	}
}

func TestTablesCoverEveryModel(t *testing.T) {
	if got := len(Tables()); got != 4 {
		t.Fatalf("Tables() returned %d models, want 4", got)
	}
}
