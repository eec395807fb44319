package services

import (
	"math"
	"testing"
)

func TestCalculateMileage(t *testing.T) {
	got, err := CalculateMileage(1000, 1100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Distance != 100 || got.Mileage != 10 {
		t.Fatalf("got %+v, want distance=100 mileage=10", got)
	}

	got, err = CalculateMileage(1000.4, 1100.5, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Distance != 100.1 || got.Mileage != 33.37 {
		t.Fatalf("got %+v, want distance=100.1 mileage=33.37", got)
	}

	// Standing still is a valid reading.
	got, err = CalculateMileage(500, 500, 1)
	if err != nil || got.Distance != 0 || got.Mileage != 0 {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestCalculateMileageRejects(t *testing.T) {
	cases := []struct {
		name                string
		initial, final, fuel float64
	}{
		{"negative initial", -1, 10, 1},
		{"final below initial", 100, 99, 1},
		{"zero fuel", 0, 10, 0},
		{"negative fuel", 0, 10, -2},
		{"nan", math.NaN(), 10, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateMileage(tc.initial, tc.final, tc.fuel)
			if KindOf(err) != KindInvalidArgument {
				t.Fatalf("expected invalid argument, got %v", err)
			}
		})
	}
}

func TestEstimateFuel(t *testing.T) {
	got, err := EstimateFuel(300, 15, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FuelNeeded != 20 || got.EstimatedCost == nil || *got.EstimatedCost != 2000 {
		t.Fatalf("got %+v", got)
	}

	got, err = EstimateFuel(100, 30, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FuelNeeded != 3.33 || got.EstimatedCost != nil {
		t.Fatalf("without a price no cost is estimated, got %+v", got)
	}

	if _, err := EstimateFuel(0, 10, 1); KindOf(err) != KindInvalidArgument {
		t.Fatalf("zero distance: %v", err)
	}
	if _, err := EstimateFuel(10, 0, 1); KindOf(err) != KindInvalidArgument {
		t.Fatalf("zero mileage: %v", err)
	}
	if _, err := EstimateFuel(10, 10, -1); KindOf(err) != KindInvalidArgument {
		t.Fatalf("negative price: %v", err)
	}
}

func TestCalculateTripCharge(t *testing.T) {
	got, err := CalculateTripCharge(0, 50, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.KmDriven != 50 || got.TotalCharges != 250 {
		t.Fatalf("got %+v, want kmDriven=50 totalCharges=250", got)
	}

	if _, err := CalculateTripCharge(50, 50, 5); KindOf(err) != KindInvalidArgument {
		t.Fatalf("equal readings must be rejected: %v", err)
	}
	if _, err := CalculateTripCharge(0, 50, 0); KindOf(err) != KindInvalidArgument {
		t.Fatalf("zero price must be rejected: %v", err)
	}
	if _, err := CalculateTripCharge(0, 0.004, 5); KindOf(err) != KindInvalidArgument {
		t.Fatalf("distance that rounds to zero should be invalid, got %v", err)
	}
	if _, err := CalculateTripCharge(0, 1, 0.001); KindOf(err) != KindInvalidArgument {
		t.Fatalf("charge that rounds to zero should be invalid, got %v", err)
	}
	if _, err := CalculateTripCharge(-5, 50, 1); KindOf(err) != KindInvalidArgument {
		t.Fatalf("negative initial must be rejected: %v", err)
	}
}
