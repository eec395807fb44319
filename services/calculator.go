package services

import (
	"math"
)

type MileageResult struct {
	Distance float64 `json:"distance"`
	Mileage  float64 `json:"mileage"`
}

type FuelEstimate struct {
	FuelNeeded    float64  `json:"fuelNeeded"`
	EstimatedCost *float64 `json:"estimatedCost,omitempty"`
}

type TripCharge struct {
	KmDriven     float64 `json:"kmDriven"`
	TotalCharges float64 `json:"totalCharges"`
}

// CalculateMileage returns distance = finalKm - initialKm and
// mileage = distance / fuelUsed in km per litre.
func CalculateMileage(initialKm, finalKm, fuelUsed float64) (MileageResult, error) {
	if !finite(initialKm, finalKm, fuelUsed) {
		return MileageResult{}, InvalidArgument("numeric fields must be finite numbers")
	}
	if initialKm < 0 {
		return MileageResult{}, InvalidArgument("initialKm cannot be negative")
	}
	if finalKm < initialKm {
		return MileageResult{}, InvalidArgument("finalKm must be greater than or equal to initialKm")
	}
	if fuelUsed <= 0 {
		return MileageResult{}, InvalidArgument("fuelUsed must be greater than 0")
	}

	distance := round2(finalKm - initialKm)
	return MileageResult{
		Distance: distance,
		Mileage:  round2(distance / fuelUsed),
	}, nil
}

// EstimateFuel returns the fuel needed to cover distance at the given mileage
// and, when fuelPrice is positive, what that fuel costs.
func EstimateFuel(distance, mileage, fuelPrice float64) (FuelEstimate, error) {
	if !finite(distance, mileage, fuelPrice) {
		return FuelEstimate{}, InvalidArgument("numeric fields must be finite numbers")
	}
	if distance <= 0 {
		return FuelEstimate{}, InvalidArgument("distance must be greater than 0")
	}
	if mileage <= 0 {
		return FuelEstimate{}, InvalidArgument("mileage must be greater than 0")
	}
	if fuelPrice < 0 {
		return FuelEstimate{}, InvalidArgument("fuelPrice cannot be negative")
	}

	fuelNeeded := distance / mileage
	estimate := FuelEstimate{FuelNeeded: round2(fuelNeeded)}
	if fuelPrice > 0 {
		cost := round2(fuelNeeded * fuelPrice)
		estimate.EstimatedCost = &cost
	}
	return estimate, nil
}

// CalculateTripCharge returns kmDriven = finalKm - initialKm and
// totalCharges = kmDriven * pricePerKm.
func CalculateTripCharge(initialKm, finalKm, pricePerKm float64) (TripCharge, error) {
	if !finite(initialKm, finalKm, pricePerKm) {
		return TripCharge{}, InvalidArgument("numeric fields must be finite numbers")
	}
	if initialKm < 0 {
		return TripCharge{}, InvalidArgument("initialKm cannot be negative")
	}
	if finalKm <= initialKm {
		return TripCharge{}, InvalidArgument("finalKm must be greater than initialKm")
	}
	if pricePerKm <= 0 {
		return TripCharge{}, InvalidArgument("pricePerKm must be greater than 0")
	}

	// Stored values are rounded, so the positivity rules apply after rounding.
	kmDriven := round2(finalKm - initialKm)
	if kmDriven <= 0 {
		return TripCharge{}, InvalidArgument("finalKm must exceed initialKm by at least 0.01 km")
	}
	totalCharges := round2(kmDriven * pricePerKm)
	if totalCharges <= 0 {
		return TripCharge{}, InvalidArgument("totalCharges must be at least 0.01")
	}
	return TripCharge{
		KmDriven:     kmDriven,
		TotalCharges: totalCharges,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
