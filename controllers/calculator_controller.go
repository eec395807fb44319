// File: /controllers/calculator_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"milestone-api/logger"
	"milestone-api/services"
)

// CalculatorController exposes the record arithmetic without storing
// anything, so forms can preview derived values.
type CalculatorController struct {
	log *logger.Logger
}

func NewCalculatorController(log *logger.Logger) *CalculatorController {
	return &CalculatorController{log: log}
}

type MileageCalcRequest struct {
	InitialKm *float64 `json:"initialKm" binding:"required"`
	FinalKm   *float64 `json:"finalKm" binding:"required"`
	FuelUsed  *float64 `json:"fuelUsed" binding:"required"`
}

type FuelCostRequest struct {
	Distance *float64 `json:"distance" binding:"required"`
	Mileage  *float64 `json:"mileage" binding:"required"`
	// Optional; no cost is estimated without it.
	FuelPrice *float64 `json:"fuelPrice"`
}

type TripChargeRequest struct {
	InitialKm  *float64 `json:"initialKm" binding:"required"`
	FinalKm    *float64 `json:"finalKm" binding:"required"`
	PricePerKm *float64 `json:"pricePerKm" binding:"required"`
}

func (cc *CalculatorController) CalculateMileage(c *gin.Context) {
	var req MileageCalcRequest
	if !bindRecord(c, &req, "initialKm, finalKm and fuelUsed are required") {
		return
	}

	result, err := services.CalculateMileage(*req.InitialKm, *req.FinalKm, *req.FuelUsed)
	if err != nil {
		respondError(c, cc.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (cc *CalculatorController) CalculateFuelCost(c *gin.Context) {
	var req FuelCostRequest
	if !bindRecord(c, &req, "distance and mileage are required") {
		return
	}

	var fuelPrice float64
	if req.FuelPrice != nil {
		fuelPrice = *req.FuelPrice
	}
	result, err := services.EstimateFuel(*req.Distance, *req.Mileage, fuelPrice)
	if err != nil {
		respondError(c, cc.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (cc *CalculatorController) CalculateTripCharge(c *gin.Context) {
	var req TripChargeRequest
	if !bindRecord(c, &req, "initialKm, finalKm and pricePerKm are required") {
		return
	}

	result, err := services.CalculateTripCharge(*req.InitialKm, *req.FinalKm, *req.PricePerKm)
	if err != nil {
		respondError(c, cc.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
