// File: /controllers/record_controller.go
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"milestone-api/logger"
	"milestone-api/services"
	"milestone-api/utils"
)

type RecordController struct {
	recordService *services.RecordService
	loc           *time.Location
	log           *logger.Logger
}

func NewRecordController(recordService *services.RecordService, loc *time.Location, log *logger.Logger) *RecordController {
	return &RecordController{
		recordService: recordService,
		loc:           loc,
		log:           log.WithComponent(logger.ComponentRecords),
	}
}

// Numeric fields are pointers so that an explicit 0 passes "required" and
// reaches the range checks in the service.
type CreateMileageRequest struct {
	VehicleNo string   `json:"vehicleNo" binding:"required"`
	InitialKm *float64 `json:"initialKm" binding:"required"`
	FinalKm   *float64 `json:"finalKm" binding:"required"`
	FuelUsed  *float64 `json:"fuelUsed" binding:"required"`
	Date      string   `json:"date" binding:"required"`
	Distance  *float64 `json:"distance"`
	Mileage   *float64 `json:"mileage"`
}

type CreateTripRequest struct {
	VehicleNo    string   `json:"vehicleNo" binding:"required"`
	InitialKm    *float64 `json:"initialKm" binding:"required"`
	FinalKm      *float64 `json:"finalKm" binding:"required"`
	PricePerKm   *float64 `json:"pricePerKm" binding:"required"`
	Time         string   `json:"time" binding:"required"`
	KmDriven     *float64 `json:"kmDriven"`
	TotalCharges *float64 `json:"totalCharges"`
}

type CreateAccountLogRequest struct {
	VehicleNo string   `json:"vehicleNo" binding:"required"`
	Reason    string   `json:"reason" binding:"required"`
	Cost      *float64 `json:"cost" binding:"required"`
	Date      string   `json:"date"`
}

// bindRecord binds the JSON body and writes a 400 when it does not fit req.
func bindRecord(c *gin.Context, req interface{}, missing string) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		utils.SendValidationError(c, "Field '"+typeErr.Field+"' has the wrong type; numeric fields must be JSON numbers")
		return false
	}
	utils.SendValidationError(c, missing)
	return false
}

func (rc *RecordController) CreateMileage(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateMileageRequest
	if !bindRecord(c, &req, "All fields are required") {
		return
	}

	date, err := utils.ParseTimestamp(req.Date, rc.loc)
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	record, err := rc.recordService.CreateMileage(c.Request.Context(), userID, services.MileageInput{
		VehicleNo: req.VehicleNo,
		InitialKm: *req.InitialKm,
		FinalKm:   *req.FinalKm,
		FuelUsed:  *req.FuelUsed,
		Date:      date,
		Distance:  req.Distance,
		Mileage:   req.Mileage,
	})
	if err != nil {
		respondError(c, rc.log, err)
		return
	}

	utils.SendCreated(c, "Mileage data saved successfully", record)
}

func (rc *RecordController) GetMileage(c *gin.Context) {
	records, err := rc.recordService.ListMileage(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (rc *RecordController) CreateTrip(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateTripRequest
	if !bindRecord(c, &req, "All fields are required") {
		return
	}

	tripTime, err := utils.ParseTimestamp(req.Time, rc.loc)
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	record, err := rc.recordService.CreateTrip(c.Request.Context(), userID, services.TripInput{
		VehicleNo:    req.VehicleNo,
		InitialKm:    *req.InitialKm,
		FinalKm:      *req.FinalKm,
		PricePerKm:   *req.PricePerKm,
		Time:         tripTime,
		KmDriven:     req.KmDriven,
		TotalCharges: req.TotalCharges,
	})
	if err != nil {
		respondError(c, rc.log, err)
		return
	}

	utils.SendCreated(c, "Trip data saved successfully", record)
}

func (rc *RecordController) GetTrips(c *gin.Context) {
	records, err := rc.recordService.ListTrips(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (rc *RecordController) CreateAccountLog(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateAccountLogRequest
	if !bindRecord(c, &req, "Vehicle number, reason, and cost are required") {
		return
	}

	input := services.AccountLogInput{
		VehicleNo: req.VehicleNo,
		Reason:    req.Reason,
		Cost:      *req.Cost,
	}
	if req.Date != "" {
		date, err := utils.ParseTimestamp(req.Date, rc.loc)
		if err != nil {
			utils.SendValidationError(c, err.Error())
			return
		}
		input.Date = &date
	}

	record, err := rc.recordService.CreateAccountLog(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}

	utils.SendCreated(c, "Expense saved successfully", record)
}

func (rc *RecordController) GetAccountLogs(c *gin.Context) {
	records, err := rc.recordService.ListAccountLogs(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
