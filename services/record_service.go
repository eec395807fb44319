package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"milestone-api/models"
)

// derivedTolerance is how far a client-computed derived value may stray from
// the server's two-decimal result.
const derivedTolerance = 0.01 + 1e-9

type RecordWriter interface {
	CreateMileage(ctx context.Context, record *models.MileageRecord) error
	CreateTrip(ctx context.Context, record *models.TripRecord) error
	CreateAccountLog(ctx context.Context, record *models.AccountLogRecord) error
}

type RecordStore interface {
	RecordReader
	RecordWriter
}

type MileageInput struct {
	VehicleNo string
	InitialKm float64
	FinalKm   float64
	FuelUsed  float64
	Date      time.Time

	// Optional client-side results, checked against the server's.
	Distance *float64
	Mileage  *float64
}

type TripInput struct {
	VehicleNo  string
	InitialKm  float64
	FinalKm    float64
	PricePerKm float64
	Time       time.Time

	KmDriven     *float64
	TotalCharges *float64
}

type AccountLogInput struct {
	VehicleNo string
	Reason    string
	Cost      float64
	// Defaults to the current time when nil.
	Date *time.Time
}

// RecordService validates submissions, derives computed fields and appends
// the resulting records to the store.
type RecordService struct {
	store RecordStore
	now   func() time.Time
	newID func() string
}

func NewRecordService(store RecordStore) *RecordService {
	return &RecordService{
		store: store,
		now:   time.Now,
		newID: newRecordID,
	}
}

// WithClock replaces the clock used for defaulted dates.
func (s *RecordService) WithClock(now func() time.Time) *RecordService {
	s.now = now
	return s
}

// newRecordID returns a time-ordered UUID so ids double as an insertion order.
func newRecordID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (s *RecordService) CreateMileage(ctx context.Context, userID string, in MileageInput) (*models.MileageRecord, error) {
	vehicleNo, err := normalizeVehicleNo(in.VehicleNo)
	if err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, InvalidArgument("date is required")
	}

	result, err := CalculateMileage(in.InitialKm, in.FinalKm, in.FuelUsed)
	if err != nil {
		return nil, err
	}
	if err := checkDerived("distance", in.Distance, result.Distance); err != nil {
		return nil, err
	}
	if err := checkDerived("mileage", in.Mileage, result.Mileage); err != nil {
		return nil, err
	}

	record := &models.MileageRecord{
		ID:        s.newID(),
		UserID:    userID,
		VehicleNo: vehicleNo,
		InitialKm: in.InitialKm,
		FinalKm:   in.FinalKm,
		Distance:  result.Distance,
		FuelUsed:  in.FuelUsed,
		Mileage:   result.Mileage,
		Date:      in.Date,
	}
	if err := s.store.CreateMileage(ctx, record); err != nil {
		return nil, Transient("failed to save mileage data", err)
	}
	return record, nil
}

func (s *RecordService) CreateTrip(ctx context.Context, userID string, in TripInput) (*models.TripRecord, error) {
	vehicleNo, err := normalizeVehicleNo(in.VehicleNo)
	if err != nil {
		return nil, err
	}
	if in.Time.IsZero() {
		return nil, InvalidArgument("time is required")
	}

	charge, err := CalculateTripCharge(in.InitialKm, in.FinalKm, in.PricePerKm)
	if err != nil {
		return nil, err
	}
	if err := checkDerived("kmDriven", in.KmDriven, charge.KmDriven); err != nil {
		return nil, err
	}
	if err := checkDerived("totalCharges", in.TotalCharges, charge.TotalCharges); err != nil {
		return nil, err
	}

	record := &models.TripRecord{
		ID:           s.newID(),
		UserID:       userID,
		VehicleNo:    vehicleNo,
		InitialKm:    in.InitialKm,
		FinalKm:      in.FinalKm,
		PricePerKm:   in.PricePerKm,
		KmDriven:     charge.KmDriven,
		TotalCharges: charge.TotalCharges,
		Time:         in.Time,
	}
	if err := s.store.CreateTrip(ctx, record); err != nil {
		return nil, Transient("failed to save trip data", err)
	}
	return record, nil
}

func (s *RecordService) CreateAccountLog(ctx context.Context, userID string, in AccountLogInput) (*models.AccountLogRecord, error) {
	vehicleNo, err := normalizeVehicleNo(in.VehicleNo)
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, InvalidArgument("reason is required")
	}
	cost := round2(in.Cost)
	if !finite(in.Cost) || cost <= 0 {
		return nil, InvalidArgument("cost must be a positive number of at least 0.01")
	}

	date := s.now()
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	record := &models.AccountLogRecord{
		ID:        s.newID(),
		UserID:    userID,
		VehicleNo: vehicleNo,
		Reason:    reason,
		Cost:      cost,
		Date:      date,
	}
	if err := s.store.CreateAccountLog(ctx, record); err != nil {
		return nil, Transient("failed to save expense", err)
	}
	return record, nil
}

func (s *RecordService) ListMileage(ctx context.Context, userID string) ([]models.MileageRecord, error) {
	records, err := s.store.FindMileage(ctx, userID)
	if err != nil {
		return nil, Transient("failed to fetch mileage records", err)
	}
	return records, nil
}

func (s *RecordService) ListTrips(ctx context.Context, userID string) ([]models.TripRecord, error) {
	records, err := s.store.FindTrips(ctx, userID, nil)
	if err != nil {
		return nil, Transient("failed to fetch trips", err)
	}
	return records, nil
}

func (s *RecordService) ListAccountLogs(ctx context.Context, userID string) ([]models.AccountLogRecord, error) {
	records, err := s.store.FindAccountLogs(ctx, userID, nil)
	if err != nil {
		return nil, Transient("failed to fetch account logs", err)
	}
	return records, nil
}

func normalizeVehicleNo(s string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return "", InvalidArgument("vehicleNo is required")
	}
	if len(v) > 32 {
		return "", InvalidArgument("vehicleNo cannot exceed 32 characters")
	}
	return v, nil
}

func checkDerived(field string, sent *float64, computed float64) error {
	if sent == nil {
		return nil
	}
	if math.Abs(*sent-computed) > derivedTolerance {
		return InvalidArgument(fmt.Sprintf("%s %.2f does not match the computed value %.2f", field, *sent, computed))
	}
	return nil
}
