package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"milestone-api/models"
)

// RecordReader is the read side of the record store. A nil since means no
// lower bound.
type RecordReader interface {
	FindMileage(ctx context.Context, userID string) ([]models.MileageRecord, error)
	FindTrips(ctx context.Context, userID string, since *time.Time) ([]models.TripRecord, error)
	FindAccountLogs(ctx context.Context, userID string, since *time.Time) ([]models.AccountLogRecord, error)
}

// HistoryFilter narrows a history view. Empty fields match everything.
type HistoryFilter struct {
	Type      string
	VehicleNo string
}

// AggregationService builds read-only views over a user's records: the merged
// mileage/trip history and the monthly or yearly profit/loss summary.
type AggregationService struct {
	store    RecordReader
	loc      *time.Location
	currency string
	now      func() time.Time
}

func NewAggregationService(store RecordReader, loc *time.Location, currency string) *AggregationService {
	if loc == nil {
		loc = time.Local
	}
	return &AggregationService{
		store:    store,
		loc:      loc,
		currency: currency,
		now:      time.Now,
	}
}

// WithClock replaces the clock that decides the current period.
func (s *AggregationService) WithClock(now func() time.Time) *AggregationService {
	s.now = now
	return s
}

// ParsePeriod accepts exactly "monthly" or "yearly".
func ParsePeriod(s string) (models.Period, error) {
	switch models.Period(s) {
	case models.PeriodMonthly, models.PeriodYearly:
		return models.Period(s), nil
	default:
		return "", InvalidArgument(`invalid period, use "monthly" or "yearly"`)
	}
}

// StartOfPeriod returns midnight on the first day of now's month or year in loc.
func StartOfPeriod(now time.Time, period models.Period, loc *time.Location) time.Time {
	now = now.In(loc)
	if period == models.PeriodYearly {
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
}

func parseHistoryType(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "mileage":
		return models.EntryTypeMileage, nil
	case "trip":
		return models.EntryTypeTrip, nil
	default:
		return "", InvalidArgument(`invalid type, use "Mileage" or "Trip"`)
	}
}

// BuildHistory merges the user's mileage and trip records into one view,
// newest first. Filters are applied before sorting.
func (s *AggregationService) BuildHistory(ctx context.Context, userID string, filter HistoryFilter) ([]models.HistoryEntry, error) {
	entryType, err := parseHistoryType(filter.Type)
	if err != nil {
		return nil, err
	}
	vehicle := strings.ToLower(strings.TrimSpace(filter.VehicleNo))

	var (
		mileage []models.MileageRecord
		trips   []models.TripRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	if entryType != models.EntryTypeTrip {
		g.Go(func() error {
			var err error
			if mileage, err = s.store.FindMileage(gctx, userID); err != nil {
				return Transient("failed to fetch mileage records", err)
			}
			return nil
		})
	}
	if entryType != models.EntryTypeMileage {
		g.Go(func() error {
			var err error
			if trips, err = s.store.FindTrips(gctx, userID, nil); err != nil {
				return Transient("failed to fetch trips", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntry, 0, len(mileage)+len(trips))
	for _, m := range mileage {
		if matchesVehicle(m.VehicleNo, vehicle) {
			entries = append(entries, s.mileageEntry(m))
		}
	}
	for _, t := range trips {
		if matchesVehicle(t.VehicleNo, vehicle) {
			entries = append(entries, s.tripEntry(t))
		}
	}

	sortEntries(entries)
	return entries, nil
}

// Summarize totals expenses and trip income from the start of the current
// month or year (inclusive) and lists the contributing rows newest first.
func (s *AggregationService) Summarize(ctx context.Context, userID string, period string) (*models.PeriodSummary, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	start := StartOfPeriod(s.now(), p, s.loc)

	var (
		expenses []models.AccountLogRecord
		trips    []models.TripRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if expenses, err = s.store.FindAccountLogs(gctx, userID, &start); err != nil {
			return Transient("failed to fetch account logs", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if trips, err = s.store.FindTrips(gctx, userID, &start); err != nil {
			return Transient("failed to fetch trips", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var totals models.SummaryTotals
	logs := make([]models.HistoryEntry, 0, len(expenses)+len(trips))
	for _, e := range expenses {
		if e.Date.Before(start) {
			continue
		}
		totals.TotalExpense = totals.TotalExpense.Add(models.MoneyFromFloat(e.Cost))
		logs = append(logs, s.expenseEntry(e))
	}
	for _, t := range trips {
		if t.Time.Before(start) {
			continue
		}
		totals.TotalIncome = totals.TotalIncome.Add(models.MoneyFromFloat(t.TotalCharges))
		logs = append(logs, s.incomeEntry(t))
	}
	totals.ProfitLoss = totals.TotalIncome.Sub(totals.TotalExpense)

	sortEntries(logs)
	return &models.PeriodSummary{
		Period:    p,
		StartDate: start,
		Summary:   totals,
		Logs:      logs,
	}, nil
}

// sortEntries orders newest first. Equal timestamps fall back to id
// descending; ids are UUIDv7 so that is the most recently inserted first.
func sortEntries(entries []models.HistoryEntry) {
	slices.SortStableFunc(entries, func(a, b models.HistoryEntry) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
}

func matchesVehicle(vehicleNo, query string) bool {
	return query == "" || strings.Contains(strings.ToLower(vehicleNo), query)
}

func (s *AggregationService) mileageEntry(m models.MileageRecord) models.HistoryEntry {
	return models.HistoryEntry{
		ID:        m.ID,
		Date:      m.Date,
		Type:      models.EntryTypeMileage,
		VehicleNo: m.VehicleNo,
		Details: fmt.Sprintf("Vehicle: %s, Distance: %s km, Fuel: %s L, Mileage: %s km/L",
			m.VehicleNo, formatNumber(m.Distance), formatNumber(m.FuelUsed), formatNumber(m.Mileage)),
	}
}

func (s *AggregationService) tripEntry(t models.TripRecord) models.HistoryEntry {
	return models.HistoryEntry{
		ID:        t.ID,
		Date:      t.Time,
		Type:      models.EntryTypeTrip,
		VehicleNo: t.VehicleNo,
		Details: fmt.Sprintf("Vehicle: %s, Initial KM: %s, Final KM: %s, Distance: %s km, Total Amount: %s",
			t.VehicleNo, formatNumber(t.InitialKm), formatNumber(t.FinalKm), formatNumber(t.KmDriven),
			s.formatMoney(models.MoneyFromFloat(t.TotalCharges))),
	}
}

func (s *AggregationService) expenseEntry(e models.AccountLogRecord) models.HistoryEntry {
	return models.HistoryEntry{
		ID:        e.ID,
		Date:      e.Date,
		Type:      models.EntryTypeExpense,
		VehicleNo: e.VehicleNo,
		Details: fmt.Sprintf("Cost: %s for %s (%s) on %s",
			s.formatMoney(models.MoneyFromFloat(e.Cost)), e.Reason, e.VehicleNo, s.formatDate(e.Date)),
	}
}

func (s *AggregationService) incomeEntry(t models.TripRecord) models.HistoryEntry {
	return models.HistoryEntry{
		ID:        t.ID,
		Date:      t.Time,
		Type:      models.EntryTypeIncome,
		VehicleNo: t.VehicleNo,
		Details: fmt.Sprintf("Trip Income: %s (%s) on %s",
			s.formatMoney(models.MoneyFromFloat(t.TotalCharges)), t.VehicleNo, s.formatDate(t.Time)),
	}
}

func (s *AggregationService) formatMoney(m models.Money) string {
	return s.currency + m.String()
}

// formatDate renders a short month/day/year date in the service's timezone.
func (s *AggregationService) formatDate(t time.Time) string {
	return t.In(s.loc).Format("1/2/2006")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
