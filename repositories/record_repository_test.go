package repositories

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"milestone-api/models"
)

// dryRunDB opens a MySQL dialector without touching the network so generated
// SQL can be inspected with ToSQL.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:password@tcp(127.0.0.1:3306)/milestone?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func assertContains(t *testing.T, sql string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(sql, f) {
			t.Errorf("SQL %q does not contain %q", sql, f)
		}
	}
}

func TestMileageQueryIsOwnerScoped(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return mileageQuery(tx, "user-1").Find(&[]models.MileageRecord{})
	})

	assertContains(t, sql,
		"FROM `mileage_records`",
		"user_id = 'user-1'",
		"ORDER BY date DESC, id DESC",
	)
}

func TestTripsQueryAppliesInclusiveLowerBound(t *testing.T) {
	db := dryRunDB(t)
	start := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tripsQuery(tx, "user-1", &start).Find(&[]models.TripRecord{})
	})

	assertContains(t, sql,
		"FROM `trip_records`",
		"user_id = 'user-1'",
		"trip_time >= '2026-10-01 00:00:00'",
		"ORDER BY trip_time DESC, id DESC",
	)
}

func TestQueriesWithoutLowerBound(t *testing.T) {
	db := dryRunDB(t)

	trips := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tripsQuery(tx, "user-2", nil).Find(&[]models.TripRecord{})
	})
	logs := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return accountLogsQuery(tx, "user-2", nil).Find(&[]models.AccountLogRecord{})
	})

	for _, sql := range []string{trips, logs} {
		assertContains(t, sql, "user_id = 'user-2'")
		if strings.Contains(sql, ">=") {
			t.Errorf("unexpected lower bound in %q", sql)
		}
	}
}

func TestAccountLogsQueryAppliesLowerBound(t *testing.T) {
	db := dryRunDB(t)
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return accountLogsQuery(tx, "user-3", &start).Find(&[]models.AccountLogRecord{})
	})

	assertContains(t, sql,
		"FROM `account_log_records`",
		"user_id = 'user-3'",
		"date >= '2026-01-01 00:00:00'",
	)
}

func TestTranslate(t *testing.T) {
	if translate(nil) != nil {
		t.Fatal("nil should stay nil")
	}
	if !errors.Is(translate(gorm.ErrRecordNotFound), ErrNotFound) {
		t.Fatal("record not found should map to ErrNotFound")
	}
	if !errors.Is(translate(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), ErrDuplicate) {
		t.Fatal("duplicated key should map to ErrDuplicate")
	}
	other := errors.New("connection refused")
	if translate(other) != other {
		t.Fatal("other errors pass through")
	}
}
