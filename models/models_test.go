package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMoneyFromFloatRounds(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{250, 25000},
		{12.346, 1235},
		{0.1 + 0.2, 30},
		{-2.5, -250},
	}
	for _, tc := range cases {
		if got := MoneyFromFloat(tc.in).Cents; got != tc.want {
			t.Errorf("MoneyFromFloat(%v) = %d cents, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := map[int64]string{
		0:      "0.00",
		5:      "0.05",
		15000:  "150.00",
		-15000: "-150.00",
		-1205:  "-12.05",
		123456: "1234.56",
	}
	for cents, want := range cases {
		if got := (Money{Cents: cents}).String(); got != want {
			t.Errorf("Money{%d}.String() = %q, want %q", cents, got, want)
		}
	}
}

func TestSummaryTotalsJSON(t *testing.T) {
	totals := SummaryTotals{
		TotalExpense: Money{Cents: 10000},
		TotalIncome:  Money{Cents: 25000},
	}
	totals.ProfitLoss = totals.TotalIncome.Sub(totals.TotalExpense)

	raw, err := json.Marshal(totals)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"totalExpense":"100.00","totalIncome":"250.00","profitLoss":"150.00"}`
	if string(raw) != want {
		t.Fatalf("got %s, want %s", raw, want)
	}
}

func TestParseUserType(t *testing.T) {
	cases := map[string]UserType{
		"admin":   UserTypeAdmin,
		"Owner":   UserTypeAdmin,
		" DRIVER": UserTypeDriver,
	}
	for in, want := range cases {
		got, ok := ParseUserType(in)
		if !ok || got != want {
			t.Errorf("ParseUserType(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseUserType("passenger"); ok {
		t.Error("passenger should be rejected")
	}
}

func TestUserPasswordNotSerialized(t *testing.T) {
	raw, err := json.Marshal(User{ID: "u1", Email: "a@b.co", Password: "hash"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "hash") {
		t.Fatalf("password leaked: %s", raw)
	}
}
