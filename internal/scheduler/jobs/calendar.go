package jobs

import (
	"time"
)

// TradingCalendar answers trading-day questions for the US equity market
// ⭐ SSOT: 미국 휴장일 판단은 여기서만
type TradingCalendar struct {
	location *time.Location
	holidays map[string]bool // key: YYYY-MM-DD
}

// usMarketHolidays lists NYSE full-day closures
// 연도별로 직접 관리한다. 연말에 다음 해 목록 추가 필요.
var usMarketHolidays = []string{
	// 2025
	"2025-01-01", // New Year's Day
	"2025-01-20", // Martin Luther King Jr. Day
	"2025-02-17", // Presidents' Day
	"2025-04-18", // Good Friday
	"2025-05-26", // Memorial Day
	"2025-06-19", // Juneteenth
	"2025-07-04", // Independence Day
	"2025-09-01", // Labor Day
	"2025-11-27", // Thanksgiving Day
	"2025-12-25", // Christmas Day

	// 2026
	"2026-01-01", // New Year's Day
	"2026-01-19", // Martin Luther King Jr. Day
	"2026-02-16", // Presidents' Day
	"2026-04-03", // Good Friday
	"2026-05-25", // Memorial Day
	"2026-06-19", // Juneteenth
	"2026-07-03", // Independence Day (observed)
	"2026-09-07", // Labor Day
	"2026-11-26", // Thanksgiving Day
	"2026-12-25", // Christmas Day

	// 2027
	"2027-01-01", // New Year's Day
	"2027-01-18", // Martin Luther King Jr. Day
	"2027-02-15", // Presidents' Day
	"2027-03-26", // Good Friday
	"2027-05-31", // Memorial Day
	"2027-06-18", // Juneteenth (observed)
	"2027-07-05", // Independence Day (observed)
	"2027-09-06", // Labor Day
	"2027-11-25", // Thanksgiving Day
	"2027-12-24", // Christmas Day (observed)
}

// NewTradingCalendar creates a calendar for the given timezone
func NewTradingCalendar(loc *time.Location) *TradingCalendar {
	holidays := make(map[string]bool, len(usMarketHolidays))
	for _, day := range usMarketHolidays {
		holidays[day] = true
	}

	return &TradingCalendar{
		location: loc,
		holidays: holidays,
	}
}

// IsTradingDay returns true if the market is open on the given date
func (c *TradingCalendar) IsTradingDay(date time.Time) bool {
	local := date.In(c.location)

	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	return !c.holidays[local.Format("2006-01-02")]
}

// IsFirstTradingDayOfWeek returns true if no earlier trading day
// exists in the same week (Monday through the given date).
// 월요일 휴장 시 화요일이 주 첫 거래일이 된다.
func (c *TradingCalendar) IsFirstTradingDayOfWeek(date time.Time) bool {
	local := date.In(c.location)

	if !c.IsTradingDay(local) {
		return false
	}

	// 같은 주 월요일부터 전날까지 거래일이 있었는지 확인
	for d := c.weekStart(local); d.Before(truncateDay(local)); d = d.AddDate(0, 0, 1) {
		if c.IsTradingDay(d) {
			return false
		}
	}

	return true
}

// NextTradingDay returns the first trading day strictly after the given date
func (c *TradingCalendar) NextTradingDay(date time.Time) time.Time {
	d := truncateDay(date.In(c.location)).AddDate(0, 0, 1)
	for !c.IsTradingDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// weekStart returns the Monday of the week containing the date
func (c *TradingCalendar) weekStart(date time.Time) time.Time {
	local := truncateDay(date)
	offset := int(local.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday belongs to the preceding Monday's week
	}
	return local.AddDate(0, 0, -offset)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
