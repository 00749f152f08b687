package services

import (
	"errors"
	"strings"
	"time"
)

const exportRangeDateLayout = "2006-01-02"

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
	ErrExportPeriodInvalid   = errors.New("export invalid period")
)

// DateRange is a closed interval: From is the first instant of its day and
// To is the last instant of its day.
type DateRange struct {
	From   time.Time
	To     time.Time
	Period string
}

func (dateRange DateRange) DaySpan() int {
	return DaySpan(dateRange.From, dateRange.To)
}

// ParseExportRange reads yyyy-MM-dd bounds in location. A missing "to" means
// today; a missing "from" goes back one week (or one month for the month
// period) from "to". An explicit range without a period is labelled custom.
func ParseExportRange(rawFrom string, rawTo string, rawPeriod string, now time.Time, location *time.Location) (DateRange, error) {
	if location == nil {
		location = time.UTC
	}
	fromRaw := strings.TrimSpace(rawFrom)
	toRaw := strings.TrimSpace(rawTo)

	period := strings.ToLower(strings.TrimSpace(rawPeriod))
	switch period {
	case "", PeriodWeek, PeriodMonth, PeriodCustom:
	default:
		return DateRange{}, ErrExportPeriodInvalid
	}

	toDay := DateAtLocation(now, location)
	if toRaw != "" {
		parsedTo, err := time.ParseInLocation(exportRangeDateLayout, toRaw, location)
		if err != nil {
			return DateRange{}, ErrExportToDateInvalid
		}
		toDay = DateAtLocation(parsedTo, location)
	}

	var fromDay time.Time
	if fromRaw != "" {
		parsedFrom, err := time.ParseInLocation(exportRangeDateLayout, fromRaw, location)
		if err != nil {
			return DateRange{}, ErrExportFromDateInvalid
		}
		fromDay = DateAtLocation(parsedFrom, location)
		if period == "" {
			period = PeriodCustom
		}
	} else {
		if period == "" || period == PeriodCustom {
			period = PeriodWeek
		}
		fromDay = DefaultRangeStart(toDay, period)
	}

	if toDay.Before(fromDay) {
		return DateRange{}, ErrExportRangeInvalid
	}

	return DateRange{
		From:   fromDay,
		To:     EndOfDay(toDay, location),
		Period: period,
	}, nil
}

func DefaultRangeStart(toDay time.Time, period string) time.Time {
	if period == PeriodMonth {
		return toDay.AddDate(0, -1, 0)
	}
	return toDay.AddDate(0, 0, -7)
}
