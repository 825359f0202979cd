package dates

// TimeOfDay identifies the moment within a trading day an event occurs at,
// for instruments that need intra-day granularity (e.g. European options
// observed at the close).
type TimeOfDay int

const (
	// Open is the start-of-day auction moment.
	Open TimeOfDay = iota
	// EDSP is the exchange delivery settlement price moment.
	EDSP
	// Close is the end-of-day close.
	Close
)

// DateTime pairs a calendar Date with a TimeOfDay.
type DateTime struct {
	date Date
	tod  TimeOfDay
}

// NewDateTime constructs a DateTime.
func NewDateTime(d Date, tod TimeOfDay) DateTime {
	return DateTime{date: d, tod: tod}
}

// Date returns the calendar day component.
func (dt DateTime) Date() Date { return dt.date }

// TimeOfDay returns the intra-day component.
func (dt DateTime) TimeOfDay() TimeOfDay { return dt.tod }

// DateDayFraction expresses a moment as a calendar date plus the fraction of
// that day elapsed, used by vol-surface time dynamics to measure time to
// expiry precisely.
type DateDayFraction struct {
	date     Date
	fraction float64
}

// NewDateDayFraction constructs a DateDayFraction.
func NewDateDayFraction(d Date, fraction float64) DateDayFraction {
	return DateDayFraction{date: d, fraction: fraction}
}

// Date returns the calendar day component.
func (f DateDayFraction) Date() Date { return f.date }

// Fraction returns the elapsed fraction of the day, in [0, 1).
func (f DateDayFraction) Fraction() float64 { return f.fraction }

// YearFractionTo returns the Act/365 year fraction from f to other,
// including the day-fraction components.
func (f DateDayFraction) YearFractionTo(other DateDayFraction) float64 {
	days := float64(DaysBetween(f.date, other.date))
	days += other.fraction - f.fraction
	return days / 365.0
}
