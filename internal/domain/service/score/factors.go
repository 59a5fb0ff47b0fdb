package score

import (
	"fmt"
	"math"
	"time"

	"bumpwatch/internal/domain/entity"
)

// Factor caps. The sum of all maxima exceeds the score ceiling on purpose:
// no single bad signal can saturate a score, only a pile-up can.
const (
	maxCarrierPoints    = 15
	maxLoadPoints       = 20
	maxDayPoints        = 10
	maxTimePoints       = 8
	maxAircraftPoints   = 12
	maxWeatherPoints    = 16
	maxDisruptionPoints = 8
	maxHolidayPoints    = 10
	maxHubPoints        = 6

	peakLoadBump = 0.04
)

func baseFactor() entity.Factor {
	return entity.Factor{
		Name:        "base",
		Points:      basePoints,
		MaxPoints:   basePoints,
		Description: "Baseline oversale exposure on a US domestic departure",
	}
}

// carrierFactor scales the carrier's involuntary denied-boarding rate onto
// the factor range. The scale keeps the worst offenders near the cap while
// a near-zero bumper like JetBlue contributes almost nothing.
func (e *Engine) carrierFactor(iata string) entity.Factor {
	f := entity.Factor{Name: "carrier", MaxPoints: maxCarrierPoints}

	stats, ok := e.ref.CarrierByIATA(iata)
	if !ok {
		f.Description = "Unknown carrier"
		return f
	}

	f.Points = clamp(int(math.Round(stats.BumpRate*2.1)), 0, maxCarrierPoints)
	f.Description = fmt.Sprintf("%s denies boarding to %.1f per 10k passengers", stats.Name, stats.BumpRate)

	return f
}

// loadFactorFactor rewards routes flying fuller than the network baseline.
// On peak travel days the observed load factor is nudged upward before
// scaling, since historical averages understate holiday loads.
func loadFactorFactor(load entity.RouteLoadFactor, peakDay bool) entity.Factor {
	lf := load.LoadFactor
	note := ""

	if peakDay {
		lf += peakLoadBump
		note = " (peak day)"
	}

	points := clamp(int(math.Round((lf-0.75)*80)), 0, maxLoadPoints)

	return entity.Factor{
		Name:        "loadFactor",
		Points:      points,
		MaxPoints:   maxLoadPoints,
		Description: fmt.Sprintf("Route runs at %.0f%% load%s", load.LoadFactor*100, note),
	}
}

// dayOfWeekFactor follows business travel: Monday and Thursday/Friday are
// the heavy days, Sunday returns are elevated, Saturday only matters on
// leisure routes.
func dayOfWeekFactor(departure time.Time, leisureRoute bool) entity.Factor {
	f := entity.Factor{Name: "dayOfWeek", MaxPoints: maxDayPoints}

	day := departure.Weekday()

	switch day {
	case time.Monday, time.Thursday, time.Friday:
		f.Points = maxDayPoints
		f.Description = fmt.Sprintf("%s is a peak business travel day", day)
	case time.Sunday:
		f.Points = 7
		f.Description = "Sunday return traffic"
	case time.Saturday:
		if leisureRoute {
			f.Points = 6
			f.Description = "Saturday on a leisure route"
		} else {
			f.Points = 1
			f.Description = "Saturday is the quietest day on business routes"
		}
	case time.Tuesday, time.Wednesday:
		f.Points = 1
		f.Description = fmt.Sprintf("%s is an off-peak day", day)
	}

	return f
}

// timeOfDayFactor follows the departure banks: the evening last bank has
// the fewest rebooking options, the morning rush is next, midday is slack.
func timeOfDayFactor(departure time.Time) entity.Factor {
	f := entity.Factor{Name: "timeOfDay", MaxPoints: maxTimePoints}

	hour := departure.Hour()

	switch {
	case hour >= 17 && hour <= 21:
		f.Points = maxTimePoints
		f.Description = "Evening departure, last rebooking options of the day"
	case hour >= 6 && hour <= 9:
		f.Points = 6
		f.Description = "Morning rush departure"
	case hour >= 22 || hour <= 5:
		f.Points = 4
		f.Description = "Late night departure, no same-day alternatives"
	default:
		f.Points = 2
		f.Description = "Midday departure with rebooking slack"
	}

	return f
}

// aircraftFactor: fewer seats means a single oversold cabin bites harder.
func aircraftFactor(a entity.AircraftType) entity.Factor {
	f := entity.Factor{Name: "aircraft", MaxPoints: maxAircraftPoints}

	switch a.Category {
	case entity.CategoryRegional:
		f.Points = maxAircraftPoints
	case entity.CategoryNarrowbodySm:
		f.Points = 9
	case entity.CategoryNarrowbody:
		f.Points = 6
	case entity.CategoryNarrowbodyLg:
		f.Points = 4
	case entity.CategoryWidebody:
		f.Points = 1
	}

	f.Description = fmt.Sprintf("%s, %d seats", a.Name, a.Seats)

	return f
}

// weatherFactor weighs origin weather fully and destination weather at
// sixty percent; a storm at the far end strands aircraft but bumps fewer
// passengers at the gate.
func weatherFactor(origin, destination float64) entity.Factor {
	points := clamp(int(math.Round(origin+destination*0.6)), 0, maxWeatherPoints)

	desc := "No significant weather on the route"
	if points > 0 {
		desc = fmt.Sprintf("Weather severity %.0f at origin, %.0f at destination", origin, destination)
	}

	return entity.Factor{
		Name:        "weather",
		Points:      points,
		MaxPoints:   maxWeatherPoints,
		Description: desc,
	}
}

func disruptionFactor(origin float64) entity.Factor {
	points := clamp(int(math.Round(origin*0.8)), 0, maxDisruptionPoints)

	desc := "No active airport disruption"
	if points > 0 {
		desc = fmt.Sprintf("Origin airport disruption level %.0f of 10", origin)
	}

	return entity.Factor{
		Name:        "airportDisruption",
		Points:      points,
		MaxPoints:   maxDisruptionPoints,
		Description: desc,
	}
}

func holidayFactor(intensity float64) entity.Factor {
	points := clamp(int(math.Round(intensity)), 0, maxHolidayPoints)

	desc := "Not a holiday travel period"
	if points > 0 {
		desc = fmt.Sprintf("Holiday travel pressure %.0f of 10", intensity)
	}

	return entity.Factor{
		Name:        "holiday",
		Points:      points,
		MaxPoints:   maxHolidayPoints,
		Description: desc,
	}
}

func hubFactor(isHub bool, carrier, origin string) entity.Factor {
	f := entity.Factor{
		Name:        "fortressHub",
		MaxPoints:   maxHubPoints,
		Description: "Origin is not a fortress hub for this carrier",
	}

	if isHub {
		f.Points = maxHubPoints
		f.Description = fmt.Sprintf("%s dominates %s and oversells aggressively there", carrier, origin)
	}

	return f
}
