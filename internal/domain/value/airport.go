package value

import (
	"fmt"
	"regexp"
	"strings"
)

// AirportCode is an IATA airport code (three letters). The OpenSky endpoints
// want ICAO codes; for the contiguous US those are the IATA code with a "K"
// prefix, which covers every airport this system scores.
type AirportCode string

var airportCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

func ParseAirportCode(raw string) (AirportCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !airportCodeRe.MatchString(code) {
		return "", fmt.Errorf("not an IATA airport code: %q", raw)
	}

	return AirportCode(code), nil
}

func (a AirportCode) String() string {
	return string(a)
}

func (a AirportCode) Icao() string {
	return "K" + string(a)
}
