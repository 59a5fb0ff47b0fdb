package value

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/* Flight identifiers, as seen across the upstream feeds

1. Most airlines broadcast the ICAO flight number as the callsign: DAL2047
2. Private aircraft broadcast their registration: N839AL
3. Some feeds hand back a bare flight number with the carrier stripped: 2047
4. Marketing flight numbers use the two-letter IATA code: DL2047

The reconciliation identity key is the IATA flight number where we can build
one, falling back to the raw callsign.
*/

type CallsignType int

const (
	JunkCallsign CallsignType = iota
	Registration
	IcaoFlightNumber
	BareFlightNumber
)

var (
	registrationRe = regexp.MustCompile(`^(N[1-9][0-9A-HJ-NP-Z]{0,4})$`)
	icaoFlightRe   = regexp.MustCompile(`^([A-Z]{3})([0-9]{1,4})([A-Z]?)$`)
	bareFlightRe   = regexp.MustCompile(`^([0-9]{2,4})$`)
)

type Callsign struct {
	Raw string

	Type       CallsignType
	IcaoPrefix string
	ATCSuffix  string
	Number     int64
}

func ParseCallsign(raw string) Callsign {
	cs := Callsign{Raw: strings.TrimSpace(strings.ToUpper(raw))}

	if registrationRe.MatchString(cs.Raw) {
		cs.Type = Registration
		return cs
	}

	if m := icaoFlightRe.FindStringSubmatch(cs.Raw); m != nil {
		cs.Number, _ = strconv.ParseInt(m[2], 10, 64)
		cs.IcaoPrefix = m[1]
		cs.ATCSuffix = m[3]
		cs.Type = IcaoFlightNumber
		return cs
	}

	if m := bareFlightRe.FindStringSubmatch(cs.Raw); m != nil {
		cs.Number, _ = strconv.ParseInt(m[1], 10, 64)
		cs.Type = BareFlightNumber
		return cs
	}

	cs.Type = JunkCallsign
	return cs
}

// String renders the normalized form: leading zeroes and ATC suffixes are
// dropped for ICAO flight numbers, everything else passes through raw.
func (c Callsign) String() string {
	if c.Type == IcaoFlightNumber {
		return fmt.Sprintf("%s%d", c.IcaoPrefix, c.Number)
	}

	return c.Raw
}

func (c Callsign) Equal(other Callsign) bool {
	return c.String() == other.String()
}

// MaybeAddPrefix upgrades a bare flight number once the carrier is known
// from another field of the same record.
func (c *Callsign) MaybeAddPrefix(icaoPrefix string) {
	if c.Type == BareFlightNumber && icaoPrefix != "" {
		c.IcaoPrefix = icaoPrefix
		c.Type = IcaoFlightNumber
	}
}

// FlightNumber is the marketing designator: two-letter IATA carrier code
// plus the numeric suffix, e.g. DL2047.
type FlightNumber struct {
	IATA   string
	Number int64
}

var iataFlightRe = regexp.MustCompile(`^([A-Z0-9]{2})\s?([0-9]{1,4})$`)

func ParseFlightNumber(raw string) (FlightNumber, error) {
	m := iataFlightRe.FindStringSubmatch(strings.TrimSpace(strings.ToUpper(raw)))
	if m == nil {
		return FlightNumber{}, fmt.Errorf("not an IATA flight number: %q", raw)
	}

	number, _ := strconv.ParseInt(m[2], 10, 64)

	return FlightNumber{IATA: m[1], Number: number}, nil
}

func (f FlightNumber) String() string {
	if f.IATA == "" || f.Number == 0 {
		return ""
	}

	return fmt.Sprintf("%s%d", f.IATA, f.Number)
}

func (f FlightNumber) IsZero() bool {
	return f.String() == ""
}
