package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bumpwatch/internal/config"
	"bumpwatch/internal/domain/entity"
	"bumpwatch/internal/domain/value"
	"bumpwatch/internal/infrastructure/cache"
	"bumpwatch/pkg/logx"
)

const scheduleSourceName = "schedule"

// maxFutureWindow is how far out the schedule upstream accepts queries.
// Beyond it the adapter silently substitutes today: most routes fly daily,
// so today's board is the best available proxy.
const maxFutureWindow = 3 * 24 * time.Hour

// ScheduleClient is the scheduled-departures adapter: an airport+day FIDS
// query, paginated, authoritative for both endpoints of every flight it
// returns.
type ScheduleClient struct {
	cfg    config.ScheduleSource
	store  cache.Store
	client *http.Client
}

func NewScheduleClient(cfg config.ScheduleSource, store cache.Store, client *http.Client) *ScheduleClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &ScheduleClient{cfg: cfg, store: store, client: client}
}

// FetchDepartures returns every scheduled departure from origin on the
// given date.
func (c *ScheduleClient) FetchDepartures(ctx context.Context, origin string, date time.Time) Result {
	day := c.effectiveDate(date)
	key := cache.Key(scheduleSourceName, origin, day)

	var cached []entity.RawFlight
	if c.store.Get(ctx, key, &cached) {
		cacheHitsTotal.WithLabelValues(scheduleSourceName).Inc()
		return Result{Records: cached}
	}

	records := make([]entity.RawFlight, 0, 64)

	for page := 1; page <= c.cfg.MaxPages; page++ {
		resp, err := c.fetchPage(ctx, origin, day, page)
		if err != nil {
			if errors.Is(err, errUpstreamRateLimited) {
				res := rateLimited()
				observeFetch(scheduleSourceName, res)
				return res
			}

			logger(ctx).Warn("schedule fetch failed",
				logx.Error(err),
				logx.FieldOrigin, origin,
				"page", page,
			)

			res := failed(err)
			observeFetch(scheduleSourceName, res)
			return res
		}

		for _, dep := range resp.Departures {
			if rec, ok := c.mapDeparture(origin, dep); ok {
				records = append(records, rec)
			}
		}

		if page >= resp.TotalPages {
			break
		}
	}

	c.store.Set(ctx, key, records, c.cfg.CacheTTL)

	res := Result{Records: records}
	observeFetch(scheduleSourceName, res)
	return res
}

// effectiveDate clamps dates the upstream would reject to today.
func (c *ScheduleClient) effectiveDate(date time.Time) string {
	if time.Until(date) > maxFutureWindow {
		return time.Now().UTC().Format("2006-01-02")
	}

	return date.UTC().Format("2006-01-02")
}

type fidsResponse struct {
	Departures []fidsDeparture `json:"departures"`
	TotalPages int             `json:"totalPages"`
}

type fidsDeparture struct {
	Number          string `json:"number"`
	CallSign        string `json:"callSign"`
	CodeshareStatus string `json:"codeshareStatus"`
	IsCargo         bool   `json:"isCargo"`
	Airline         struct {
		Name string `json:"name"`
		IATA string `json:"iata"`
		ICAO string `json:"icao"`
	} `json:"airline"`
	Movement struct {
		Airport struct {
			IATA string `json:"iata"`
		} `json:"airport"`
		ScheduledTime struct {
			UTC string `json:"utc"`
		} `json:"scheduledTime"`
	} `json:"movement"`
	Aircraft struct {
		Model string `json:"model"`
		Reg   string `json:"reg"`
	} `json:"aircraft"`
}

func (c *ScheduleClient) fetchPage(ctx context.Context, origin, day string, page int) (fidsResponse, error) {
	url := fmt.Sprintf("%s/airports/iata/%s/departures?date=%s&page=%s",
		c.cfg.BaseURL, origin, day, strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fidsResponse{}, fmt.Errorf("http.NewRequest: %w", err)
	}

	if c.cfg.APIKey != "" {
		req.Header.Set("X-Rapidapi-Key", c.cfg.APIKey)
	}

	var resp fidsResponse
	if err := getJSON(ctx, c.client, req, &resp); err != nil {
		return fidsResponse{}, err
	}

	return resp, nil
}

// mapDeparture normalizes one upstream record. Codeshare listings and cargo
// movements are dropped, as is anything whose schema has drifted too far to
// carry an identity.
func (c *ScheduleClient) mapDeparture(origin string, dep fidsDeparture) (entity.RawFlight, bool) {
	if dep.IsCargo || dep.CodeshareStatus == "IsCodeshared" {
		return entity.RawFlight{}, false
	}

	flightNumber, err := value.ParseFlightNumber(dep.Number)
	if err != nil && dep.CallSign == "" {
		return entity.RawFlight{}, false
	}

	departure, err := time.Parse(time.RFC3339, dep.Movement.ScheduledTime.UTC)
	if err != nil {
		return entity.RawFlight{}, false
	}

	return entity.RawFlight{
		Callsign:     dep.CallSign,
		FlightNumber: flightNumber,
		CarrierIATA:  dep.Airline.IATA,
		CarrierICAO:  dep.Airline.ICAO,
		Origin:       origin,
		Destination:  dep.Movement.Airport.IATA,
		Departure:    departure,
		AircraftCode: dep.Aircraft.Model,
		TailNumber:   dep.Aircraft.Reg,
	}, true
}
