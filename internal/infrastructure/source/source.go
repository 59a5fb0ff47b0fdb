// Package source holds the four upstream flight data adapters. Every adapter
// exposes one fetch operation returning a Result; network and parse failures
// are captured into the Result, never raised past the adapter boundary. Each
// adapter owns its caching and its failure semantics.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"bumpwatch/internal/domain/entity"
	"bumpwatch/pkg/contextx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Result is the uniform adapter outcome. RateLimited is distinct from Error
// because the reconciliation engine treats the two differently: a rate limit
// is skip-and-continue and surfaces to the caller, a generic error is
// log-and-continue.
type Result struct {
	Records     []entity.RawFlight `json:"records"`
	RateLimited bool               `json:"rateLimited"`
	Error       string             `json:"error,omitempty"`
}

func (r Result) Failed() bool {
	return r.Error != "" || r.RateLimited
}

func failed(err error) Result {
	return Result{Error: err.Error()}
}

func rateLimited() Result {
	return Result{RateLimited: true}
}

// errUpstreamRateLimited marks a 429 so callers can turn it into the
// RateLimited flag instead of a generic error.
var errUpstreamRateLimited = errors.New("upstream rate limited")

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.code)
}

// getJSON issues a GET and decodes the body into dest. A 429 maps to
// errUpstreamRateLimited; any other non-200 status is a statusError.
func getJSON(ctx context.Context, client *http.Client, req *http.Request, dest any) error {
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return errUpstreamRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}
