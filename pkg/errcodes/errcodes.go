package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	InvalidAirportCode failure.ErrorCode = "InvalidAirportCode"
	InvalidFlightDate  failure.ErrorCode = "InvalidFlightDate"
	InvalidRoute       failure.ErrorCode = "InvalidRoute"
)
