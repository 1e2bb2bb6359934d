package licensing

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/rotisserie/eris"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Status is the state of a license key as reported by the license server.
type Status string

const (
	StatusValid    Status = "valid"
	StatusExpired  Status = "expired"
	StatusDisabled Status = "disabled"
	StatusNotFound Status = "not_found"
	StatusError    Status = "error"
)

// Known reports whether s is one of the statuses this client understands.
// Servers may add statuses later; those are kept verbatim but are not Known.
func (s Status) Known() bool {
	switch s {
	case StatusValid, StatusExpired, StatusDisabled, StatusNotFound, StatusError:
		return true
	}
	return false
}

// Result is the outcome of one verification call. Optional fields are nil
// when the server omitted them.
type Result struct {
	Status    Status  `json:"status"`
	PlanType  *string `json:"plan_type,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	UserEmail *string `json:"user_email,omitempty"`
	Message   *string `json:"message,omitempty"`

	// Err is the classified local failure behind a StatusError result
	// (transport, http status or parse). It is nil for server-reported outcomes.
	Err error `json:"-"`
}

// Valid reports whether the server accepted the key.
func (r Result) Valid() bool {
	return r.Status == StatusValid
}

func errorResult(err error) Result {
	msg := err.Error()
	return Result{
		Status:  StatusError,
		Message: &msg,
		Err:     err,
	}
}

func parseResult(body []byte) (Result, error) {
	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		return Result{}, eris.Wrap(ErrParse, err.Error())
	}
	if res.Status == "" {
		return Result{}, eris.Wrap(ErrParse, "response has no status field")
	}
	return res, nil
}
