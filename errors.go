package licensing

import "github.com/rotisserie/eris"

// Failures produced by the client itself. They are carried in Result.Err and
// returned from Check and Health; match them with errors.Is.
var (
	ErrTransport  = eris.New("unable to call license server")
	ErrHTTPStatus = eris.New("license server request failed")
	ErrParse      = eris.New("cannot parse license server response")
)

// Server-reported outcomes turned into errors by Check.
var (
	ErrExpired       = eris.New("license is expired")
	ErrDisabled      = eris.New("license is disabled")
	ErrNotFound      = eris.New("license not found")
	ErrServer        = eris.New("license server reported an error")
	ErrUnknownStatus = eris.New("cannot verify license, unrecognized status")
)
