package api

import (
	"fmt"
	"net/http"

	"github.com/ngcs-mobile/courtclient/internal/common"
)

// StatusError describes a non-2xx response (or a failure to obtain one,
// Code 0). Unwrap maps the status onto the shared sentinels so callers can
// classify with errors.Is.
type StatusError struct {
	Code          int
	Status        string
	AuthChallenge string
	Endpoint      string
}

func (e *StatusError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s: request failed before a response was received", e.Endpoint)
	}
	return fmt.Sprintf("%s: server answered %d %s", e.Endpoint, e.Code, e.Status)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == 0:
		return common.ErrNoNetwork
	case e.Code == common.StatusAuthTimeout:
		return common.ErrAuthExpired
	case e.Code >= http.StatusInternalServerError:
		return common.ErrServerFault
	}
	return nil
}
