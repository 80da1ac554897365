package unsolvedsrvc

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/programme-lv/unsolved/cfapi"
	"github.com/programme-lv/unsolved/metrics"
	"github.com/programme-lv/unsolved/srvcerror"
)

const ErrCodeHandleRequired = "handle_required"

func newErrHandleRequired() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeHandleRequired,
		"handle must not be empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const (
	ErrCodeFetchFailedTransport = "fetch_failed_transport"
	ErrCodeFetchFailedService   = "fetch_failed_service"
	ErrCodeFetchFailedMalformed = "fetch_failed_malformed"
	ErrCodeHandleNotFound       = "handle_not_found"
)

// newErrFetchFailed classifies a fetch failure. The message shown to the
// user always carries the underlying cause.
func newErrFetchFailed(err error) *srvcerror.Error {
	var fetchErr *cfapi.FetchError
	if !errors.As(err, &fetchErr) {
		return srvcerror.New(
			ErrCodeFetchFailedTransport,
			fmt.Sprintf("fetch failed: %v", err),
		).SetDebug(err).SetHttpStatusCode(http.StatusBadGateway)
	}

	code := ErrCodeFetchFailedTransport
	status := http.StatusBadGateway
	switch {
	case fetchErr.HandleNotFound():
		code, status = ErrCodeHandleNotFound, http.StatusNotFound
	case fetchErr.Kind == cfapi.KindService:
		code = ErrCodeFetchFailedService
	case fetchErr.Kind == cfapi.KindMalformed:
		code = ErrCodeFetchFailedMalformed
	}

	return srvcerror.New(code, fetchErr.Error()).
		SetDebug(err).
		SetHttpStatusCode(status)
}

func fetchResult(err error) string {
	var fetchErr *cfapi.FetchError
	if !errors.As(err, &fetchErr) {
		return metrics.ResultTransport
	}
	switch fetchErr.Kind {
	case cfapi.KindService:
		return metrics.ResultService
	case cfapi.KindMalformed:
		return metrics.ResultMalformed
	default:
		return metrics.ResultTransport
	}
}
