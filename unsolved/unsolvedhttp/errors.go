package unsolvedhttp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/programme-lv/unsolved/srvcerror"
)

const ErrCodeTooManyRequests = "too_many_requests"

func newErrTooManyRequests(handle string, cooldown time.Duration) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTooManyRequests,
		fmt.Sprintf("handle %q was requested less than %s ago, try again later", handle, cooldown),
	).SetHttpStatusCode(http.StatusTooManyRequests)
}

const ErrCodeNoTags = "no_tags"

func newErrNoTags(handle string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNoTags,
		fmt.Sprintf("unsolved problems of %q carry no tags", handle),
	).SetHttpStatusCode(http.StatusNotFound)
}
