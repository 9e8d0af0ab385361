package fetch

import (
	"errors"
	"fmt"
)

var ErrNoUserAgent = errors.New("fetch: user agent is unset")

// Error reports a header request answered with a status other than 200 OK.
type Error struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Status)
}
