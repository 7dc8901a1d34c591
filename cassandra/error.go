package cassandra

import (
	"errors"

	"github.com/gocql/gocql"
)

// IsWriteTimeout checks if the given error is a driver error that expresses a
// timeout while waiting for the configured consistency level to be satisfied.
// Such a write may still have reached a subset of replicas.
func IsWriteTimeout(err error) bool {
	var wt *gocql.RequestErrWriteTimeout
	if errors.As(err, &wt) {
		return true
	}
	return errors.Is(err, gocql.ErrTimeoutNoResponse)
}
