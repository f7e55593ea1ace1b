package client

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const tempIDPrefix = "temp_"

var lastTempID atomic.Int64

// nextTempID returns a placeholder id for a record awaiting server
// confirmation. Ids are monotonic within the process even when two
// creations land in the same millisecond.
func nextTempID(now time.Time) string {
	ms := now.UnixMilli()
	for {
		prev := lastTempID.Load()
		next := ms
		if next <= prev {
			next = prev + 1
		}
		if lastTempID.CompareAndSwap(prev, next) {
			return tempIDPrefix + strconv.FormatInt(next, 10)
		}
	}
}

// IsTempID reports whether the id is a local placeholder rather than a
// durable server-assigned id.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix)
}
