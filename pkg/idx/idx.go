// Package idx generates sortable ULID identifiers. They tag request log lines
// and claim records so one pairing attempt can be followed through the logs.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

// Zero is the empty ID.
const Zero ID = ""

// ErrInvalid reports a string that is not a ULID.
var ErrInvalid = errors.New("idx: invalid ulid")

// source serializes access to the monotonic entropy reader, which is not safe
// for concurrent use on its own.
type source struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

var (
	once   sync.Once
	defSrc *source
)

func defaultSource() *source {
	once.Do(func() {
		defSrc = &source{entropy: ulid.Monotonic(rand.Reader, 0)}
	})
	return defSrc
}

func (s *source) at(t time.Time) ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(t.UTC()), s.entropy).String())
}

// New returns an ID stamped with the current time.
func New() ID {
	return defaultSource().at(time.Now())
}

// NewAt returns an ID stamped with t. Handy when the caller runs on an
// injected clock.
func NewAt(t time.Time) ID {
	return defaultSource().at(t)
}

// Parse validates s as a canonical ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return id == Zero }

// Time returns the millisecond timestamp embedded in id, or the zero time
// when id does not parse.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
