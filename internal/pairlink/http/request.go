package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const maxBodyBytes = 64 << 10

// Longest ttl a caller may ask for, in seconds. Keeps the conversion to
// time.Duration well away from overflow.
const maxTTLSeconds = math.MaxInt32

var (
	errInvalidBody  = errors.New("request body must be a JSON object")
	errInvalidField = errors.New("invalid field")
)

// body is a decoded JSON object. Clients send the same field under several
// names (camelCase, snake_case, legacy names), so every accessor takes a list
// of keys and uses the first one present.
type body map[string]json.RawMessage

// readBody decodes the request body as a JSON object. An empty body decodes
// to an empty object so that missing-field errors win over format errors.
func readBody(w http.ResponseWriter, r *http.Request) (body, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var b body
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return body{}, nil
		}
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if b == nil {
		return body{}, nil
	}
	return b, nil
}

func (b body) lookup(keys ...string) (string, json.RawMessage) {
	for _, k := range keys {
		raw, ok := b[k]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}
		return k, raw
	}
	return "", nil
}

// text returns the first present key as a string. Number literals are kept
// verbatim: 17-digit ids do not survive a round trip through float64.
func (b body) text(keys ...string) (string, error) {
	key, raw := b.lookup(keys...)
	if raw == nil {
		return "", nil
	}

	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: %s: %v", errInvalidField, key, err)
		}
		return s, nil
	case c == '-' || (c >= '0' && c <= '9'):
		return string(raw), nil
	default:
		return "", fmt.Errorf("%w: %s must be a string", errInvalidField, key)
	}
}

// seconds returns the first present key as a whole number of seconds and
// reports whether the key was present at all. A numeric string is accepted
// too. Fractions round up, so any positive value stays positive.
func (b body) seconds(keys ...string) (time.Duration, bool, error) {
	key, raw := b.lookup(keys...)
	if raw == nil {
		return 0, false, nil
	}

	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, true, fmt.Errorf("%w: %s: %v", errInvalidField, key, err)
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true, fmt.Errorf("%w: %s must be a number", errInvalidField, key)
	}
	v = math.Ceil(v)
	if v > maxTTLSeconds {
		return 0, true, fmt.Errorf("%w: %s out of range", errInvalidField, key)
	}
	if v < -maxTTLSeconds {
		v = -maxTTLSeconds
	}

	return time.Duration(int64(v)) * time.Second, true, nil
}

// object returns the first present key as a nested object.
func (b body) object(keys ...string) (body, error) {
	key, raw := b.lookup(keys...)
	if raw == nil {
		return body{}, nil
	}
	if raw[0] != '{' {
		return nil, fmt.Errorf("%w: %s must be an object", errInvalidField, key)
	}

	var nested body
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errInvalidField, key, err)
	}
	return nested, nil
}

// raw returns the first present key untouched, or nil.
func (b body) raw(keys ...string) json.RawMessage {
	_, raw := b.lookup(keys...)
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
