// File: utils/id.go
package utils

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which entity an ID refers to. Carrying the kind on the
// value lets callers validate a reference once at the boundary instead of
// re-parsing the raw string on every use; there are no foreign-key
// constraints in the storage layer, so this check is the referential
// integrity story.
type Kind int

const (
	KindUnknown Kind = iota
	KindTemplate
	KindBookingLink
	KindBooking
)

var kindPrefixes = map[Kind]string{
	KindTemplate:    "TPL",
	KindBookingLink: "LNK",
	KindBooking:     "BKG",
}

func (k Kind) Prefix() string {
	return kindPrefixes[k]
}

func (k Kind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindBookingLink:
		return "bookingLink"
	case KindBooking:
		return "booking"
	}
	return "unknown"
}

// ID is a validated entity identifier: PREFIX_TIMESTAMP_RANDOM, where the
// prefix is 2-5 uppercase alphanumerics, the timestamp is 13-digit epoch
// millis, and the random tail is 4-12 alphanumerics.
type ID struct {
	kind Kind
	raw  string
}

func (id ID) Kind() Kind     { return id.kind }
func (id ID) String() string { return id.raw }
func (id ID) IsZero() bool   { return id.raw == "" }

const idRandomChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewID mints a fresh identifier for the given entity kind with an
// 8-character random tail.
func NewID(kind Kind) ID {
	prefix, ok := kindPrefixes[kind]
	if !ok {
		panic(fmt.Sprintf("utils: NewID called with invalid kind %d", kind))
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("utils: crypto/rand failed: %v", err))
	}
	for i, b := range buf {
		buf[i] = idRandomChars[int(b)%len(idRandomChars)]
	}

	raw := fmt.Sprintf("%s_%013d_%s", prefix, time.Now().UnixMilli(), buf)
	return ID{kind: kind, raw: raw}
}

// ParseID validates the three-part shape and returns an ID tagged with the
// kind its prefix encodes. Unrecognized but well-formed prefixes are
// rejected: this system only ever hands out template, link and booking ids.
func ParseID(s string) (ID, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 3 {
		return ID{}, fmt.Errorf("malformed id %q: expected 3 parts, got %d", s, len(parts))
	}

	prefix, ts, random := parts[0], parts[1], parts[2]

	if len(prefix) < 2 || len(prefix) > 5 || !isUpperAlnum(prefix) {
		return ID{}, fmt.Errorf("malformed id %q: bad prefix", s)
	}
	if len(ts) != 13 {
		return ID{}, fmt.Errorf("malformed id %q: timestamp must be 13 digits", s)
	}
	if _, err := strconv.ParseInt(ts, 10, 64); err != nil {
		return ID{}, fmt.Errorf("malformed id %q: non-numeric timestamp", s)
	}
	if len(random) < 4 || len(random) > 12 || !isAlnum(random) {
		return ID{}, fmt.Errorf("malformed id %q: bad random part", s)
	}

	for kind, p := range kindPrefixes {
		if p == prefix {
			return ID{kind: kind, raw: s}, nil
		}
	}
	return ID{}, fmt.Errorf("id %q: unknown entity prefix %q", s, prefix)
}

// ParseKind parses s and additionally pins the expected entity kind; this is
// the check every cross-entity reference goes through before being trusted.
func ParseKind(s string, kind Kind) (ID, error) {
	id, err := ParseID(s)
	if err != nil {
		return ID{}, err
	}
	if id.kind != kind {
		return ID{}, fmt.Errorf("id %q is a %s id, expected %s", s, id.kind, kind)
	}
	return id, nil
}

func IsValidID(s string) bool {
	_, err := ParseID(s)
	return err == nil
}

func IsTemplateID(s string) bool    { return isKind(s, KindTemplate) }
func IsBookingLinkID(s string) bool { return isKind(s, KindBookingLink) }
func IsBookingID(s string) bool     { return isKind(s, KindBooking) }

func isKind(s string, kind Kind) bool {
	_, err := ParseKind(s, kind)
	return err == nil
}

func isUpperAlnum(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
