package model

import (
	"strconv"
	"time"
)

// Placeholder substituted for any record field that is absent
const Placeholder = "not available"

// JoinRecord is the flattened, write-once row appended to the guestbook
// spreadsheet. Fields are never empty: anything missing from the identity is
// replaced with Placeholder.
type JoinRecord struct {
	Timestamp   time.Time
	DisplayName string
	Email       string
	Gender      string
	AgeRangeMin string
	ClientMAC   string
	ClientIP    string
	APMAC       string
	SSID        string
}

// NewJoinRecord flattens an identity and join request into a record,
// substituting placeholders for missing identity fields. The join request
// must be complete; callers enforce that before constructing a record.
func NewJoinRecord(ts time.Time, identity *Identity, join *JoinRequest) JoinRecord {
	rec := JoinRecord{
		Timestamp:   ts,
		DisplayName: Placeholder,
		Email:       Placeholder,
		Gender:      Placeholder,
		AgeRangeMin: Placeholder,
		ClientMAC:   orPlaceholder(join.ClientMAC),
		ClientIP:    orPlaceholder(join.ClientIP),
		APMAC:       orPlaceholder(join.APMAC),
		SSID:        orPlaceholder(join.SSID),
	}
	if identity == nil {
		return rec
	}
	if identity.DisplayName != "" {
		rec.DisplayName = identity.DisplayName
	}
	if identity.Email != "" {
		rec.Email = identity.Email
	}
	if identity.Gender != "" {
		rec.Gender = identity.Gender
	}
	if identity.AgeRangeMin > 0 {
		rec.AgeRangeMin = strconv.Itoa(identity.AgeRangeMin)
	}
	return rec
}

// Row returns the record as the nine spreadsheet cell values, in column order
func (r JoinRecord) Row() []string {
	return []string{
		r.Timestamp.Format(time.DateTime),
		r.DisplayName,
		r.Email,
		r.Gender,
		r.AgeRangeMin,
		r.ClientMAC,
		r.ClientIP,
		r.APMAC,
		r.SSID,
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
