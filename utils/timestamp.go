package utils

import (
	"time"
)

// Review timestamps show up in several historical shapes: the document
// store's native {seconds, nanos} value, a plain time value, an ISO-like
// string, or a bare {seconds} payload from older exports. Each accepted
// shape is an explicit variant; anything else is Unrecognized and renders as
// "Invalid date" instead of failing.

type TimeKind int

const (
	TimeStore TimeKind = iota
	TimeNative
	TimeISO
	TimeSeconds
	TimeUnrecognized
)

// StoreTimestamp mirrors the document store's native timestamp shape.
type StoreTimestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

// SecondsStamp is the bare {seconds} payload.
type SecondsStamp struct {
	Seconds int64 `json:"seconds"`
}

// ReviewTime is a classified timestamp: a variant tag plus the converted
// instant when the tag is anything but TimeUnrecognized.
type ReviewTime struct {
	Kind TimeKind
	at   time.Time
}

const invalidDate = "Invalid date"

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ClassifyTimestamp converts one of the accepted shapes into a ReviewTime.
func ClassifyTimestamp(value interface{}) ReviewTime {
	switch v := value.(type) {
	case StoreTimestamp:
		return ReviewTime{Kind: TimeStore, at: time.Unix(v.Seconds, int64(v.Nanos))}
	case time.Time:
		return ReviewTime{Kind: TimeNative, at: v}
	case string:
		for _, layout := range isoLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return ReviewTime{Kind: TimeISO, at: parsed}
			}
		}
		return ReviewTime{Kind: TimeUnrecognized}
	case SecondsStamp:
		return ReviewTime{Kind: TimeSeconds, at: time.Unix(v.Seconds, 0)}
	default:
		return ReviewTime{Kind: TimeUnrecognized}
	}
}

// Format renders the instant as numeric date plus 24-hour time, in UTC so the
// output does not depend on the server's zone.
func (rt ReviewTime) Format() string {
	if rt.Kind == TimeUnrecognized {
		return invalidDate
	}
	return rt.at.UTC().Format("1/2/2006, 15:04")
}

// Time returns the converted instant; the zero time for Unrecognized values.
func (rt ReviewTime) Time() time.Time {
	if rt.Kind == TimeUnrecognized {
		return time.Time{}
	}
	return rt.at
}

// FormatTimestamp classifies and formats in one step.
func FormatTimestamp(value interface{}) string {
	return ClassifyTimestamp(value).Format()
}
