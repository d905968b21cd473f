package document

import (
	"context"
	"strconv"
	"strings"

	"dwellscan/listingworker/helpers"
	"dwellscan/listingworker/internal/listing"
)

// Attachment is one extra document merged behind the generated base document
type Attachment struct {
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// FetchFunc downloads an attachment body
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// FlattenRecord maps a listing record plus the requester profile into the
// flat named string fields the generation service consumes. Absent record
// parts simply contribute no fields.
func FlattenRecord(record *listing.Record, requestedBy string, profile map[string]string) map[string]string {
	fields := map[string]string{
		"property_name":    record.PropertyName,
		"property_address": record.PropertyAddress,
	}
	if requestedBy != "" {
		fields["requested_by"] = requestedBy
	}

	for _, summary := range record.BedInfo {
		if summary.Label == "" {
			continue
		}
		fields["bed_info."+fieldKey(summary.Label)] = summary.Value
	}

	for i, model := range record.Availability {
		prefix := "model." + strconv.Itoa(i) + "."
		fields[prefix+"name"] = model.ModelName
		fields[prefix+"rent"] = model.RentLabel
		if model.Availability != "" {
			fields[prefix+"availability"] = model.Availability
		}
		if len(model.Details) > 0 {
			fields[prefix+"details"] = strings.Join(model.Details, ", ")
		}
		fields[prefix+"units"] = strconv.Itoa(len(model.Units))
	}

	if contact := record.ContactInfo; contact != nil {
		if contact.Phone != nil {
			fields["contact.phone"] = contact.Phone.Formatted
			fields["contact.phone_digits"] = contact.Phone.Digits
		}
		if contact.Website != nil {
			fields["contact.website"] = contact.Website.URL
		}
		if contact.TodaysHours != "" {
			fields["contact.todays_hours"] = contact.TodaysHours
		}
		for _, hours := range contact.OfficeHours {
			fields["contact.hours."+fieldKey(hours.Days)] = hours.Hours
		}
	}

	for key, value := range profile {
		fields["profile."+fieldKey(key)] = value
	}

	return fields
}

// fieldKey turns a display label into a stable field name
func fieldKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(helpers.Clean(label)), " ", "_")
}
