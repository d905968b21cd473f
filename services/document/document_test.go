package document

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"dwellscan/listingworker/internal/listing"
)

func flattenFixture() *listing.Record {
	return &listing.Record{
		PropertyName:    "Arbor Lofts",
		PropertyAddress: "4524 Oak Creek Dr, Austin, TX 78727",
		BedInfo: []listing.BedSummary{
			{Label: "Monthly Rent", Value: "$1,500 - $2,240"},
			{Label: "Bedrooms", Value: "1 - 2 bd"},
		},
		Availability: []listing.ModelCard{
			{
				ModelName:    "A1",
				RentLabel:    "$1,500",
				Availability: "Available Now",
				Details:      []string{"1 bed", "1 bath"},
				Units:        []listing.UnitRow{{Unit: "104"}, {Unit: "212"}},
			},
			{ModelName: "B2", RentLabel: "$2,100"},
		},
		ContactInfo: &listing.ContactInfo{
			Phone:       &listing.Phone{Formatted: "(512) 555-0188", Digits: "5125550188"},
			Website:     &listing.Website{URL: "https://arborlofts.example.com"},
			TodaysHours: "9:00 AM - 6:00 PM",
			OfficeHours: []listing.OfficeHours{{Days: "Mon - Fri", Hours: "9:00 AM - 6:00 PM"}},
		},
	}
}

func TestFlattenRecord(t *testing.T) {
	fields := FlattenRecord(flattenFixture(), "user-1", map[string]string{"Full Name": "Jordan Diaz"})

	assert.Equal(t, "Arbor Lofts", fields["property_name"])
	assert.Equal(t, "4524 Oak Creek Dr, Austin, TX 78727", fields["property_address"])
	assert.Equal(t, "user-1", fields["requested_by"])

	assert.Equal(t, "$1,500 - $2,240", fields["bed_info.monthly_rent"])
	assert.Equal(t, "1 - 2 bd", fields["bed_info.bedrooms"])

	assert.Equal(t, "A1", fields["model.0.name"])
	assert.Equal(t, "1 bed, 1 bath", fields["model.0.details"])
	assert.Equal(t, "2", fields["model.0.units"])
	assert.Equal(t, "B2", fields["model.1.name"])

	assert.Equal(t, "(512) 555-0188", fields["contact.phone"])
	assert.Equal(t, "5125550188", fields["contact.phone_digits"])
	assert.Equal(t, "https://arborlofts.example.com", fields["contact.website"])
	assert.Equal(t, "9:00 AM - 6:00 PM", fields["contact.hours.mon_-_fri"])

	assert.Equal(t, "Jordan Diaz", fields["profile.full_name"])
}

// Absent sections contribute no fields at all
func TestFlattenRecordSparse(t *testing.T) {
	fields := FlattenRecord(&listing.Record{PropertyName: "Arbor Lofts"}, "", nil)

	assert.Equal(t, "Arbor Lofts", fields["property_name"])
	assert.NotContains(t, fields, "requested_by")
	assert.NotContains(t, fields, "contact.phone")
	assert.NotContains(t, fields, "model.0.name")
}

func TestGeneratorGenerate(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer server.Close()

	gen := NewGenerator(server.URL + "/")
	data, err := gen.Generate(context.Background(), map[string]string{"property_name": "Arbor Lofts"})
	assert.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", string(data))
	assert.Equal(t, "application/json", gotContentType)
	assert.Contains(t, string(gotBody), `"property_name":"Arbor Lofts"`)
}

func TestGeneratorGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	gen := NewGenerator(server.URL)
	_, err := gen.Generate(context.Background(), nil)
	assert.Error(t, err)
}

func TestMergeRejectsNonPDFBase(t *testing.T) {
	m := NewMerger(func(ctx context.Context, url string) ([]byte, error) {
		t.Fatal("fetch must not run when the base is invalid")
		return nil, nil
	})

	_, err := m.Merge(context.Background(), []byte("<html>not a pdf</html>"), []Attachment{{URL: "https://docs.example.com/a.pdf"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base document")
}
