package listing

import "time"

// Record represents the structured content extracted from one listing page.
// A record is assembled once per scrape and never mutated afterwards; cache
// hits return the stored bytes verbatim.
type Record struct {
	PropertyName    string              `json:"property_name"`
	PropertyAddress string              `json:"property_address"`
	BedInfo         []BedSummary        `json:"bed_info,omitempty"`
	Availability    []ModelCard         `json:"availability"`
	ContactInfo     *ContactInfo        `json:"contact_info,omitempty"`
	Amenities       *AmenitiesResult    `json:"amenities,omitempty"`
	FeesPolicies    *FeesPoliciesResult `json:"fees_policies,omitempty"`
}

// BedSummary is one labeled entry of the bed/rent summary strip, in page order
type BedSummary struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ModelCard represents one floor-plan model on the availability grid
type ModelCard struct {
	ModelName       string    `json:"model_name"`
	RentLabel       string    `json:"rent_label"`
	Details         []string  `json:"details,omitempty"`
	Availability    string    `json:"availability"`
	Image           string    `json:"image,omitempty"`
	Units           []UnitRow `json:"units,omitempty"`
	PropertyAddress string    `json:"property_address"`
}

// UnitRow represents one concrete unit under a model card. Absent cells are
// empty strings; the row itself is always kept.
type UnitRow struct {
	Unit         string `json:"unit"`
	Price        string `json:"price"`
	Sqft         string `json:"sqft"`
	Availability string `json:"availability"`
}

// ContactInfo represents the contact section of a listing page
type ContactInfo struct {
	Phone       *Phone        `json:"phone,omitempty"`
	Website     *Website      `json:"website,omitempty"`
	Language    string        `json:"language,omitempty"`
	TodaysHours string        `json:"todays_hours,omitempty"`
	OfficeHours []OfficeHours `json:"office_hours"`
	Logo        *Logo         `json:"logo,omitempty"`
}

// Phone keeps both the machine-readable digits and the displayed text
type Phone struct {
	Formatted string `json:"formatted,omitempty"`
	Digits    string `json:"digits,omitempty"`
}

// Website represents the property website link
type Website struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// OfficeHours is one row of the office hours table
type OfficeHours struct {
	Days  string `json:"days"`
	Hours string `json:"hours"`
}

// Logo represents the property management logo
type Logo struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// AmenitiesResult holds the two recognized amenity sections. A section the
// page does not carry is omitted entirely.
type AmenitiesResult struct {
	Community *AmenitySection `json:"community,omitempty"`
	Apartment *AmenitySection `json:"apartment,omitempty"`
}

// AmenitySection is one titled amenity section. Icons and group items are
// deduplicated across the whole section in first-seen order.
type AmenitySection struct {
	Title  string         `json:"title"`
	Icons  []string       `json:"icons,omitempty"`
	Groups []AmenityGroup `json:"groups,omitempty"`
}

// AmenityGroup is one headed bullet list inside an amenity section
type AmenityGroup struct {
	Header string   `json:"header,omitempty"`
	Items  []string `json:"items,omitempty"`
}

// FeesPoliciesResult holds the fee tabs plus the bulleted detail cards that
// live outside the tab structure
type FeesPoliciesResult struct {
	Tabs    []TabResult   `json:"tabs,omitempty"`
	Details []DetailsCard `json:"details,omitempty"`
}

// TabResult is the parsed content of one fee tab
type TabResult struct {
	Tab   string `json:"tab"`
	Cards []Card `json:"cards,omitempty"`
}

// Card is one fee card. A card is kept only when it has a header, at least
// one row, or non-empty comments.
type Card struct {
	Header   string `json:"header,omitempty"`
	Rows     []Row  `json:"rows,omitempty"`
	Comments string `json:"comments,omitempty"`
}

// Row is a name/value pair on a fee card, with an optional tooltip
type Row struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Tooltip string `json:"tooltip,omitempty"`
}

// DetailsCard is one bulleted details card outside the tabs
type DetailsCard struct {
	Header string   `json:"header,omitempty"`
	Items  []string `json:"items,omitempty"`
}

// Envelope is the unit stored in the cache, keyed by the source address
type Envelope struct {
	Address     string    `json:"address"`
	RequestedBy string    `json:"requested_by,omitempty"`
	ScrapedAt   time.Time `json:"scraped_at"`
	Record      *Record   `json:"record"`
}
