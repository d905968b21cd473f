package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dwellscan/listingworker/internal/browser"
	"dwellscan/listingworker/internal/listing"
)

const amenitiesHTML = `
<html><body>
<section class="amenitiesSection">
	<h2 class="amenitiesSectionTitle">COMMUNITY   AMENITIES</h2>
	<ul>
		<li class="amenityCard"><span class="amenityLabel">Pool</span></li>
		<li class="amenityCard"><span class="amenityLabel">Fitness Center</span></li>
		<li class="amenityCard"><span class="amenityLabel">Pool</span></li>
	</ul>
	<div class="amenityGroup">
		<h3 class="amenityGroupHeader">Recreation</h3>
		<ul><li>Pool</li><li>Spa</li><li>Grill</li></ul>
	</div>
	<div class="amenityGroup">
		<h3 class="amenityGroupHeader">Services</h3>
		<ul><li>Spa</li><li>Package Service</li></ul>
	</div>
</section>
<section class="amenitiesSection">
	<h2 class="amenitiesSectionTitle">Apartment Features</h2>
	<div class="amenityGroup">
		<h3 class="amenityGroupHeader">Kitchen</h3>
		<ul><li>Dishwasher</li><li>Granite Countertops</li></ul>
	</div>
</section>
<section class="amenitiesSection">
	<h2 class="amenitiesSectionTitle">Neighborhood</h2>
	<div class="amenityGroup"><ul><li>Ignored</li></ul></div>
</section>
</body></html>`

func TestAmenities(t *testing.T) {
	page := browser.MustStaticPage(amenitiesHTML)

	result, err := Amenities(page)
	assert.NoError(t, err)

	// The title match is case-insensitive but the canonical title is kept
	assert.NotNil(t, result.Community)
	assert.Equal(t, "Community Amenities", result.Community.Title)
	assert.NotNil(t, result.Apartment)
	assert.Equal(t, "Apartment Features", result.Apartment.Title)

	assert.Equal(t, []string{"Pool", "Fitness Center"}, result.Community.Icons)

	assert.Equal(t, []listing.AmenityGroup{
		{Header: "Kitchen", Items: []string{"Dishwasher", "Granite Countertops"}},
	}, result.Apartment.Groups)
}

// Items repeat across groups on real pages; the duplicate stays with its
// first group and later occurrences are dropped section-wide
func TestAmenitiesDedupAcrossGroups(t *testing.T) {
	page := browser.MustStaticPage(amenitiesHTML)

	result, err := Amenities(page)
	assert.NoError(t, err)

	assert.Equal(t, []listing.AmenityGroup{
		{Header: "Recreation", Items: []string{"Pool", "Spa", "Grill"}},
		{Header: "Services", Items: []string{"Package Service"}},
	}, result.Community.Groups)
}

func TestAmenitiesUnknownSectionIgnored(t *testing.T) {
	page := browser.MustStaticPage(`
		<html><body><section class="amenitiesSection">
			<h2 class="amenitiesSectionTitle">Neighborhood</h2>
			<div class="amenityGroup"><ul><li>Coffee Shops</li></ul></div>
		</section></body></html>`)

	result, err := Amenities(page)
	assert.NoError(t, err)
	assert.Nil(t, result.Community)
	assert.Nil(t, result.Apartment)
}

func TestAmenitiesMissingSections(t *testing.T) {
	page := browser.MustStaticPage(`<html><body><h1 class="propertyName">Arbor Lofts</h1></body></html>`)

	result, err := Amenities(page)
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Nil(t, result.Community)
	assert.Nil(t, result.Apartment)
}
