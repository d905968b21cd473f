package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dwellscan/listingworker/internal/browser"
	"dwellscan/listingworker/internal/listing"
)

const availabilityHTML = `
<html><body>
<h1 class="propertyName">  The   Arbor  Lofts </h1>
<div class="propertyAddressContainer">
	<span>4524 Oak Creek Dr,</span>
	<span>Austin, TX 78727</span>
</div>
<ul>
	<li class="priceBedRangeInfoInnerContainer">
		<p class="rentInfoLabel">Monthly Rent</p>
		<p class="rentInfoDetail">$1,500 - $2,240</p>
	</li>
	<li class="priceBedRangeInfoInnerContainer">
		<p class="rentInfoLabel">Bedrooms</p>
		<p class="rentInfoDetail">1 - 2 bd</p>
	</li>
	<li class="priceBedRangeInfoInnerContainer">
		<p class="rentInfoLabel"></p>
		<p class="rentInfoDetail">  </p>
	</li>
</ul>
<div id="availabilitySection">
	<div class="pricingGridItem">
		<div class="floorPlanButtonImage"
			style="background-image: url('https://img.example.com/plans/a1.jpg')"
			data-image="https://img.example.com/plans/a1-fallback.jpg"></div>
		<span class="modelName">A1</span>
		<span class="rentLabel">$1,500</span>
		<span class="detailsTextWrapper"><span>1 bed</span><span>1 bath</span><span>650   sq ft</span></span>
		<span class="availabilityInfo">Available Now</span>
		<ul>
			<li class="unitContainer">
				<div class="unitColumn">Unit 104</div>
				<div class="pricingColumn">$1,500</div>
				<div class="sqftColumn">650</div>
				<div class="availableColumn">Now</div>
			</li>
			<li class="unitContainer">
				<div class="unitColumn">Unit 212</div>
				<div class="pricingColumn">$1,540</div>
				<div class="availableColumn">Sep 15</div>
			</li>
		</ul>
	</div>
	<div class="pricingGridItem">
		<div class="floorPlanButtonImage" data-image="https://img.example.com/plans/b2.jpg"></div>
		<span class="modelName">B2</span>
		<span class="rentLabel">$2,100</span>
		<span class="availabilityInfo">2 units available</span>
	</div>
	<div class="pricingGridItem"></div>
</div>
</body></html>`

func TestAvailability(t *testing.T) {
	page := browser.MustStaticPage(availabilityHTML)

	data, err := Availability(page)
	assert.NoError(t, err)

	assert.Equal(t, "The Arbor Lofts", data.PropertyName)
	assert.Equal(t, "4524 Oak Creek Dr, Austin, TX 78727", data.PropertyAddress)

	assert.Equal(t, []listing.BedSummary{
		{Label: "Monthly Rent", Value: "$1,500 - $2,240"},
		{Label: "Bedrooms", Value: "1 - 2 bd"},
	}, data.BedInfo)

	// The blank grid cell is dropped, the real cards survive
	assert.Len(t, data.Models, 2)

	a1 := data.Models[0]
	assert.Equal(t, "A1", a1.ModelName)
	assert.Equal(t, "$1,500", a1.RentLabel)
	assert.Equal(t, "Available Now", a1.Availability)
	assert.Equal(t, []string{"1 bed", "1 bath", "650 sq ft"}, a1.Details)
	assert.Equal(t, "4524 Oak Creek Dr, Austin, TX 78727", a1.PropertyAddress)

	b2 := data.Models[1]
	assert.Equal(t, "B2", b2.ModelName)
	assert.Empty(t, b2.Units)
}

// The inline background-image style wins over the data attribute
func TestAvailabilityModelImagePreference(t *testing.T) {
	page := browser.MustStaticPage(availabilityHTML)

	data, err := Availability(page)
	assert.NoError(t, err)

	assert.Equal(t, "https://img.example.com/plans/a1.jpg", data.Models[0].Image)
	assert.Equal(t, "https://img.example.com/plans/b2.jpg", data.Models[1].Image)
}

// A unit row missing a column keeps its position with an empty value
func TestAvailabilityUnitRowsKeepEmptyCells(t *testing.T) {
	page := browser.MustStaticPage(availabilityHTML)

	data, err := Availability(page)
	assert.NoError(t, err)

	assert.Equal(t, []listing.UnitRow{
		{Unit: "Unit 104", Price: "$1,500", Sqft: "650", Availability: "Now"},
		{Unit: "Unit 212", Price: "$1,540", Sqft: "", Availability: "Sep 15"},
	}, data.Models[0].Units)
}

func TestAvailabilityEmptyPageFails(t *testing.T) {
	page := browser.MustStaticPage(`<html><body><p>nothing here</p></body></html>`)

	data, err := Availability(page)
	assert.Error(t, err)
	assert.Nil(t, data)
}
