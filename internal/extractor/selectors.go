package extractor

// Structural queries for the availability grid
const (
	selPropertyName    = "h1.propertyName"
	selPropertyNameAlt = "#propertyName"
	selPropertyAddress = ".propertyAddressContainer"

	selBedInfoItem  = ".priceBedRangeInfoInnerContainer"
	selBedInfoLabel = ".rentInfoLabel"
	selBedInfoValue = ".rentInfoDetail"

	selModelCard         = ".pricingGridItem"
	selModelName         = ".modelName"
	selModelRent         = ".rentLabel"
	selModelDetail       = ".detailsTextWrapper span"
	selModelAvailability = ".availabilityInfo"
	selModelImage        = ".floorPlanButtonImage"
	attrModelImage       = "data-image"

	selUnitRow          = ".unitContainer"
	selUnitName         = ".unitColumn"
	selUnitPrice        = ".pricingColumn"
	selUnitSqft         = ".sqftColumn"
	selUnitAvailability = ".availableColumn"
)

// Structural queries for the contact section
const (
	selContactRoot      = ".contactInfo"
	selViewAllHours     = ".js-viewAllHours"
	selPhone            = ".phoneNumber"
	attrPhoneDigits     = "data-digits"
	selWebsite          = ".propertyWebsiteLink"
	selLanguage         = ".languages"
	selTodaysHours      = ".todaysHours"
	selOfficeHoursRow   = ".daysHoursContainer"
	selOfficeHoursDays  = ".days"
	selOfficeHoursHours = ".hours"
	selLogo             = ".propertyLogo img"
)

// Structural queries for the amenities sections
const (
	selAmenitiesSection   = ".amenitiesSection"
	selAmenitiesTitle     = ".amenitiesSectionTitle"
	selAmenityIcon        = ".amenityCard .amenityLabel"
	selAmenityGroup       = ".amenityGroup"
	selAmenityGroupHeader = ".amenityGroupHeader"
	selAmenityGroupItem   = "li"
)

// Structural queries for the fees and policies section
const (
	selFeesSection        = "#feesSection"
	selAllInPricingToggle = ".js-allInPricingToggle"
	selFeesTabButton      = "#feesSection .tabButton"
	attrTabPanelID        = "data-tab-content-id"
	selFeesGenericPanel   = `#feesSection [role="tabpanel"]`
	attrPanelLabelledBy   = "aria-labelledby"

	selFeeCard          = ".feesPoliciesCard"
	selFeeCardHeader    = ".cardHead h3"
	selFeeCardHeaderAlt = ".cardHeadline"
	selFeeRow           = "ul li"
	classFeeHeaderRow   = "headerRow"
	classFeeCommentRow  = "commentRow"
	selFeeName          = ".feeName"
	selFeeValue         = ".feeValue"
	selFeeTooltip       = ".tooltipContent"

	selFeeDetailsCard   = "#feesSection .feesPoliciesDetails"
	selFeeDetailsHeader = "h4"
	selFeeDetailsItem   = "li"
)
