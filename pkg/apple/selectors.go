package apple

// Page structure of the Apple Store product locator overlay
const (
	selNoAppleCare     = "input[name='applecare-options'][data-autom='noapplecare']"
	selTriggerButton   = "button[data-autom='productLocatorTriggerLink']"
	selPostalCodeInput = "input[data-autom='zipCode']"
	selResultsOptions  = "div.rf-productlocator-options"

	selProductInfo  = "div.rf-productlocator-productinfo"
	selProductTitle = ".typography-body-tight"
	selProductPrice = ".rf-productlocator-productprice"
	selProductImage = ".rf-productlocator-productimg img"

	selPickupHeader  = ".rf-productlocator-pickuploctionheader h3"
	selPickupSummary = ".rf-productlocator-pickupstoreslist .rf-productlocator-buttontitle"
	selDelivery      = ".rf-productlocator-deliveryquotes .form-selector-title"

	selStoreOption = "li.rf-productlocator-storeoption"
	selStoreLeft   = ".form-selector-left-col"
	selStoreRight  = ".form-selector-right-col"
	selStoreTitle  = ".form-selector-title"
	selSmallLabel  = ".form-label-small"

	selSuggestionItem    = ".rf-productlocator-suggestionitem"
	selSuggestionToggle  = ".rf-productlocator-suggestionstogglebtn"
	selToggleContent     = ".rf-productlocator-togglebtn-content"
	selSuggestionToggles = selSuggestionItem + " " + selSuggestionToggle
)

// revealSimilarModelsScript un-hides the collapsed "Similar models" panel
const revealSimilarModelsScript = `
document.querySelectorAll('.rf-productlocator-suggestionoptions[aria-hidden="true"]')
  .forEach(e => e.setAttribute('aria-hidden', 'false'));
document.querySelectorAll('.rf-productlocator-suggestionitem')
  .forEach(e => e.style.display = 'block');
`

const (
	triggerScrollStep = 600
	revealScrollStep  = 3000
)
