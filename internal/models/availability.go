package models

// AvailabilityReport is the result of a single pickup check
type AvailabilityReport struct {
	Product       ProductInfo    `json:"product"`
	Pickup        PickupInfo     `json:"pickup"`
	Delivery      Text           `json:"delivery"`
	SimilarModels []ModelVariant `json:"similar_models"`
}

// ProductInfo describes the configured product shown in the pickup overlay
type ProductInfo struct {
	Title    Text `json:"title"`
	Price    Text `json:"price"`
	ImageAlt Text `json:"image_alt"`
}

// PickupInfo holds the overlay header and the stores listed for a postal code
type PickupInfo struct {
	PostalCode string        `json:"postal_code"`
	Header     Text          `json:"header"`
	Summary    Text          `json:"summary"`
	Stores     []StoreStatus `json:"stores"`
}

// StoreStatus is one store row, copied verbatim from page text
type StoreStatus struct {
	Store      Text `json:"store"`
	City       Text `json:"city"`
	Distance   Text `json:"distance"`
	Status     Text `json:"status"`
	PickupType Text `json:"pickup_type"`
}

// ModelVariant is an alternative configuration suggested next to the product
type ModelVariant struct {
	Model               Text          `json:"model"`
	Price               Text          `json:"price"`
	AvailabilitySummary Text          `json:"availability_summary"`
	Stores              []StoreStatus `json:"stores"`
}

// NewAvailabilityReport returns an empty report for postalCode with non-nil lists
func NewAvailabilityReport(postalCode string) *AvailabilityReport {
	return &AvailabilityReport{
		Pickup: PickupInfo{
			PostalCode: postalCode,
			Stores:     []StoreStatus{},
		},
		SimilarModels: []ModelVariant{},
	}
}

// FailAll marks every top-level field as failed with err
func (r *AvailabilityReport) FailAll(err error) {
	r.Product = ProductInfo{Title: Failed(err), Price: Failed(err), ImageAlt: Failed(err)}
	r.Pickup.Header = Failed(err)
	r.Pickup.Summary = Failed(err)
	r.Delivery = Failed(err)
}
