package domain

// HostListingLimit caps the listings attached to a host profile.
const HostListingLimit = 10

type Host struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	PictureURL   *string          `json:"picture_url"`
	Location     *string          `json:"location"`
	About        *string          `json:"about"`
	IsSuperhost  bool             `json:"is_superhost"`
	ResponseRate *string          `json:"response_rate"`
	ResponseTime *string          `json:"response_time"`
	Listings     []ListingSummary `json:"listings"`
}
