package models

// Membership is one entry from the Whop memberships API.
type Membership struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ProductID    string `json:"product_id"`
	ExperienceID string `json:"experience_id"`
}

// MembershipList is the paginated envelope returned by the memberships endpoint.
type MembershipList struct {
	Data []Membership `json:"data"`
}
