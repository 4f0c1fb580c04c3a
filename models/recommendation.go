package models

// Recommendation is the payload of GET /recommendations/ask: the generated
// natural-language answer plus the ordered videos it was grounded on.
type Recommendation struct {
	AIResponse string  `json:"aiResponse"`
	Videos     []Video `json:"videos"`
}
