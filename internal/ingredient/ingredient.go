package ingredient

// Ingredient is a single recipe ingredient. Instances belong to exactly one
// recipe; two recipes listing "Garlic" hold two distinct values.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}
