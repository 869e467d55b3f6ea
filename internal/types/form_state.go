package types

import "github.com/go-playground/validator/v10"

// FormState holds the three free-text inputs describing a brand and its campaign.
// CurrentAssets may be empty.
type FormState struct {
	BrandInfo     string `json:"brandInfo" validate:"required"`
	ContentParams string `json:"contentParams" validate:"required"`
	CurrentAssets string `json:"currentAssets"`
}

// Validate validates the FormState using the validator.
// The prompt builder and generator accept any FormState; this check belongs to the edges (CLI, HTTP).
func (f *FormState) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}
