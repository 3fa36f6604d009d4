//nolint:revive // types is a standard Go package name pattern
package types

// UserNameRequest sets the display name shown on the dashboard.
type UserNameRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// Validate validates the UserNameRequest using the validator.
func (r *UserNameRequest) Validate() error {
	return validate.Struct(r)
}

// ActiveCategoryRequest selects the study category shown by default.
type ActiveCategoryRequest struct {
	Category string `json:"category" validate:"required,study_category"`
}

// Validate validates the ActiveCategoryRequest using the validator.
func (r *ActiveCategoryRequest) Validate() error {
	return validate.Struct(r)
}
