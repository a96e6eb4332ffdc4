package dto

// UpdateMeRequest is the self-service profile update. Password fields are
// rejected before this binds; photo arrives as a multipart file.
type UpdateMeRequest struct {
	Name  string `json:"name" form:"name" validate:"omitempty,min=1"`
	Email string `json:"email" form:"email" validate:"omitempty,email"`
}
