package dto

type CreateReviewRequest struct {
	Review string `json:"review" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`

	// Filled from the nested route and the session when omitted.
	Tour string `json:"tour"`
	User string `json:"user"`
}

type UpdateReviewRequest struct {
	Review *string `json:"review" validate:"omitempty,min=1"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}
