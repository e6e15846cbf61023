package request

type CreateBookingRequest struct {
	UserEmail string   `json:"userEmail" validate:"required,email"`
	CourtID   string   `json:"courtId" validate:"required"`
	CourtType *string  `json:"courtType,omitempty"`
	Date      string   `json:"date" validate:"required"`
	Slots     []string `json:"slots" validate:"required,min=1,dive,required"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
