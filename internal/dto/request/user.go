package request

type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
}
