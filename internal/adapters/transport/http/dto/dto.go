package dto

type RegisterDTO struct {
	FirstName string `json:"firstName" validate:"required,max=64"`
	LastName  string `json:"lastName"  validate:"required,max=64"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RequestVerificationDTO struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyEmailDTO carries the raw query-string values of the verification
// link. RequestAt stays a string: the signature covers its literal form.
type VerifyEmailDTO struct {
	Email     string `form:"email"      validate:"required,email"`
	RequestAt string `form:"request_at" validate:"required"`
	Signature string `form:"signature"  validate:"required"`
}

type CreateTaskDTO struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

type UpdateTaskDTO struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Completed   *bool  `json:"completed"`
}
