package dto

// AdminLoginDTO is the request body for admin login.
type AdminLoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// StudentLoginDTO is the request body for student login. Password may be the
// permanent password or an unexpired temporary exam password.
type StudentLoginDTO struct {
	StudentID string `json:"student_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// AdminInfoDTO is the authenticated-user payload returned on admin login.
type AdminInfoDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// StudentInfoDTO is the authenticated-user payload returned on student login.
type StudentInfoDTO struct {
	ID        uint   `json:"id"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// LoginResponseDTO wraps the principal and its bearer token.
type LoginResponseDTO struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}
