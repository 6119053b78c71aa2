package validator

// RegisterRequest represents the request structure for registration
type RegisterRequest struct {
	StudentID   string `json:"student_id" validate:"required,student_id"`
	Name        string `json:"name" validate:"required,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,phone_number"`
	SchoolName  string `json:"school_name" validate:"required,max=100"`
	Grade       string `json:"grade" validate:"required,grade_label"`
	ClassNo     string `json:"class_no" validate:"required,grade_label"`
	Password    string `json:"password" validate:"required,password_length"`
}

// LoginRequest represents the request structure for login
type LoginRequest struct {
	StudentID string `json:"student_id" validate:"required,student_id"`
	Password  string `json:"password" validate:"required,password_length"`
}

// ChatRequest represents one inbound chat message
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}
