package dto

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token alongside plaintext-safe user info.
type LoginResponse struct {
	Token      string `json:"token"`
	Username   string `json:"username"`
	Admin      bool   `json:"admin"`
	EmployeeID int    `json:"employeeId"`
}
