package commands

// Register creates a role=user account.
type Register struct {
	Name     string
	Phone    string
	Aadhaar  string
	Category string
	Password string
}

// CreateEmployee creates a role=employee account.
type CreateEmployee struct {
	Name     string
	Phone    string
	Aadhaar  string
	Password string
}
