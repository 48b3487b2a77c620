package account

// Account is a registered user of the dealership. Role drives the inventory
// management gate: Client accounts shop, Employee and Admin accounts manage.
type Account struct {
	ID           int    `json:"id" db:"account_id"`
	FirstName    string `json:"firstName" db:"account_firstname"`
	LastName     string `json:"lastName" db:"account_lastname"`
	Email        string `json:"email" db:"account_email"`
	PasswordHash string `json:"-" db:"account_password"`
	Role         string `json:"role" db:"account_type"`
}

type AccountNew struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=12"`
}

type AccountUp struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

type PasswordUp struct {
	Password string `json:"password" validate:"required,min=12"`
}
