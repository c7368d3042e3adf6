package service

// RegisterParams carries an already validated sign-up form.
type RegisterParams struct {
	Name     string
	Username string
	Email    string
	Password string
}
