package handler

// Form schemas bound from POSTed form fields and checked by the validator.
// The bounds mirror the public registration and publishing rules. The login
// form is deliberately unconstrained; a blank submission fails the same way
// a wrong password does.

type registrationForm struct {
	Username  string `form:"username"   validate:"required,min=3,max=25"`
	Email     string `form:"email"      validate:"required,min=6,max=35"`
	Password  string `form:"password"   validate:"required,max=80"`
	Confirm   string `form:"confirm"    validate:"required,eqfield=Password"`
	AcceptTOS bool   `form:"accept_tos" validate:"required"`
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type articleForm struct {
	Title    string `form:"title"    validate:"required,min=3,max=100"`
	Subtitle string `form:"subtitle" validate:"required,min=3,max=100"`
	Author   string `form:"author"   validate:"required,min=3,max=100"`
	Content  string `form:"content"  validate:"required,min=10"`
}
