package form

// Register is the sign-up form. Passwords are capped at 72 bytes, the most
// bcrypt will hash.
type Register struct {
	Name     string `form:"name" validate:"min=4,max=25"`
	Username string `form:"username" validate:"min=5,max=35"`
	Email    string `form:"email" validate:"email"`
	Password string `form:"password" validate:"notblank,maxbytes=72,eqfield=Confirm"`
	Confirm  string `form:"confirm"`
}

var registerMessages = Messages{
	"name": {
		"min": "Name must be between 4 and 25 characters long.",
		"max": "Name must be between 4 and 25 characters long.",
	},
	"username": {
		"min": "Username must be between 5 and 35 characters long.",
		"max": "Username must be between 5 and 35 characters long.",
	},
	"email": {
		"email": "Please enter a valid email address.",
	},
	"password": {
		"notblank": "Please set a password.",
		"maxbytes": "Password cannot be longer than 72 bytes.",
		"eqfield":  "Passwords do not match.",
	},
}

func (Register) Messages() Messages { return registerMessages }

type Login struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

var loginMessages = Messages{
	"username": {"required": "Please enter your username."},
	"password": {"required": "Please enter your password."},
}

func (Login) Messages() Messages { return loginMessages }

// Article is used both to add and to edit an article.
type Article struct {
	Title   string `form:"title" validate:"min=5,max=100"`
	Content string `form:"content" validate:"min=10"`
}

var articleMessages = Messages{
	"title": {
		"min": "Title must be between 5 and 100 characters long.",
		"max": "Title must be between 5 and 100 characters long.",
	},
	"content": {
		"min": "Content must be at least 10 characters long.",
	},
}

func (Article) Messages() Messages { return articleMessages }
