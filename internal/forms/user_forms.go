package forms

import (
	"net/http"
	"regexp"
)

const (
	UsernameMaxLength = 150
	PasswordMinLength = 8

	msgUsernameInvalid  = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgUsernameTaken    = "A user with that username already exists."
	msgPasswordMismatch = "The two password fields didn’t match."
	msgPasswordShort    = "This password is too short. It must contain at least 8 characters."

	// MsgInvalidLogin is the non-field error for rejected credentials.
	MsgInvalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// UsernameChecker looks up whether a username is already registered.
type UsernameChecker interface {
	UsernameExists(username string) (bool, error)
}

// LoginForm carries submitted credentials.
type LoginForm struct {
	Username string
	Password string
	Errors   Errors
}

// NewLoginForm reads a login form from the request body.
func NewLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Username: postValue(r, "username"),
		Password: r.PostFormValue("password"),
		Errors:   Errors{},
	}
}

// Validate only checks presence; credentials are verified by the caller.
func (f *LoginForm) Validate() bool {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	if f.Username == "" {
		f.Errors.Add("username", msgRequired)
	}
	if f.Password == "" {
		f.Errors.Add("password", msgRequired)
	}
	return !f.Errors.Any()
}

// SignupForm carries a new account's username and password pair.
type SignupForm struct {
	Username  string
	Password1 string
	Password2 string
	Errors    Errors
}

// NewSignupForm reads a signup form from the request body.
func NewSignupForm(r *http.Request) SignupForm {
	return SignupForm{
		Username:  postValue(r, "username"),
		Password1: r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
		Errors:    Errors{},
	}
}

// Validate checks the username rules, its availability and the password pair.
func (f *SignupForm) Validate(checker UsernameChecker) (bool, error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}

	switch {
	case f.Username == "":
		f.Errors.Add("username", msgRequired)
	case tooLong(f.Username, UsernameMaxLength):
		f.Errors.Add("username", maxLengthMessage(UsernameMaxLength, f.Username))
	case !usernamePattern.MatchString(f.Username):
		f.Errors.Add("username", msgUsernameInvalid)
	default:
		taken, err := checker.UsernameExists(f.Username)
		if err != nil {
			return false, err
		}
		if taken {
			f.Errors.Add("username", MsgUsernameTaken)
		}
	}

	if f.Password1 == "" {
		f.Errors.Add("password1", msgRequired)
	}
	if f.Password2 == "" {
		f.Errors.Add("password2", msgRequired)
	}
	if f.Password1 != "" && f.Password2 != "" {
		if f.Password1 != f.Password2 {
			f.Errors.Add("password2", msgPasswordMismatch)
		} else if len([]rune(f.Password1)) < PasswordMinLength {
			f.Errors.Add("password2", msgPasswordShort)
		}
	}
	return !f.Errors.Any(), nil
}
