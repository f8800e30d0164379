package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/newsblog/newsblog/models"
)

// Errors maps a field name to a user-facing message. An empty map means the
// form passed every rule. Checks within a single field stop at the first
// failure; fields are always checked independently of each other.
type Errors map[string]string

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether the address matches the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// FeedbackForm carries the public feedback form fields.
type FeedbackForm struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// Validate trims every field in place and returns the rule violations.
func (f *FeedbackForm) Validate() Errors {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)

	errs := Errors{}
	if f.Name == "" {
		errs["name"] = "name is required"
	}
	if f.Email == "" {
		errs["email"] = "email is required"
	} else if !ValidEmail(f.Email) {
		errs["email"] = "enter a valid email address"
	}
	if f.Message == "" {
		errs["message"] = "message is required"
	} else if len([]rune(f.Message)) < 10 {
		errs["message"] = "message must be at least 10 characters"
	}
	return errs
}

// ArticleForm carries article create/edit fields.
type ArticleForm struct {
	Title    string `json:"title" form:"title"`
	Body     string `json:"body" form:"body"`
	Excerpt  string `json:"excerpt" form:"excerpt"`
	Category string `json:"category" form:"category"`
}

func (f *ArticleForm) Validate() Errors {
	f.Title = strings.TrimSpace(f.Title)
	f.Body = strings.TrimSpace(f.Body)
	f.Excerpt = strings.TrimSpace(f.Excerpt)
	f.Category = strings.TrimSpace(f.Category)

	errs := Errors{}
	if f.Title == "" {
		errs["title"] = "title is required"
	} else if len([]rune(f.Title)) < 5 {
		errs["title"] = "title must be at least 5 characters"
	}
	if f.Body == "" {
		errs["content"] = "article content is required"
	} else if len([]rune(f.Body)) < 50 {
		errs["content"] = "article content must be at least 50 characters"
	}
	if f.Category == "" {
		errs["category"] = "choose a category"
	} else if !models.ValidCategory(f.Category) {
		errs["category"] = fmt.Sprintf("category must be one of: %s", strings.Join(models.Categories, ", "))
	}
	return errs
}

// CommentForm carries comment fields. AuthorName may arrive empty when the
// caller intends to default it to the authenticated user's name; the service
// fills it in before validation runs.
type CommentForm struct {
	AuthorName string `json:"author_name" form:"author_name"`
	Body       string `json:"body" form:"body"`
}

func (f *CommentForm) Validate() Errors {
	f.AuthorName = strings.TrimSpace(f.AuthorName)
	f.Body = strings.TrimSpace(f.Body)

	errs := Errors{}
	if f.AuthorName == "" {
		errs["author_name"] = "author name is required"
	} else if len([]rune(f.AuthorName)) < 2 {
		errs["author_name"] = "author name must be at least 2 characters"
	}
	if f.Body == "" {
		errs["text"] = "comment text is required"
	} else if len([]rune(f.Body)) < 5 {
		errs["text"] = "comment text must be at least 5 characters"
	}
	return errs
}

// RegistrationForm carries the sign-up fields.
type RegistrationForm struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// Validate checks the registration rules. emailTaken consults the user store
// so the "already registered" message surfaces at the form boundary; the
// database unique index remains the atomic authority under concurrency.
func (f *RegistrationForm) Validate(emailTaken func(string) bool) Errors {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)

	errs := Errors{}
	if f.Name == "" {
		errs["name"] = "name is required"
	} else if len([]rune(f.Name)) < 2 {
		errs["name"] = "name must be at least 2 characters"
	}
	if f.Email == "" {
		errs["email"] = "email is required"
	} else if !ValidEmail(f.Email) {
		errs["email"] = "enter a valid email address"
	} else if emailTaken != nil && emailTaken(f.Email) {
		errs["email"] = "this email is already registered"
	}
	if f.Password == "" {
		errs["password"] = "password is required"
	} else if len([]rune(f.Password)) < 6 {
		errs["password"] = "password must be at least 6 characters"
	}
	if f.ConfirmPassword != f.Password {
		errs["confirm_password"] = "passwords do not match"
	}
	return errs
}

// LoginForm carries the sign-in fields.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (f *LoginForm) Validate() Errors {
	f.Email = strings.TrimSpace(f.Email)

	errs := Errors{}
	if f.Email == "" {
		errs["email"] = "email is required"
	}
	if f.Password == "" {
		errs["password"] = "password is required"
	}
	return errs
}
