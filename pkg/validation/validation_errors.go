package validation

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
)

// FieldError names the first rule a submission violated
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

// messages keyed by validator tag; {0} is the field label, {1} the tag param
var messages = map[string]string{
	"required": "{0} is required",
	"max":      "{0} must be less than {1} characters",
	"min":      "{0} must be at least {1} characters",
	"email":    "Please enter a valid email",
	"invalid":  "{0} is invalid",
}

// Catalog renders rule messages through a universal-translator instance
type Catalog struct {
	trans ut.Translator
}

func NewCatalog() *Catalog {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	trans, _ := uni.GetTranslator("en")

	for tag, text := range messages {
		_ = trans.Add(tag, text, true)
	}

	return &Catalog{trans: trans}
}

// Message formats the message for tag, falling back to the generic one
func (c *Catalog) Message(tag, label, param string) string {
	msg, err := c.trans.T(tag, label, param)
	if err != nil {
		msg, _ = c.trans.T("invalid", label, param)
	}
	return msg
}
