package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule binds a field to a validator tag chain. Tags run left to right and
// the first failing tag decides the message.
type Rule struct {
	Field string // wire name, e.g. "email"
	Label string // user-facing name, e.g. "Email"
	Tags  string // validator syntax, e.g. "required,email,max=255"
}

// RuleSet evaluates an ordered list of rules and stops at the first violation.
type RuleSet struct {
	validate *validator.Validate
	catalog  *Catalog
	rules    []Rule
}

// NewRuleSet builds a rule set backed by its own validator instance.
func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{
		validate: validator.New(),
		catalog:  NewCatalog(),
		rules:    append([]Rule(nil), rules...),
	}
}

// Rules returns a copy of the declared rules in evaluation order.
func (s *RuleSet) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}

// Check trims each value and validates it in rule order. Fields after the
// first failing one are never inspected.
func (s *RuleSet) Check(values map[string]string) *FieldError {
	for _, rule := range s.rules {
		value := strings.TrimSpace(values[rule.Field])
		if err := s.validate.Var(value, rule.Tags); err != nil {
			return s.fieldError(rule, err)
		}
	}
	return nil
}

func (s *RuleSet) fieldError(rule Rule, err error) *FieldError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		// Bad tag syntax or similar; surface it against the field anyway
		return &FieldError{Field: rule.Field, Tag: "invalid", Message: s.catalog.Message("invalid", rule.Label, "")}
	}

	fe := validationErrors[0]
	return &FieldError{
		Field:   rule.Field,
		Tag:     fe.Tag(),
		Message: s.catalog.Message(fe.Tag(), rule.Label, fe.Param()),
	}
}
