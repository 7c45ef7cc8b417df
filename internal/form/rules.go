package form

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule checks one field value. A nil error means the value passes.
type Rule func(value string) error

// emailRx is the usual HTML5 email pattern, requiring a dotted domain.
var emailRx = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// Required rejects blank values.
func Required(msg string) Rule {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// MaxLen rejects values longer than n runes.
func MaxLen(field string, n int) Rule {
	return func(v string) error {
		if utf8.RuneCountInString(v) > n {
			return fmt.Errorf("%s must be at most %d characters", field, n)
		}
		return nil
	}
}

// Email rejects non blank values that are not email addresses.
func Email(msg string) Rule {
	return Pattern(emailRx, msg)
}

// Pattern rejects non blank values not matching rx.
func Pattern(rx *regexp.Regexp, msg string) Rule {
	return func(v string) error {
		if v == "" || rx.MatchString(v) {
			return nil
		}
		return errors.New(msg)
	}
}

// OneOf rejects non blank values outside of options.
func OneOf(msg string, options ...string) Rule {
	return func(v string) error {
		if v == "" {
			return nil
		}
		for _, o := range options {
			if v == o {
				return nil
			}
		}
		return errors.New(msg)
	}
}

// chain runs rules in order and returns the first failure.
func chain(rules []Rule) func(string) error {
	return func(v string) error {
		for _, r := range rules {
			if err := r(v); err != nil {
				return err
			}
		}
		return nil
	}
}
