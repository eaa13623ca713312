package dto

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.:@]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("payment_pointer", validatePaymentPointer)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, dot, colon and @.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

func validatePaymentPointer(fl validator.FieldLevel) bool {
	return IsPaymentPointer(fl.Field().String())
}

// IsPaymentPointer reports whether s looks like "$host[/path]" or an https URL.
// The pointer form resolves to https://host/path; a bare host resolves to
// https://host/.well-known/pay.
func IsPaymentPointer(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	raw := s
	if strings.HasPrefix(s, "$") {
		raw = "https://" + s[1:]
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host != "" && u.User == nil && u.RawQuery == "" && u.Fragment == ""
}
