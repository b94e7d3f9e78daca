package services

import (
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

const (
	minPasswordLength = 8
	// maxQuantity matches the orders.quantity INTEGER column.
	maxQuantity = math.MaxInt32
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateEmail(email string) error {
	if email == "" {
		return domain.RequiredField("email")
	}
	if !emailPattern.MatchString(email) {
		return &domain.ValidationError{Code: domain.CodeInvalidEmail, Field: "email", Message: "The email format is invalid"}
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return domain.RequiredField("password")
	}
	if len(password) < minPasswordLength {
		return &domain.ValidationError{Code: domain.CodeInvalidPassword, Field: "password", Message: "Password must be at least 8 characters long"}
	}
	return nil
}

func validatePrice(price float64) error {
	if price < 0 {
		return domain.InvalidValue("price", "Price must be a non-negative number")
	}
	return nil
}

// validateURL accepts absolute http(s) URLs and site-relative paths.
func validateURL(field, raw string) error {
	if raw == "" || strings.HasPrefix(raw, "/") {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.InvalidValue(field, "Must be an http(s) URL or an absolute path")
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return domain.InvalidValue("quantity", "Quantity must be a positive number")
	}
	if quantity > maxQuantity {
		return domain.InvalidValue("quantity", "Quantity is too large")
	}
	return nil
}
