package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// FieldErrors collects per-field validation messages. The zero value of
// the map is not usable; call NewFieldErrors.
type FieldErrors map[string]string

func NewFieldErrors() FieldErrors {
	return make(FieldErrors)
}

func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

const (
	MinPublicationYear = 1000
	MaxPublicationYear = 2100
)

// suspiciousPatterns are substrings associated with markup or SQL
// injection payloads. This is defense in depth on free-text fields; the
// primary defense is parameterized queries in the repository layer.
var suspiciousPatterns = []string{
	"<script",
	"javascript:",
	"onerror=",
	"onload=",
	"union select",
	"drop table",
	"insert into",
	"delete from",
	"';",
	"\";",
	"--",
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,30}$`)
var isbnPattern = regexp.MustCompile(`^(\d{10}|\d{13})$`)
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// CheckFreeText rejects angle brackets and known injection tokens in a
// free-text field.
func CheckFreeText(field, value string, errs FieldErrors) {
	if strings.ContainsAny(value, "<>") {
		errs.Add(field, "must not contain angle brackets")
		return
	}
	lower := strings.ToLower(value)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(lower, pattern) {
			errs.Add(field, "contains disallowed sequence")
			return
		}
	}
}

// CheckTitle trims the title and requires at least 2 characters, then
// applies the free-text checks.
func CheckTitle(field, title string, errs FieldErrors) string {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) < 2 {
		errs.Add(field, "must be at least 2 characters long")
		return title
	}
	CheckFreeText(field, title, errs)
	return title
}

// CheckPublicationYear enforces the [1000, 2100] range and rejects years
// in the future.
func CheckPublicationYear(year int, errs FieldErrors) {
	if year < MinPublicationYear || year > MaxPublicationYear {
		errs.Add("publicationYear", fmt.Sprintf("must be between %d and %d", MinPublicationYear, MaxPublicationYear))
		return
	}
	currentYear := time.Now().Year()
	if year > currentYear {
		errs.Add("publicationYear", fmt.Sprintf("cannot be in the future, current year is %d", currentYear))
	}
}

// CheckISBN accepts an empty ISBN, otherwise requires 10 or 13 digits.
func CheckISBN(isbn string, errs FieldErrors) {
	if isbn == "" {
		return
	}
	if !isbnPattern.MatchString(isbn) {
		errs.Add("isbn", "must be 10 or 13 digits")
	}
}

func CheckUsername(username string, errs FieldErrors) {
	if !usernamePattern.MatchString(username) {
		errs.Add("username", "must be 3-30 characters: letters, digits, '.', '_' or '-'")
	}
}

func CheckEmail(field, email string, errs FieldErrors) {
	if !emailPattern.MatchString(email) {
		errs.Add(field, "invalid email format")
	}
}

// CheckPages accepts nil, otherwise requires a positive page count.
func CheckPages(pages *int, errs FieldErrors) {
	if pages != nil && *pages <= 0 {
		errs.Add("pages", "must be a positive number")
	}
}
