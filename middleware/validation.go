// Package middleware provides request validation, rate limiting and logging
// middleware for the application.
package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// CreateInputKey is the gin context key holding the validated create payload.
const CreateInputKey = "createInput"

// CreateRequestInput is the candidate submission payload.
type CreateRequestInput struct {
	Name     string `json:"name" example:"Jo Lee"`
	Email    string `json:"email" example:"jo@example.com"`
	JobTitle string `json:"jobTitle" example:"Backend Developer"`
}

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Injection-indicative substrings. Stored fields are reflected on the
// recruiter dashboard, so suspicious content is refused outright.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[^>]*>`),
	regexp.MustCompile(`(?i)</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)vbscript:`),
	regexp.MustCompile(`(?i)onload=`),
	regexp.MustCompile(`(?i)onerror=`),
	regexp.MustCompile(`(?i)onclick=`),
	regexp.MustCompile(`(?i)<iframe[^>]*>`),
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`(?i)expression\s*\(`),
}

func containsSuspiciousContent(input string) bool {
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}

// ValidateCreateRequest gates the create path. It binds and validates the
// submission payload before the handler runs; on any violation it responds
// with a structured list of field errors and performs no store access.
// Validated input is stored in the context under CreateInputKey.
func ValidateCreateRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Validation Error",
				"message": "Request body must be a JSON object with string name, email and jobTitle fields",
			})
			return
		}

		errors := []FieldError{}

		name := strings.TrimSpace(input.Name)
		switch {
		case name == "":
			errors = append(errors, FieldError{Field: "name", Message: "Name is required"})
		case utf8.RuneCountInString(name) < 2:
			errors = append(errors, FieldError{Field: "name", Message: "Name must be at least 2 characters long"})
		case utf8.RuneCountInString(name) > 100:
			errors = append(errors, FieldError{Field: "name", Message: "Name cannot exceed 100 characters"})
		}

		email := strings.TrimSpace(input.Email)
		switch {
		case email == "":
			errors = append(errors, FieldError{Field: "email", Message: "Email is required"})
		case !emailPattern.MatchString(strings.ToLower(email)):
			errors = append(errors, FieldError{Field: "email", Message: "Please provide a valid email address"})
		case utf8.RuneCountInString(email) > 255:
			errors = append(errors, FieldError{Field: "email", Message: "Email cannot exceed 255 characters"})
		}

		jobTitle := strings.TrimSpace(input.JobTitle)
		switch {
		case jobTitle == "":
			errors = append(errors, FieldError{Field: "jobTitle", Message: "Job title is required"})
		case utf8.RuneCountInString(jobTitle) < 2:
			errors = append(errors, FieldError{Field: "jobTitle", Message: "Job title must be at least 2 characters long"})
		case utf8.RuneCountInString(jobTitle) > 200:
			errors = append(errors, FieldError{Field: "jobTitle", Message: "Job title cannot exceed 200 characters"})
		}

		if containsSuspiciousContent(input.Name) || containsSuspiciousContent(input.Email) || containsSuspiciousContent(input.JobTitle) {
			errors = append(errors, FieldError{Field: "general", Message: "Invalid content detected"})
		}

		if len(errors) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Validation Error",
				"message": "Please fix the following validation errors",
				"details": errors,
			})
			return
		}

		c.Set(CreateInputKey, input)
		c.Next()
	}
}
