package provider

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ValidateConfigFields validates configuration against provided field definitions.
// Required fields must be present and non-blank; optional fields are checked only when set.
func ValidateConfigFields(providerName string, config map[string]string, fields []ConfigField) error {
	for _, field := range fields {
		value, exists := config[field.Key]

		if field.Required {
			if !exists {
				return fmt.Errorf("%s: required field '%s' is missing", providerName, field.Key)
			}
			if strings.TrimSpace(value) == "" {
				return fmt.Errorf("%s: required field '%s' cannot be empty", providerName, field.Key)
			}
		} else if strings.TrimSpace(value) == "" {
			continue
		}

		// Type-specific validation
		if err := validateFieldType(providerName, field, value); err != nil {
			return err
		}

		if err := validateFieldEnum(providerName, field, value); err != nil {
			return err
		}

		// Pattern validation
		if err := validateFieldPattern(providerName, field, value); err != nil {
			return err
		}

		// Length validation
		if err := validateFieldLength(providerName, field, value); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldType validates field based on its type
func validateFieldType(providerName string, field ConfigField, value string) error {
	switch field.Type {
	case "number":
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%s: field '%s' must be a whole number", providerName, field.Key)
		}
	case "url":
		u, err := url.ParseRequestURI(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s: field '%s' must be an absolute URL", providerName, field.Key)
		}
	case "boolean":
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s: field '%s' must be 'true' or 'false'", providerName, field.Key)
		}
	}
	return nil
}

func validateFieldEnum(providerName string, field ConfigField, value string) error {
	if len(field.Enum) == 0 {
		return nil
	}

	for _, allowed := range field.Enum {
		if strings.EqualFold(value, allowed) {
			return nil
		}
	}
	return fmt.Errorf("%s: %s must be one of: %s", providerName, field.Key, strings.Join(field.Enum, ", "))
}

// validateFieldPattern validates field against regex pattern
func validateFieldPattern(providerName string, field ConfigField, value string) error {
	if field.Pattern == "" {
		return nil
	}

	matched, err := regexp.MatchString(field.Pattern, value)
	if err != nil {
		return fmt.Errorf("%s: invalid pattern for field '%s': %v", providerName, field.Key, err)
	}

	if !matched {
		return fmt.Errorf("%s: field '%s' does not match required pattern", providerName, field.Key)
	}

	return nil
}

// validateFieldLength validates field length constraints
func validateFieldLength(providerName string, field ConfigField, value string) error {
	if field.MinLength > 0 && len(value) < field.MinLength {
		return fmt.Errorf("%s: field '%s' must be at least %d characters", providerName, field.Key, field.MinLength)
	}

	if field.MaxLength > 0 && len(value) > field.MaxLength {
		return fmt.Errorf("%s: field '%s' must not exceed %d characters", providerName, field.Key, field.MaxLength)
	}

	return nil
}
