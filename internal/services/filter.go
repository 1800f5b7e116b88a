package services

import (
	"strconv"
	"strings"

	"imovia/internal/models"
)

// PropertyFilter is the optional criteria set for the public listing.
// Nil / empty members impose no constraint.
type PropertyFilter struct {
	Type     *models.PropertyType
	Location string
	MinPrice *float64
	MaxPrice *float64
	Status   *models.PropertyStatus
}

// predicate is one SQL condition with its arguments. Filters compose as
// an explicit predicate list combined with AND, so the composition
// rules stay visible and testable without a query builder.
type predicate struct {
	expr string
	args []interface{}
}

func (f PropertyFilter) predicates() []predicate {
	var preds []predicate

	if f.Type != nil {
		preds = append(preds, predicate{"type = ?", []interface{}{*f.Type}})
	}
	if f.Location != "" {
		pattern := "%" + strings.ToLower(f.Location) + "%"
		preds = append(preds, predicate{"LOWER(location) LIKE ?", []interface{}{pattern}})
	}
	if f.MinPrice != nil {
		preds = append(preds, predicate{"price >= ?", []interface{}{*f.MinPrice}})
	}
	if f.MaxPrice != nil {
		preds = append(preds, predicate{"price <= ?", []interface{}{*f.MaxPrice}})
	}
	if f.Status != nil {
		preds = append(preds, predicate{"status = ?", []interface{}{*f.Status}})
	}

	return preds
}

// ParsePropertyFilter builds a filter from raw query values. Empty
// strings mean "absent". Malformed numbers and unknown enum values
// come back as a ValidationError naming the field.
func ParsePropertyFilter(typ, location, minPrice, maxPrice, status string) (PropertyFilter, error) {
	var f PropertyFilter

	if typ != "" {
		t := models.PropertyType(typ)
		if !models.IsValidPropertyType(t) {
			return f, invalidField("type", "must be one of apartment, house, farm")
		}
		f.Type = &t
	}

	f.Location = location

	if minPrice != "" {
		v, err := parseNonNegativeDecimal("minPrice", minPrice)
		if err != nil {
			return f, err
		}
		f.MinPrice = v
	}

	if maxPrice != "" {
		v, err := parseNonNegativeDecimal("maxPrice", maxPrice)
		if err != nil {
			return f, err
		}
		f.MaxPrice = v
	}

	if status != "" {
		s := models.PropertyStatus(status)
		if !models.IsValidPropertyStatus(s) {
			return f, invalidField("status", "must be one of available, sold")
		}
		f.Status = &s
	}

	return f, nil
}

// ParseDecimalField parses an optional non-negative decimal arriving as
// form text (price, area). Empty input yields nil.
func ParseDecimalField(field, value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	return parseNonNegativeDecimal(field, value)
}

// ParseCountField parses an optional non-negative integer arriving as
// form text (bedrooms, bathrooms, parkingSpaces). Empty input yields nil.
func ParseCountField(field, value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, invalidField(field, "must be an integer")
	}
	if n < 0 {
		return nil, invalidField(field, "must not be negative")
	}
	return &n, nil
}

func parseNonNegativeDecimal(field, value string) (*float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, invalidField(field, "must be a number")
	}
	if v < 0 {
		return nil, invalidField(field, "must not be negative")
	}
	return &v, nil
}
