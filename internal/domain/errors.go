package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCatalog is the root of every rule catalog construction failure
	ErrInvalidCatalog = errors.New("invalid rule catalog")

	// ErrEmptyPatterns is returned when a brand declares no match patterns
	ErrEmptyPatterns = fmt.Errorf("%w: brand has an empty pattern list", ErrInvalidCatalog)

	// ErrDuplicatePriority is returned when the service priority list repeats a service
	ErrDuplicatePriority = fmt.Errorf("%w: duplicate service in priority list", ErrInvalidCatalog)

	// ErrUnknownGenericBrand is returned when a generic brand fallback names a brand with no rule
	ErrUnknownGenericBrand = fmt.Errorf("%w: generic brand is not a declared brand", ErrInvalidCatalog)

	// ErrGenericBrandService is returned when a generic brand belongs to a different service
	ErrGenericBrandService = fmt.Errorf("%w: generic brand does not belong to its service", ErrInvalidCatalog)

	// ErrDuplicateBrand is returned when the same canonical brand is declared twice
	ErrDuplicateBrand = fmt.Errorf("%w: duplicate brand", ErrInvalidCatalog)

	// ErrInvalidPattern is returned when a pattern does not compile
	ErrInvalidPattern = fmt.Errorf("%w: pattern does not compile", ErrInvalidCatalog)

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrNoSourceColumns is returned when a batch source contains none of the configured columns
	ErrNoSourceColumns = errors.New("none of the source columns exist")

	// ErrUnsupportedSource is returned for batch files that are neither CSV nor XLSX
	ErrUnsupportedSource = errors.New("unsupported batch source format")
)
