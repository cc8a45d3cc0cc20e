package services

import "errors"

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidMatches   = errors.New("supplied matches are invalid")

	ErrBracketAlreadyGenerated = errors.New("bracket already generated for this season and league")
	ErrBracketNotFound         = errors.New("bracket not found")
)
