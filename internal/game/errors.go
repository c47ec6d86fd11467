package game

import "errors"

var (
	ErrEmptyCatalog         = errors.New("catalog is empty")
	ErrCatalogTooSmall      = errors.New("catalog must hold more words than MaxRounds")
	ErrDegenerateWord       = errors.New("word needs at least 2 distinct letters")
	ErrInvalidMaxRounds     = errors.New("MaxRounds must be at least 1")
	ErrInvalidScoreIncrease = errors.New("ScoreIncrease must not be negative")
)
