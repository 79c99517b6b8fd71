package models

import (
	"errors"
)

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrTargetLenMismatch  = errors.New("target rows do not match training rows")
	ErrTargetNotColumn    = errors.New("target must be a single column matrix")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
)
