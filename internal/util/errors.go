package util

import "errors"

var (
	ErrUnknownOutput  = errors.New("unknown output")
	ErrInvalidInput   = errors.New("invalid input value")
	ErrColumnNotFound = errors.New("column not found")
	ErrNotRenderable  = errors.New("figure cannot be rendered")
	ErrBinaryDataset  = errors.New("dataset is not a text file")
)
