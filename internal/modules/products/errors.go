package products

import "errors"

var (
	ErrNotFound      = errors.New("product not found")
	ErrSlugTaken     = errors.New("product slug already in use")
)
