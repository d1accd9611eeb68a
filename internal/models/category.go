package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category groups habits, e.g. "sports" or "learning".
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 256)),
	)
}
