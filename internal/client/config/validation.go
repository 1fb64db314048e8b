package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks c with its struct tags and reports the first violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		if e.Tag() == "required" {
			return fmt.Errorf("config: %s is not set", e.Namespace())
		}
		return fmt.Errorf("config: %s fails %q (value: %v)", e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
