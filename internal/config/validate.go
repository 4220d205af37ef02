package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"sizebudget/internal/budget"
)

var newValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	must(v.RegisterValidation("budgettype", func(fl validator.FieldLevel) bool {
		return budget.Type(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("budgetsize", func(fl validator.FieldLevel) bool {
		return sizeError(fl.Field().String()) == nil
	}))
	must(v.RegisterValidation("budgetbaseline", func(fl validator.FieldLevel) bool {
		return baselineError(fl.Field().String()) == nil
	}))
	return v
})

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func sizeError(expr string) error {
	_, err := budget.ParseSize(expr, "", budget.Increase)
	return err
}

func baselineError(expr string) error {
	_, err := budget.ParseSize("0", expr, budget.Increase)
	return err
}

// Validate normalises budget types in place and checks every budget. All
// problems are reported together as *budget.ConfigError values tagged with
// the budget index.
func Validate(f *File) ([]budget.Rule, error) {
	if len(f.Budgets) == 0 {
		return nil, ErrNoBudgets
	}
	v := newValidator()
	var errs []error
	for i := range f.Budgets {
		b := &f.Budgets[i]
		if t, err := budget.ParseType(b.Type); err == nil {
			b.Type = string(t)
		}
		err := v.Struct(b)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("budget[%d]: %w", i, err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, translate(i, b, fe))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	rules := make([]budget.Rule, len(f.Budgets))
	for i, b := range f.Budgets {
		rules[i] = b.Rule()
	}
	if err := budget.ValidateAll(rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func translate(idx int, b *Budget, fe validator.FieldError) error {
	expr := fmt.Sprint(fe.Value())
	ce := &budget.ConfigError{Rule: idx, Type: budget.Type(b.Type), Field: fe.Field(), Expr: expr}
	switch fe.Tag() {
	case "required", "budgettype":
		ce.Err = budget.ErrUnknownType
	case "required_if":
		ce.Expr = ""
		ce.Err = budget.ErrMissingName
	case "budgetbaseline":
		ce.Err = baselineError(expr)
	case "budgetsize":
		ce.Err = sizeError(expr)
	}
	if ce.Err == nil {
		ce.Err = fmt.Errorf("failed %q validation", fe.Tag())
	}
	return ce
}
