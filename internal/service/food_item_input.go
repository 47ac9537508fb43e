package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	apperrors "foodinventory/internal/errors"
	"foodinventory/internal/model"
)

// priceScale is the number of fractional digits the price column keeps.
const priceScale = 2

// Bounds on a price's decimal exponent. Rescaling a decimal costs time in
// proportion to its exponent, so prices outside them are rejected before
// any comparison or rounding.
const (
	maxPriceExponent = 10
	minPriceExponent = -20
)

// FoodItemInput carries the business fields of a create or update request.
// A nil field was not supplied by the caller.
type FoodItemInput struct {
	Name        *string          `json:"name" validate:"omitnil,notblank,max=255"`
	Description *string          `json:"description" validate:"omitnil,notblank"`
	Price       *decimal.Decimal `json:"price" validate:"omitnil,gte=0,lt=10000000000" swaggertype:"number"`
	Quantity    *int             `json:"quantity" validate:"omitnil,gte=0"`
}

// Changes converts the input into a column change set.
func (in FoodItemInput) Changes() model.FoodItemChanges {
	return model.FoodItemChanges{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
	}
}

func (in FoodItemInput) missingFields() map[string]string {
	missing := make(map[string]string)
	if in.Name == nil {
		missing["name"] = "is required"
	}
	if in.Description == nil {
		missing["description"] = "is required"
	}
	if in.Price == nil {
		missing["price"] = "is required"
	}
	if in.Quantity == nil {
		missing["quantity"] = "is required"
	}
	return missing
}

// newValidator builds a validator that reports JSON field names and compares
// decimals by value.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

// checkValues validates the supplied fields. Absent fields are not checked.
func checkValues(v *validator.Validate, in FoodItemInput) error {
	fields := make(map[string]string)

	if in.Price != nil && !priceInRange(*in.Price) {
		fields["price"] = "is out of range"
		in.Price = nil
	}

	if err := v.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields[fe.Field()] = describe(fe)
		}
	}
	if in.Price != nil && !in.Price.Equal(in.Price.Round(priceScale)) {
		if _, seen := fields["price"]; !seen {
			fields["price"] = "must have at most 2 decimal places"
		}
	}

	if len(fields) > 0 {
		return &apperrors.ValidationError{Message: "invalid food item", Fields: fields}
	}
	return nil
}

func priceInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= minPriceExponent && exp <= maxPriceExponent
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return "must not be blank"
	case "gte":
		return "must not be negative"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "lt":
		return "is too large"
	default:
		return "is invalid"
	}
}
