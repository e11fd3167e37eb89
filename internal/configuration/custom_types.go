package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// CalculateKeyword can be used instead of a number for values that
// can be derived from the steady state of the process.
const CalculateKeyword = "calculate"

// CalculableFloat is either a fixed number or a value that should be calculated.
type CalculableFloat struct {
	Value     float64 `json:"value"`
	Calculate bool    `json:"calculate"`
}

func Fixed(value float64) CalculableFloat {
	return CalculableFloat{Value: value}
}

func Calculated() CalculableFloat {
	return CalculableFloat{Calculate: true}
}

// Resolve returns the fixed value, or the result of calculate if the value should be calculated.
func (c CalculableFloat) Resolve(calculate func() float64) float64 {
	if c.Calculate {
		return calculate()
	}
	return c.Value
}

func (c CalculableFloat) String() string {
	if c.Calculate {
		return CalculateKeyword
	}
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

// CalculableFloatHookFunc returns a mapstructure decode hook that accepts numbers,
// numeric strings and the literal "calculate" for CalculableFloat fields.
func CalculableFloatHookFunc() mapstructure.DecodeHookFuncType {
	calculableType := reflect.TypeOf(CalculableFloat{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != calculableType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			text := strings.TrimSpace(v)
			if strings.EqualFold(text, CalculateKeyword) {
				return Calculated(), nil
			}
			value, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("expected a number or '%s', got '%s'", CalculateKeyword, v)
			}
			return Fixed(value), nil
		case int:
			return Fixed(float64(v)), nil
		case int64:
			return Fixed(float64(v)), nil
		case float32:
			return Fixed(float64(v)), nil
		case float64:
			return Fixed(v), nil
		}

		return data, nil
	}
}
