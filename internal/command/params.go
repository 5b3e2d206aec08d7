package command

import (
	"errors"
	"strconv"

	boterrors "github.com/kapu/gok-stats-bot-go/pkg/errors"
)

// ErrMissingArgument is returned when a required positional argument is absent.
var ErrMissingArgument = errors.New("missing argument")

// ErrInvalidArgument is returned when a required argument does not convert.
var ErrInvalidArgument = errors.New("invalid argument")

type ParamKind int

const (
	KindString ParamKind = iota
	KindInt
)

// Param declares one positional argument. Default is used when the argument
// is absent or fails conversion; a nil Default makes the argument required.
type Param struct {
	Name    string
	Kind    ParamKind
	Default any
}

// Bind maps args onto params in order. Surplus args are ignored.
func Bind(params []Param, args []string) (map[string]any, error) {
	bound := make(map[string]any, len(params))
	for i, p := range params {
		if i >= len(args) {
			if p.Default == nil {
				return nil, argumentError(ErrMissingArgument, p.Name, nil)
			}
			bound[p.Name] = p.Default
			continue
		}

		v, err := convert(p.Kind, args[i])
		if err != nil {
			if p.Default == nil {
				return nil, argumentError(ErrInvalidArgument, p.Name, args[i])
			}
			v = p.Default
		}
		bound[p.Name] = v
	}
	return bound, nil
}

// argumentError tags a binding failure with the validation kind. errors.Is
// still matches the sentinel.
func argumentError(sentinel error, name string, value any) error {
	err := boterrors.NewValidationError(sentinel.Error()+": "+name, name, value)
	err.Cause = sentinel
	return err
}

func convert(kind ParamKind, raw string) (any, error) {
	switch kind {
	case KindInt:
		return strconv.ParseInt(raw, 10, 64)
	default:
		return raw, nil
	}
}

func stringParam(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func intParam(params map[string]any, key string) (int64, bool) {
	v, ok := params[key].(int64)
	return v, ok
}
