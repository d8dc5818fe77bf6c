package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams returns a flag set whose flags write into the tagged
// fields of params, a pointer to a struct. Bad params are a programming
// error and panic.
//
//	var params struct {
//	    cli.JSONOutput
//	    Name string `flag:"name,n" desc:"organization name"`
//	}
//	cmd := &cli.Command{
//	    Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("create", &params) },
//	    Run:   func(args []string) error { /* params.Name is set */ },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags defines one flag per tagged field of params on flagSet.
//
// A field is bound when it carries flag:"long" or flag:"long,s". desc:"..."
// is the help text and default:"..." the default, parsed for the field's
// type (string, bool or int). Embedded structs contribute their own tagged
// fields.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	v := reflect.ValueOf(params)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}

	for _, spec := range collectFlags(v.Elem()) {
		if err := spec.define(flagSet); err != nil {
			return fmt.Errorf("field %s: %w", spec.field, err)
		}
	}
	return nil
}

// flagSpec is a tagged field waiting to be defined as a flag.
type flagSpec struct {
	field    string
	long     string
	short    string
	usage    string
	fallback string
	target   reflect.Value
}

func collectFlags(v reflect.Value) []flagSpec {
	var specs []flagSpec
	t := v.Type()
	for i := range t.NumField() {
		field, fv := t.Field(i), v.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			specs = append(specs, collectFlags(fv)...)
			continue
		}

		tag, ok := field.Tag.Lookup("flag")
		if !ok || tag == "" {
			continue
		}
		long, short, _ := strings.Cut(tag, ",")
		specs = append(specs, flagSpec{
			field:    field.Name,
			long:     long,
			short:    short,
			usage:    field.Tag.Get("desc"),
			fallback: field.Tag.Get("default"),
			target:   fv,
		})
	}
	return specs
}

func (s flagSpec) define(flagSet *pflag.FlagSet) error {
	switch ptr := s.target.Addr().Interface().(type) {
	case *string:
		flagSet.StringVarP(ptr, s.long, s.short, s.fallback, s.usage)
	case *bool:
		def, err := parseDefault(s.fallback, strconv.ParseBool)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", s.long, err)
		}
		flagSet.BoolVarP(ptr, s.long, s.short, def, s.usage)
	case *int:
		def, err := parseDefault(s.fallback, strconv.Atoi)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", s.long, err)
		}
		flagSet.IntVarP(ptr, s.long, s.short, def, s.usage)
	default:
		return fmt.Errorf("unsupported type %s for flag --%s", s.target.Type(), s.long)
	}
	return nil
}

// parseDefault parses raw with parse, or returns the zero value when raw
// is empty.
func parseDefault[T any](raw string, parse func(string) (T, error)) (T, error) {
	if raw == "" {
		var zero T
		return zero, nil
	}
	return parse(raw)
}
