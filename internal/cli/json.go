package cli

import (
	"encoding/json"
	"io"
	"reflect"
)

// JSONOutput is embedded in a command's parameter struct to add --json.
//
//	type listParams struct {
//	    cli.JSONOutput
//	    All bool `flag:"all,a" desc:"show every organization"`
//	}
//
//	if done, err := params.EmitJSON(stdout, summaries); done {
//	    return err
//	}
type JSONOutput struct {
	OutputJSON bool `json:"-" flag:"json" desc:"output as JSON"`
}

// EmitJSON writes result as indented JSON to w when --json is set and
// reports whether it did. Nil slices are written as [].
func (j *JSONOutput) EmitJSON(w io.Writer, result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	return true, WriteJSON(w, normalizeNilSlice(result))
}

// WriteJSON marshals value as indented JSON to w.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
