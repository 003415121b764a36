package patterns

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// FromJSON extracts patterns with a gjson path. The path may resolve to a
// single string or to an array of strings; an empty path reads a top-level
// array.
//
//	["a+", "b*"]                               path ""
//	{"suite": {"patterns": ["a+"]}}            path "suite.patterns"
//	[{"re": "a+"}, {"re": "b*"}]               path "#.re"
func FromJSON(data []byte, path string) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decode JSON: invalid document")
	}
	if path == "" {
		path = "@this"
	}
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return nil, fmt.Errorf("JSON path %q matched nothing", path)
	}

	var list []string
	collect := func(v gjson.Result) error {
		if v.Type != gjson.String {
			return fmt.Errorf("JSON path %q: expected strings, found %s", path, v.Type)
		}
		if v.Str != "" {
			list = append(list, v.Str)
		}
		return nil
	}

	if result.IsArray() {
		var err error
		result.ForEach(func(_, v gjson.Result) bool {
			err = collect(v)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
	} else if err := collect(result); err != nil {
		return nil, err
	}
	return distinct(list), nil
}
