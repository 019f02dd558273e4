package override

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mitchellh/copystructure"
	"gopkg.in/yaml.v3"
)

// FilePrefix makes Parse read the override from a file.
const FilePrefix = "--file:"

// Parse converts the string representation of an override:
// json if it starts with '{', yaml otherwise, or the content of the
// file if prefixed with --file:
func Parse(override string) (map[string]interface{}, error) {
	if strings.HasPrefix(override, FilePrefix) {
		buf, err := os.ReadFile(strings.TrimPrefix(override, FilePrefix))
		if err != nil {
			return nil, err
		}
		override = string(buf)
	}

	out := map[string]interface{}{}
	if strings.HasPrefix(strings.TrimSpace(override), "{") {
		if err := json.Unmarshal([]byte(override), &out); err != nil {
			return nil, fmt.Errorf("couldn't unmarshal json override %s: %v", override, err)
		}
		return out, nil
	}
	if err := yaml.Unmarshal([]byte(override), &out); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal yaml override %s: %v", override, err)
	}
	return out, nil
}

// MergeAll applies overrides one after another on top of in.
// in isn't modified.
func MergeAll(in map[string]interface{}, overrides []string) (map[string]interface{}, error) {
	out, err := deepCopy(in)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		top, err := Parse(o)
		if err != nil {
			return nil, err
		}
		out, err = Merge(out, top)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Merge returns base with top merged in, the way helm coalesces values:
// tables are merged key by key, everything else (lists, leaves) coming
// from top replaces the base value. Neither argument is modified.
func Merge(base, top map[string]interface{}) (map[string]interface{}, error) {
	out, err := deepCopy(top)
	if err != nil {
		return nil, err
	}
	b, err := deepCopy(base)
	if err != nil {
		return nil, err
	}
	return mergeTables(out, b), nil
}

func deepCopy(in map[string]interface{}) (map[string]interface{}, error) {
	if in == nil {
		return map[string]interface{}{}, nil
	}
	c, err := copystructure.Copy(in)
	if err != nil {
		return nil, fmt.Errorf("unable to copy values, err: %s", err)
	}
	out, ok := c.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unable to convert values copy to values type")
	}
	return out, nil
}

func isTable(v interface{}) bool {
	_, ok := v.(map[string]interface{})
	return ok
}

// mergeTables fills dst with what's missing from src. dst wins.
func mergeTables(dst, src map[string]interface{}) map[string]interface{} {
	for key, val := range src {
		dv, ok := dst[key]
		switch {
		case !ok:
			dst[key] = val
		case isTable(val) && isTable(dv):
			mergeTables(dv.(map[string]interface{}), val.(map[string]interface{}))
		case isTable(val) && dv != nil:
			log.Printf("warning: cannot overwrite table with non table for %s (%v)", key, dv)
		case isTable(dv) && val != nil:
			log.Printf("warning: destination for %s is a table. Ignoring non-table value (%v)", key, val)
		}
	}
	return dst
}
