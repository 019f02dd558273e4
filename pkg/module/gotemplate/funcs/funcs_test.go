package funcs

import (
	"bytes"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, text string, data interface{}) (string, error) {
	t.Helper()
	funcMap := template.FuncMap{}
	AppendTemplateFuncMap(&funcMap)
	tmpl, err := template.New("test").Funcs(funcMap).Parse(text)
	require.NoError(t, err)
	out := bytes.Buffer{}
	err = tmpl.Execute(&out, data)
	return out.String(), err
}

func TestEnumFuncs(t *testing.T) {
	tcs := []struct {
		text        string
		data        interface{}
		expected    string
		expectedErr bool
	}{
		{
			text:     `{{ range enumFromYamlFile "testdata/enums.yaml" }}{{ $t := enumDerive . }}{{ $t.name }}:{{ $t.len }};{{ end }}`,
			expected: "Color:3;Status:2;",
		},
		{
			text:     `{{ $t := enumDerive . }}{{ range $t.members }}{{ .name }}={{ .discriminant }} {{ end }}`,
			data:     map[string]interface{}{"name": "AB", "repr": "u8", "members": []interface{}{map[string]interface{}{"name": "A"}, map[string]interface{}{"name": "B"}}},
			expected: "A=0 B=1 ",
		},
		{
			text:     `{{ range enumFromYaml . }}{{ (enumDerive .).underlying }}{{ end }}`,
			data:     "enums:\n  - name: X\n    members: [{name: A}]\n",
			expected: "i32",
		},
		{
			text:     `{{ enumGoType "u16" }} {{ enumGoType "i64" }}`,
			expected: "uint16 int64",
		},
		{
			text:     `{{ enumLocalName "Color" }} {{ enumSnakeName "StatusCode" }}`,
			expected: "color status_code",
		},
		{
			text:        `{{ enumGoType "u128" }}`,
			expectedErr: true,
		},
		{
			text:        `{{ enumDerive . }}`,
			data:        map[string]interface{}{"name": "T", "members": []interface{}{map[string]interface{}{"name": "A", "tag": 1}, map[string]interface{}{"name": "B", "tag": 1}}},
			expectedErr: true,
		},
		{
			text:        `{{ enumsFromElf "testdata/nonexistent.elf" }}`,
			expectedErr: true,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.text, func(t *testing.T) {
			out, err := execute(t, tc.text, tc.data)
			if (err != nil) != tc.expectedErr {
				t.Fatalf("unexpected err: %v, expected %v", err, tc.expectedErr)
			}
			if err == nil {
				assert.Equal(t, tc.expected, out)
			}
		})
	}
}

func TestAppendTemplateFuncMap(t *testing.T) {
	AppendTemplateFuncMap(nil)

	var funcMap template.FuncMap
	AppendTemplateFuncMap(&funcMap)
	assert.Contains(t, funcMap, "enumDerive")
	assert.Contains(t, funcMap, "enumsFromElf")
}
