package funcs

import (
	"debug/dwarf"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"fmt"
	"log"
	"os"
	"text/template"

	"github.com/aodinokov/unitenum/pkg/dwarfenum"
	"github.com/aodinokov/unitenum/pkg/unitenum"
	"github.com/huandu/xstrings"
	"gopkg.in/yaml.v3"
)

func enumsFromDwarf(filename string, open func(string) (*dwarf.Data, func() error, error)) ([]*unitenum.RawType, error) {
	data, closeFn, err := open(filename)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return dwarfenum.FromData(data)
}

func openElf(filename string) (*dwarf.Data, func() error, error) {
	f, err := elf.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open elf %s: %v", filename, err)
	}
	data, err := f.DWARF()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("could not get DWARF from %s: %v", filename, err)
	}
	return data, f.Close, nil
}

func openPE(filename string) (*dwarf.Data, func() error, error) {
	f, err := pe.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open pe %s: %v", filename, err)
	}
	data, err := f.DWARF()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("could not get DWARF from %s: %v", filename, err)
	}
	return data, f.Close, nil
}

func openMacho(filename string) (*dwarf.Data, func() error, error) {
	f, err := macho.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open macho %s: %v", filename, err)
	}
	data, err := f.DWARF()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("could not get DWARF from %s: %v", filename, err)
	}
	return data, f.Close, nil
}

// enumDerive accepts a *unitenum.RawType or its unstructured form
func enumDerive(in interface{}) (map[string]interface{}, error) {
	raw, ok := in.(*unitenum.RawType)
	if !ok {
		var err error
		raw, err = unitenum.NewRawTypeFromUnstructured(in)
		if err != nil {
			return nil, err
		}
	}
	ts, err := unitenum.Derive(raw)
	if err != nil {
		return nil, err
	}
	return ts.ToUnstructured(), nil
}

// list of exported functions
var genericMap = map[string]interface{}{
	// front-ends
	"enumFromYaml": func(in string) ([]*unitenum.RawType, error) {
		return unitenum.NewRawTypesFromYamlBuffer([]byte(in))
	},
	"enumFromYamlFile": func(filename string) ([]*unitenum.RawType, error) {
		buf, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("could not read yaml %s: %v", filename, err)
		}
		return unitenum.NewRawTypesFromYamlBuffer(buf)
	},
	"enumFromUnstructured": unitenum.NewRawTypeFromUnstructured,
	"enumsFromElf": func(filename string) ([]*unitenum.RawType, error) {
		return enumsFromDwarf(filename, openElf)
	},
	"enumsFromPE": func(filename string) ([]*unitenum.RawType, error) {
		return enumsFromDwarf(filename, openPE)
	},
	"enumsFromMacho": func(filename string) ([]*unitenum.RawType, error) {
		return enumsFromDwarf(filename, openMacho)
	},

	// tables
	"enumDerive": enumDerive,
	"enumToYaml": func(in interface{}) (string, error) {
		buf, err := yaml.Marshal(in)
		if err != nil {
			return "", err
		}
		return string(buf), nil
	},

	// emitter helpers
	"enumGoType": func(repr string) (string, error) {
		ut, err := unitenum.ParseUnderlyingType(repr)
		if err != nil {
			return "", err
		}
		return ut.GoType()
	},
	"enumLocalName": xstrings.FirstRuneToLower,
	"enumSnakeName": xstrings.ToSnakeCase,
}

func AppendTemplateFuncMap(funcmap *template.FuncMap) {
	if funcmap == nil {
		return
	}
	if *funcmap == nil {
		*funcmap = template.FuncMap{}
	}
	for name, fn := range genericMap {
		if fn == nil {
			continue
		}
		if _, ok := (*funcmap)[name]; ok {
			log.Printf("funcmap already has %s, overriding", name)
		}
		(*funcmap)[name] = fn
	}
}
