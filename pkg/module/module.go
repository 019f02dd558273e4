package module

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

/*
A module is a folder with module.yaml in it. The header says which Kind
runs the module; the Kind decides how to read the rest of the spec.
Emitters for enumeration tables are modules: e.g. a goTemplate module that
turns enum descriptions into accessor code.

	runner := module.Runner{
		Kinds: map[string]module.Kind{"goTemplate": gotemplate.DefaultGoTemplateFactory()},
		Paths: module.DefaultPaths(),
	}
	instance, err := runner.NewInstance("go-accessors", "")
	out, err := instance.Run(workDir, overrides)
*/

const ApiVersion = "github.com/aodinokov/unitenum/v1"
const DefaultSpecRootName = "modules"
const SpecFilename = "module.yaml"

type SpecHeader struct {
	ApiVersion string `json:"apiVersion" yaml:"apiVersion"`
	Kind       string // goTemplate, etc

	Metadata struct {
		Name        string
		Description string `json:",omitempty" yaml:",omitempty"`
	}
}

func GetSpecHeader(buf []byte) (*SpecHeader, error) {
	spec := SpecHeader{}
	if err := yaml.Unmarshal(buf, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

type Instance interface {
	Run(workDir string, overrides []string) ([]byte, error)
}

type Kind interface {
	NewInstance(runner *Runner, path string, specFilename string) (Instance, error)
}

// Info points to a module found on one of the lookup paths.
type Info struct {
	Path string
	Kind string
}

type Runner struct {
	Kinds map[string]Kind
	Paths []string // lookup paths, the first match wins
}

func DefaultPaths() []string {
	return []string{filepath.FromSlash("./" + DefaultSpecRootName)}
}

// a module name is a single path element
func nameIsIllegal(name string) bool {
	return strings.ContainsAny(name, `/\`) || name == ".." || name == "."
}

func (mr *Runner) GetSpecHeader(moduleYamlPath string) (*SpecHeader, error) {
	buf, err := os.ReadFile(moduleYamlPath)
	if err != nil {
		return nil, err
	}
	spec, err := GetSpecHeader(buf)
	if err != nil {
		return nil, fmt.Errorf("found %s, but couldn't parse that: %v", moduleYamlPath, err)
	}
	return spec, nil
}

// InfoByName lists all the places where module name is found with a known kind.
func (mr *Runner) InfoByName(name string) ([]*Info, error) {
	if nameIsIllegal(name) {
		return nil, fmt.Errorf("name %s is illegal", name)
	}
	infos := []*Info{}
	for _, path := range mr.Paths {
		modulePath := filepath.Join(path, name)
		spec, err := mr.GetSpecHeader(filepath.Join(modulePath, SpecFilename))
		if err != nil {
			log.Printf("%v trying next path", err)
			continue
		}
		if _, ok := mr.Kinds[spec.Kind]; !ok {
			log.Printf("found %s, but couldn't find kind %s.. trying next path", modulePath, spec.Kind)
			continue
		}
		infos = append(infos, &Info{Path: modulePath, Kind: spec.Kind})
	}
	return infos, nil
}

func (mr *Runner) newInstanceByInfo(info *Info, specFilename string) (Instance, error) {
	kind, ok := mr.Kinds[info.Kind]
	if !ok {
		return nil, fmt.Errorf("couldn't find kind %s", info.Kind)
	}
	return kind.NewInstance(mr, info.Path, specFilename)
}

// NewInstance returns the first module that loads.
// With an empty name the module is the folder of specFilename.
// Otherwise the module is looked up on Paths and specFilename
// (module.yaml by default) is taken from that folder.
func (mr *Runner) NewInstance(name string, specFilename string) (Instance, error) {
	if name == "" {
		if specFilename == "" {
			return nil, fmt.Errorf("either module name or spec filename must be set")
		}
		spec, err := mr.GetSpecHeader(specFilename)
		if err != nil {
			return nil, err
		}
		info := Info{Path: filepath.Dir(specFilename), Kind: spec.Kind}
		return mr.newInstanceByInfo(&info, filepath.Base(specFilename))
	}

	if nameIsIllegal(name) {
		return nil, fmt.Errorf("name %s is illegal", name)
	}
	if specFilename == "" {
		specFilename = SpecFilename
	}

	infos, err := mr.InfoByName(name)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("wasn't able to find module %s", name)
	}

	var errs *multierror.Error
	for _, info := range infos {
		instance, err := mr.newInstanceByInfo(info, specFilename)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s (%s): %v", info.Path, info.Kind, err))
			continue
		}
		return instance, nil
	}
	return nil, fmt.Errorf("wasn't able to load module %s specFilename %s: %v", name, specFilename, errs.ErrorOrNil())
}
