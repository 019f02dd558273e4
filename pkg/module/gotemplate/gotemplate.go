package gotemplate

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/aodinokov/unitenum/pkg/module"
	"github.com/aodinokov/unitenum/pkg/override"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// name of the subfolder with named templates of a module
const TemplatesDir = "templates"

type GoTemplateModuleSpec struct {
	module.SpecHeader `yaml:",inline"`
	Spec              struct {
		Include  []string               `json:",omitempty" yaml:",omitempty"` // modules to take named templates from
		Settings map[string]interface{} `json:",omitempty" yaml:",omitempty"` // template data, can be overridden
		Template *string                // the template itself to run
	}
}

func GetGoTemplateModuleSpec(buf []byte) (*GoTemplateModuleSpec, error) {
	spec := GoTemplateModuleSpec{}
	if err := yaml.Unmarshal(buf, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

type GoTemplateFactory struct {
	FuncMap              template.FuncMap
	EnableIncludeFn      bool // allowed to use include function
	EnableIncludeModules bool // allowed to use include modules
}

func DefaultGoTemplateFactory() *GoTemplateFactory {
	return &GoTemplateFactory{
		FuncMap:              sprig.TxtFuncMap(),
		EnableIncludeFn:      true,
		EnableIncludeModules: true,
	}
}

func (f *GoTemplateFactory) NewInstance(runner *module.Runner, path string, specFilename string) (module.Instance, error) {
	i := GoTemplateInstance{
		runner:       runner,
		path:         path,
		specFilename: specFilename,
		factory:      f,
	}
	if err := i.LoadSpec(); err != nil {
		return nil, err
	}
	return &i, nil
}

type GoTemplateInstance struct {
	runner       *module.Runner // to look up included modules
	factory      *GoTemplateFactory
	path         string
	specFilename string
	moduleSpec   *GoTemplateModuleSpec
}

func (i *GoTemplateInstance) LoadSpec() error {
	if i.moduleSpec != nil {
		return nil
	}
	moduleYamlPath := filepath.Join(i.path, i.specFilename)
	buf, err := os.ReadFile(moduleYamlPath)
	if err != nil {
		return err
	}
	moduleSpec, err := GetGoTemplateModuleSpec(buf)
	if err != nil {
		return fmt.Errorf("couldn't unmarshal %s: %v", moduleYamlPath, err)
	}
	i.moduleSpec = moduleSpec
	return nil
}

// loadTemplates parses every file under path/templates into tmpl
func (i *GoTemplateInstance) loadTemplates(tmpl *template.Template, path string) error {
	templatesPath := filepath.Join(path, TemplatesDir)
	info, err := os.Stat(templatesPath)
	if err != nil || !info.IsDir() {
		if path == i.path {
			// it's ok for the module itself not to have the folder
			return nil
		}
		return fmt.Errorf("couldn't include %s: no %s subdirectory", path, TemplatesDir)
	}
	return filepath.WalkDir(templatesPath, func(p string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.IsDir():
			return nil
		}
		_, err = tmpl.ParseFiles(p)
		return err
	})
}

func (i *GoTemplateInstance) includeModule(tmpl *template.Template, moduleName string) error {
	infos, err := i.runner.InfoByName(moduleName)
	if err != nil {
		return fmt.Errorf("couldn't get info about included module %s: %v", moduleName, err)
	}
	var errs *multierror.Error
	for _, info := range infos {
		if i.runner.Kinds[info.Kind] != i.factory {
			// not our kind - shouldn't even try
			continue
		}
		err := i.loadTemplates(tmpl, info.Path)
		if err == nil {
			return nil
		}
		errs = multierror.Append(errs, fmt.Errorf("path %s: %v", info.Path, err))
	}
	if errs == nil {
		return fmt.Errorf("wasn't able to find goTemplate module %s", moduleName)
	}
	return fmt.Errorf("wasn't able to load anything for module %s: %v", moduleName, errs)
}

func (i *GoTemplateInstance) Run(workDir string, overrides []string) ([]byte, error) {
	if err := i.LoadSpec(); err != nil {
		return nil, fmt.Errorf("wasn't able to load module: %v", err)
	}
	if i.moduleSpec.Spec.Template == nil {
		return nil, fmt.Errorf("can't run module without defined template")
	}
	if len(i.moduleSpec.Spec.Include) > 0 && !i.factory.EnableIncludeModules {
		return nil, fmt.Errorf("module %s uses include, but include feature is disabled", i.path)
	}

	tmpl := template.New(filepath.Join(i.path, i.specFilename))
	tmpl.Funcs(i.funcMap(tmpl))

	settings, err := override.MergeAll(i.moduleSpec.Spec.Settings, overrides)
	if err != nil {
		return nil, err
	}

	if _, err := tmpl.Parse(*i.moduleSpec.Spec.Template); err != nil {
		return nil, err
	}
	if err := i.loadTemplates(tmpl, i.path); err != nil {
		return nil, fmt.Errorf("couldn't load templates of module %s: %v", i.path, err)
	}
	for _, moduleName := range i.moduleSpec.Spec.Include {
		if err := i.includeModule(tmpl, moduleName); err != nil {
			return nil, err
		}
	}

	restore, err := enterWorkDir(workDir)
	if err != nil {
		return nil, err
	}
	defer restore()

	out := bytes.Buffer{}
	if err := tmpl.Execute(&out, settings); err != nil {
		return nil, fmt.Errorf("couldn't render %s: %v", i.path, err)
	}
	return out.Bytes(), nil
}

// funcMap is a per-run copy of the factory functions, so include can be
// bound to tmpl.
func (i *GoTemplateInstance) funcMap(tmpl *template.Template) template.FuncMap {
	fm := make(template.FuncMap, len(i.factory.FuncMap)+1)
	for name, fn := range i.factory.FuncMap {
		fm[name] = fn
	}
	if !i.factory.EnableIncludeFn {
		return fm
	}
	fm["include"] = func(name string, data interface{}) (string, error) {
		var sb strings.Builder
		err := tmpl.ExecuteTemplate(&sb, name, data)
		return sb.String(), err
	}
	return fm
}

// enterWorkDir switches to dir (if set) and returns a func going back.
func enterWorkDir(dir string) (func(), error) {
	if dir == "" {
		return func() {}, nil
	}
	prior, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("couldn't get workdir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("couldn't change workdir to %s: %v", dir, err)
	}
	return func() { os.Chdir(prior) }, nil
}
