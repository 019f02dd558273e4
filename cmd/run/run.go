package run

import (
	"fmt"

	"github.com/aodinokov/unitenum/pkg/module"
	"github.com/aodinokov/unitenum/pkg/module/gotemplate"
	"github.com/aodinokov/unitenum/pkg/module/gotemplate/funcs"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	// create factory and adjust by added enum functions
	gotemplateFactory := gotemplate.DefaultGoTemplateFactory()
	funcs.AppendTemplateFuncMap(&gotemplateFactory.FuncMap)

	runner := module.Runner{
		Paths: []string{},
		Kinds: map[string]module.Kind{"goTemplate": gotemplateFactory},
	}

	specFilename := ""
	workDir := ""
	overrides := []string{}

	c := &cobra.Command{
		Use:   "run [module]",
		Short: "runs an emitter module and prints its output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moduleName := ""
			if len(args) > 0 {
				moduleName = args[0]
			}
			if moduleName == "" && specFilename == "" {
				return fmt.Errorf("either module name or --specFilename is required")
			}

			if len(runner.Paths) == 0 {
				runner.Paths = module.DefaultPaths()
			}

			instance, err := runner.NewInstance(moduleName, specFilename)
			if err != nil {
				return err
			}

			output, err := instance.Run(workDir, overrides)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", string(output))
			return nil
		},
	}

	c.Flags().StringVarP(&specFilename, "specFilename", "f", "", "module spec file to run (module name isn't needed then)")
	c.Flags().StringArrayVarP(&overrides, "settingsOverride", "s", []string{}, "applies settings overrides to the module")
	c.Flags().StringArrayVarP(&runner.Paths, "ModulePath", "M", []string{}, "adds a searchpath for modules")
	c.Flags().StringVarP(&workDir, "changeWorkDir", "C", "", "Change working dir prior module execution")

	return c
}
