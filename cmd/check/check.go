package check

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aodinokov/unitenum/pkg/unitenum"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ErrRejected is returned when one of the descriptions didn't pass.
var ErrRejected = errors.New("description rejected")

func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printDiagnostic(w io.Writer, filename string, err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	if !colorEnabled(w) {
		red = fmt.Sprint
	}
	var diag *unitenum.Diagnostic
	if errors.As(err, &diag) {
		fmt.Fprintf(w, "%s: %s %s\n", filename, red(diag.Kind.String()), strings.TrimPrefix(diag.Error(), diag.Kind.String()+" "))
		return
	}
	fmt.Fprintf(w, "%s: %s\n", filename, red(err.Error()))
}

type result struct {
	File   string                   `json:"file" yaml:"file"`
	Tables []map[string]interface{} `json:"tables" yaml:"tables"`
}

func marshal(format string, results []result) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "yaml":
		return yaml.Marshal(results)
	case "json":
		return json.MarshalIndent(results, "", "  ")
	}
	return nil, fmt.Errorf("unknown output format %s", format)
}

// Check derives tables for every enum in every file. It stops at the
// first rejected description.
func Check(stdout, stderr io.Writer, filenames []string, format string) error {
	results := []result{}
	for _, filename := range filenames {
		buf, err := os.ReadFile(filename)
		if err != nil {
			return err
		}
		raws, err := unitenum.NewRawTypesFromYamlBuffer(buf)
		if err != nil {
			return fmt.Errorf("couldn't parse %s: %v", filename, err)
		}
		r := result{File: filename, Tables: []map[string]interface{}{}}
		for _, raw := range raws {
			ts, err := unitenum.Derive(raw)
			if err != nil {
				printDiagnostic(stderr, filename, err)
				return fmt.Errorf("%w: %v", ErrRejected, err)
			}
			r.Tables = append(r.Tables, ts.ToUnstructured())
		}
		results = append(results, r)
	}
	out, err := marshal(format, results)
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func NewCommand() *cobra.Command {
	format := ""
	c := &cobra.Command{
		Use:   "check file.yaml [file.yaml...]",
		Short: "validates enum descriptions and prints the derived tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := Check(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, format)
			if errors.Is(err, ErrRejected) {
				// the diagnostic is already printed
				cmd.SilenceErrors = true
			}
			return err
		},
	}
	c.Flags().StringVarP(&format, "output", "o", "yaml", "output format: yaml or json")
	return c
}
