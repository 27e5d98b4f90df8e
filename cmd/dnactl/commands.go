package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hcdna/dna-go"
	"github.com/hcdna/dna-go/schema"
)

func newInitCommand() *cobra.Command {
	var (
		output string
		name   string
		unique bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default DNA descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := dna.New()
			if unique {
				d = dna.NewUnique()
			}
			d.Name = name

			out, err := d.ToJSON()
			if err != nil {
				return err
			}
			out = append(out, '\n')

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return os.WriteFile(output, out, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&name, "name", "", "descriptor name")
	cmd.Flags().BoolVar(&unique, "unique", false, "generate a fresh uuid")

	return cmd
}

func newValidateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Parse and validate a DNA descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDescriptor(args[0])
			if err != nil {
				return err
			}

			var opts []dna.ValidateOption
			if strict {
				opts = append(opts,
					dna.WithRejectUnknownFields(),
					dna.WithRequireSupportedSpecVersion(),
				)
			}
			if err := d.Validate(opts...); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (dna_spec_version %s)\n", args[0], d.DnaSpecVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "reject unknown fields and unsupported spec versions")

	return cmd
}

func newFmtCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Canonicalize a DNA descriptor (sorted keys, compact)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDescriptor(args[0])
			if err != nil {
				return err
			}
			out, err := d.ToJSON()
			if err != nil {
				return err
			}
			out = append(out, '\n')

			if write {
				return os.WriteFile(args[0], out, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place")

	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Summarize a DNA descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDescriptor(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name:             %s\n", d.Name)
			fmt.Fprintf(out, "dna_spec_version: %s\n", d.DnaSpecVersion)
			if d.Version != "" {
				fmt.Fprintf(out, "version:          %s\n", d.Version)
			}
			if d.UUID != "" {
				fmt.Fprintf(out, "uuid:             %s\n", d.UUID)
			}
			if d.Description != "" {
				fmt.Fprintf(out, "description:      %s\n", d.Description)
			}
			for _, z := range d.Zomes {
				fmt.Fprintf(out, "zome %s: %d capabilities\n", z.Name, len(z.Capabilities))
			}
			return nil
		},
	}
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print a JSON Schema for the DNA document shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := schema.Generate()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newConvertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a DNA descriptor between JSON and YAML",
		Long: `Convert reads a descriptor in the format implied by FILE's extension
(.json, .yaml or .yml) and writes the other format. The document is parsed
through the descriptor model, so conversion also canonicalizes and checks
well-formedness.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			var (
				out []byte
				err error
			)
			switch strings.ToLower(filepath.Ext(in)) {
			case ".yaml", ".yml":
				out, err = yamlToJSON(in)
			case ".json":
				out, err = jsonToYAML(in)
			default:
				return fmt.Errorf("unrecognized extension %q (want .json, .yaml or .yml)", filepath.Ext(in))
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return os.WriteFile(output, out, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func readDescriptor(path string) (*dna.Dna, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return dna.FromJSON(data)
}

func yamlToJSON(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	d, err := dna.FromJSON(raw)
	if err != nil {
		return nil, err
	}
	out, err := d.ToJSON()
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func jsonToYAML(path string) ([]byte, error) {
	d, err := readDescriptor(path)
	if err != nil {
		return nil, err
	}
	canonical, err := d.ToJSON()
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(canonical, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}
