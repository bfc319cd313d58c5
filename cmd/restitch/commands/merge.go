package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/restitch/restitch/internal/fileutil"
	"github.com/restitch/restitch/merger"
	"github.com/restitch/restitch/spec"
)

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge fresh model fragments into existing Go source",
		Long:  "Merge patches existing generated source with the pieces a newer model document adds, leaving every byte it does not need to touch alone.",
	}
	cmd.AddCommand(newMergeDtoCmd())
	cmd.AddCommand(newMergeAPICmd())
	return cmd
}

func newMergeDtoCmd() *cobra.Command {
	var (
		modelPath  string
		schemaName string
		write      bool
	)

	cmd := &cobra.Command{
		Use:   "dto <file.go>",
		Short: "Append missing struct fields from a component schema",
		Example: `  restitch merge dto --model petstore.yaml --schema Pet types.go
  restitch merge dto --model petstore.yaml --schema Pet -w types.go  # rewrite in place`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := spec.LoadFile(modelPath)
			if err != nil {
				return err
			}
			schema := doc.Components.Schema(schemaName)
			if schema == nil {
				return fmt.Errorf("schema %q not found in components", schemaName)
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			patched, err := merger.MergeDto(string(src), schema)
			if err != nil {
				return err
			}
			return finishMerge(cmd, args[0], string(src), patched, write)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&modelPath, "model", "m", "", "model document to merge from (required)")
	flags.StringVarP(&schemaName, "schema", "s", "", "component schema to merge (required)")
	flags.BoolVarP(&write, "write", "w", false, "rewrite the source file instead of printing to stdout")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func newMergeAPICmd() *cobra.Command {
	var (
		modelPath string
		write     bool
	)

	cmd := &cobra.Command{
		Use:   "api <file.go>",
		Short: "Append missing client methods and interface entries",
		Example: `  restitch merge api --model petstore.yaml client.go
  restitch merge api --model petstore.yaml -w client.go  # rewrite in place`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := spec.LoadFile(modelPath)
			if err != nil {
				return err
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			patched, err := merger.MergeAPI(string(src), spec.FlattenAll(doc, nil))
			if err != nil {
				return err
			}
			return finishMerge(cmd, args[0], string(src), patched, write)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&modelPath, "model", "m", "", "model document to merge from (required)")
	flags.BoolVarP(&write, "write", "w", false, "rewrite the source file instead of printing to stdout")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

// finishMerge writes the patched source in place or prints it to stdout.
func finishMerge(cmd *cobra.Command, path, original, patched string, write bool) error {
	if !write {
		fmt.Fprint(cmd.OutOrStdout(), patched)
		return nil
	}
	if patched == original {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s unchanged\n", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(patched), fileutil.ReadableByAll); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s patched\n", path)
	return nil
}
