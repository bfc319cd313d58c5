package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restitch/restitch/generator"
	"github.com/restitch/restitch/spec"
)

func newGenerateCmd() *cobra.Command {
	var (
		output      string
		packageName string
		clientName  string
		strict      bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "generate <model-file>",
		Short: "Generate Go records and an HTTP client from a model document",
		Example: `  restitch generate -o ./api petstore.yaml
  restitch generate -o ./api -p petapi --client-name PetClient petstore.yaml
  restitch generate petstore.yaml  # print generated source to stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := spec.LoadFile(args[0])
			if err != nil {
				return err
			}

			var opts []generator.Option
			if packageName != "" {
				opts = append(opts, generator.WithPackageName(packageName))
			}
			if clientName != "" {
				opts = append(opts, generator.WithClientName(clientName))
			}

			result, err := generator.Generate(doc, opts...)
			if err != nil {
				return err
			}

			if !quiet {
				for _, issue := range result.Issues {
					if issue.Path != "" {
						fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s: %s\n", issue.Severity, issue.Path, issue.Message)
					} else {
						fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", issue.Severity, issue.Message)
					}
				}
			}

			if output != "" {
				if err := result.WriteFiles(output); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Generated %d types and %d operations into %d files in %s\n",
					result.GeneratedTypes, result.GeneratedOperations, len(result.Files), output)
			} else {
				for _, f := range result.Files {
					fmt.Fprintf(cmd.OutOrStdout(), "// ==== %s ====\n%s\n", f.Name, f.Content)
				}
			}

			if !result.Success {
				return fmt.Errorf("generation failed with %d critical issues", result.CriticalCount)
			}
			if strict && result.WarningCount > 0 {
				return fmt.Errorf("generation completed with %d warnings (strict mode)", result.WarningCount)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output directory for generated files; omit to print to stdout")
	flags.StringVarP(&packageName, "package", "p", "", "Go package name for generated code (default: api)")
	flags.StringVar(&clientName, "client-name", "", "Go type name for the generated client (default: Client)")
	flags.BoolVar(&strict, "strict", false, "fail when generation produces warnings")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress issue reporting")

	return cmd
}
