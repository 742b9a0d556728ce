package main

import (
	"bytes"
	"fmt"

	language "github.com/hanpama/gqlkit/internal/language"
	schema "github.com/hanpama/gqlkit/internal/schema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPrintCmd(a *app) *subCommand {
	sc := newSubCommand(&cobra.Command{
		Use:   "print",
		Short: "Print a schema as SDL",
		Args:  cobra.NoArgs,
	})
	sc.Cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		s, err := loadSchema(sc.Conf.GetString("schema"))
		if err != nil {
			return err
		}
		text := schema.RenderWithOptions(s, schema.RenderOptions{
			OmitDescriptions: sc.Conf.GetBool("omit-descriptions"),
		})
		if sc.Conf.GetBool("ast") {
			if text, err = formatAST(s); err != nil {
				return err
			}
		}
		a.logger.Debug("printing schema", zap.Int("types", len(s.Types)))
		return writeOutput(cmd, sc.Conf.GetString("out"), text)
	}

	f := sc.Cmd.Flags()
	f.String("schema", "", "SDL file to read.")
	f.String("out", "", "Write to this file instead of stdout.")
	f.Bool("ast", false, "Print the schema document through the gqlparser formatter.")
	f.Bool("omit-descriptions", false, "Leave descriptions out of the rendered SDL.")
	return sc
}

// formatAST prints the schema document of s through the gqlparser formatter.
// Schemas without a parsed document get one synthesized from their SDL.
func formatAST(s *schema.Schema) (string, error) {
	doc, err := schema.FixAST(s, schema.FixASTOptions{SourceName: "gqlkit.graphql"}).AST()
	if err != nil {
		return "", fmt.Errorf("schema ast: %w", err)
	}
	var buf bytes.Buffer
	language.FormatSchemaDocument(&buf, doc)
	return buf.String(), nil
}
