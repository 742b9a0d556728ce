package main

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	schema "github.com/hanpama/gqlkit/internal/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newFieldsCmd(a *app) *subCommand {
	sc := newSubCommand(&cobra.Command{
		Use:   "fields",
		Short: "Select or remove object fields by name pattern",
	})
	sc.Cmd.AddCommand(newFieldsSelectCmd(a, sc.Conf), newFieldsRemoveCmd(a, sc.Conf))

	pf := sc.Cmd.PersistentFlags()
	pf.String("schema", "", "SDL file to read.")
	pf.String("type", "Query", "Object type whose fields are matched.")
	pf.String("match", "*", "Glob matched against field names.")
	return sc
}

func newFieldsSelectCmd(a *app, conf *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "select",
		Short: "List the fields that match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, typeName, pred, err := fieldsInput(conf)
			if err != nil {
				return err
			}
			matched := schema.SelectObjectFields(s, typeName, pred)
			a.logger.Debug("selected fields", zap.String("type", typeName), zap.Strings("fields", matched.Names()))

			var b strings.Builder
			for _, f := range matched {
				fmt.Fprintf(&b, "%s: %s\n", f.Name, f.Type)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
}

func newFieldsRemoveCmd(a *app, conf *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Print the schema without the fields that match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, typeName, pred, err := fieldsInput(conf)
			if err != nil {
				return err
			}
			out, removed := schema.RemoveObjectFields(s, typeName, pred)
			a.logger.Debug("removed fields", zap.String("type", typeName), zap.Strings("fields", removed.Names()))
			text := schema.Render(out)
			if conf.GetBool("ast") {
				if text, err = formatAST(out); err != nil {
					return err
				}
			}
			return writeOutput(cmd, conf.GetString("out"), text)
		},
	}
	cmd.Flags().String("out", "", "Write to this file instead of stdout.")
	cmd.Flags().Bool("ast", false, "Print the resulting schema document through the gqlparser formatter.")
	bindConf(conf, cmd.Flags())
	return cmd
}

func fieldsInput(conf *viper.Viper) (*schema.Schema, string, schema.FieldPredicate, error) {
	s, err := loadSchema(conf.GetString("schema"))
	if err != nil {
		return nil, "", nil, err
	}
	typeName := conf.GetString("type")
	t := s.Types[typeName]
	if t == nil || t.Kind != schema.TypeKindObject {
		return nil, "", nil, fmt.Errorf("%q is not an object type", typeName)
	}
	pattern := conf.GetString("match")
	if !doublestar.ValidatePattern(pattern) {
		return nil, "", nil, fmt.Errorf("invalid --match pattern %q", pattern)
	}
	pred := func(name string, _ *schema.Field) bool {
		ok, _ := doublestar.Match(pattern, name)
		return ok
	}
	return s, typeName, pred, nil
}
