package main

import (
	"encoding/json"
	"fmt"
	"os"

	executor "github.com/hanpama/gqlkit/internal/executor"
	introspection "github.com/hanpama/gqlkit/internal/introspection"
	resolvers "github.com/hanpama/gqlkit/internal/resolvers"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newQueryCmd(a *app) *subCommand {
	sc := newSubCommand(&cobra.Command{
		Use:   "query",
		Short: "Execute an operation against a schema with stub resolvers",
		Args:  cobra.NoArgs,
	})
	sc.Cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		s, err := loadSchema(sc.Conf.GetString("schema"))
		if err != nil {
			return err
		}
		rm := resolvers.ResolverMap{}
		if path := sc.Conf.GetString("resolvers"); path != "" {
			m, err := loadManifest(path)
			if err != nil {
				return err
			}
			rm = m.resolverMap(s)
		}
		s, err = resolvers.AddResolversToSchema(s, rm,
			resolvers.WithRequireResolversForResolveType(resolvers.RequireIgnore),
			resolvers.WithLogger(a.logger),
			resolvers.WithContext(cmd.Context()),
		)
		if err != nil {
			return err
		}
		if sc.Conf.GetBool("introspection") {
			s = introspection.Extend(s)
		}

		query, err := readQuery(sc.Conf.GetString("query"))
		if err != nil {
			return err
		}
		var vars map[string]any
		if v := sc.Conf.GetString("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &vars); err != nil {
				return fmt.Errorf("parse --variables: %w", err)
			}
		}

		res := executor.Execute(cmd.Context(), executor.Params{
			Schema:        s,
			Query:         query,
			Variables:     vars,
			OperationName: sc.Conf.GetString("operation"),
		})
		if len(res.Errors) > 0 {
			a.logger.Info("operation returned errors", zap.Int("errors", len(res.Errors)))
		}
		return writeResult(cmd, res)
	}

	f := sc.Cmd.Flags()
	f.String("schema", "", "SDL file to read.")
	f.String("resolvers", "", "YAML resolver manifest.")
	f.String("query", "", "Operation document, or @file to read it from a file.")
	f.String("variables", "", "Variables as a JSON object.")
	f.String("operation", "", "Operation to run when the document has several.")
	f.Bool("introspection", true, "Answer __schema and __type fields.")
	return sc
}

func readQuery(q string) (string, error) {
	if q == "" {
		return "", fmt.Errorf("--query is required")
	}
	if q[0] != '@' {
		return q, nil
	}
	b, err := os.ReadFile(q[1:])
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeResult(cmd *cobra.Command, res *executor.ExecutionResult) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
