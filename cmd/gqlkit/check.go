package main

import (
	"fmt"

	resolvers "github.com/hanpama/gqlkit/internal/resolvers"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newCheckCmd(a *app) *subCommand {
	sc := newSubCommand(&cobra.Command{
		Use:   "check",
		Short: "Merge a resolver manifest into a schema and report problems",
		Long: `check attaches the stub resolvers described by a manifest to a schema
and reports every problem found: unknown types or fields, misplaced
entries and abstract types without type resolution.`,
		Args: cobra.NoArgs,
	})
	sc.Cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		s, err := loadSchema(sc.Conf.GetString("schema"))
		if err != nil {
			return err
		}
		m, err := loadManifest(sc.Conf.GetString("resolvers"))
		if err != nil {
			return err
		}
		req, err := resolvers.ParseRequirement(sc.Conf.GetString("resolve-type"))
		if err != nil {
			return err
		}

		_, err = resolvers.AddResolversToSchema(s, m.resolverMap(s),
			resolvers.WithAllowResolversNotInSchema(sc.Conf.GetBool("allow-resolvers-not-in-schema")),
			resolvers.WithRequireResolversForResolveType(req),
			resolvers.WithUpdateResolversInPlace(sc.Conf.GetBool("in-place")),
			resolvers.WithInheritResolversFromInterfaces(sc.Conf.GetBool("inherit")),
			resolvers.WithLogger(a.logger),
			resolvers.WithContext(cmd.Context()),
		)
		if err != nil {
			errs := multierr.Errors(err)
			for _, e := range errs {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return fmt.Errorf("%d problem(s) found", len(errs))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d types\n", len(m.Types))
		return nil
	}

	f := sc.Cmd.Flags()
	f.String("schema", "", "SDL file to read.")
	f.String("resolvers", "", "YAML resolver manifest.")
	f.Bool("allow-resolvers-not-in-schema", false, "Ignore manifest entries the schema does not define.")
	f.String("resolve-type", "warn", "Abstract types without type resolution: warn, error or ignore.")
	f.Bool("in-place", false, "Attach resolvers to the parsed schema instead of rebuilding it.")
	f.Bool("inherit", false, "Copy interface field resolvers to implementing types.")
	return sc
}
