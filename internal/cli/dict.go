package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cognicore/textproc/pkg/textproc/config"
	"github.com/cognicore/textproc/pkg/textproc/store"
	"github.com/cognicore/textproc/pkg/textproc/store/sqlite"
)

// defaultStore is the dictionary database used when neither the config
// nor --store names one.
const defaultStore = "textproc.db"

var (
	dictTagType       string
	dictTagValue      string
	dictCaseSensitive bool
	dictExactMatch    bool
	dictMatcher       string
)

// dictCmd represents the dict command
var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage stored dictionaries",
	Long: `Manage the dictionaries kept in the dictionary database.

Stored dictionaries are used by "textproc tag" together with the
dictionaries listed in the config file.`,
}

var dictImportCmd = &cobra.Command{
	Use:   "import <name> <file>",
	Short: "Import entities from a file into a dictionary",
	Long: `Create or update a dictionary and add the entities listed in a file,
one per line. Blank lines and lines starting with # are skipped. Entities
already in the dictionary are not added twice.

Example:
  textproc dict import cities cities.txt --tag-type NE --tag-value LOCATION`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
			src := store.Source{
				Name:          args[0],
				TagType:       dictTagType,
				TagValue:      dictTagValue,
				CaseSensitive: dictCaseSensitive,
				ExactMatch:    dictExactMatch,
				Matcher:       dictMatcher,
			}
			return importDictionary(ctx, st, src, args[1], cmd.OutOrStdout())
		})
	},
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored dictionaries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
			return listDictionaries(ctx, st, cmd.OutOrStdout())
		})
	},
}

var dictDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored dictionary and its entities",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
			if err := st.DeleteSource(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted dictionary %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dictCmd)
	dictCmd.AddCommand(dictImportCmd, dictListCmd, dictDeleteCmd)

	dictImportCmd.Flags().StringVar(&dictTagType, "tag-type", "", "tag type, e.g. NE or POS (required)")
	dictImportCmd.Flags().StringVar(&dictTagValue, "tag-value", "", "tag value, e.g. LOCATION (required)")
	dictImportCmd.Flags().BoolVar(&dictCaseSensitive, "case-sensitive", false, "match entities case sensitively")
	dictImportCmd.Flags().BoolVar(&dictExactMatch, "exact-match", true, "match whole words only")
	dictImportCmd.Flags().StringVar(&dictMatcher, "matcher", "", "word matcher (exact, fold, contains, normalized, stem, singular, lexicon)")
	_ = dictImportCmd.MarkFlagRequired("tag-type")
	_ = dictImportCmd.MarkFlagRequired("tag-value")
}

// withStore opens the configured dictionary database for the duration of fn.
func withStore(ctx context.Context, fn func(context.Context, store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := defaultStore
	if cfg.Store != "" {
		path = cfg.Path(cfg.Store)
	}

	st, err := sqlite.OpenSQLite(ctx, path)
	if err != nil {
		return fmt.Errorf("open store %s: %w", path, err)
	}
	defer st.Close()
	return fn(ctx, st)
}

func importDictionary(ctx context.Context, st store.Store, src store.Source, file string, out io.Writer) error {
	entities, err := config.LoadEntities(file)
	if err != nil {
		return err
	}
	saved, err := st.UpsertSource(ctx, src)
	if err != nil {
		return err
	}
	added, err := st.AddEntities(ctx, saved.Name, entities)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %d of %d entities into %s (%s)\n", added, len(entities), saved.Name, saved.ID)
	return nil
}

func listDictionaries(ctx context.Context, st store.Store, out io.Writer) error {
	sources, err := st.Sources(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTAG\tMATCHER\tCASE\tENTITIES\tCREATED")
	for _, src := range sources {
		entities, err := st.Entities(ctx, src.Name)
		if err != nil {
			return err
		}
		matcher := src.Matcher
		if matcher == "" {
			matcher = "default"
		}
		caseMode := "fold"
		if src.CaseSensitive {
			caseMode = "sensitive"
		}
		fmt.Fprintf(w, "%s\t%s(%s)\t%s\t%s\t%d\t%s\n",
			src.Name, src.TagValue, src.TagType, matcher, caseMode, len(entities),
			src.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
