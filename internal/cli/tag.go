package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/cognicore/textproc/pkg/textproc/config"
	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/preprocess"
	"github.com/cognicore/textproc/pkg/textproc/tagging"
)

var (
	tagFilterStopwords bool
	tagCase            string
	tagLanguage        string
	tagTitleLine       bool
	tagNoColor         bool
)

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:   "tag [files...]",
	Short: "Tag entities in text files",
	Long: `Tag entities in plain text files using the configured dictionaries.

Files ending in .gz are decompressed. Without files, or with "-", the text
is read from standard input. Each sentence is printed on its own line with
tagged terms highlighted.

Examples:
  textproc tag article.txt
  textproc tag --filter-stopwords --case lower corpus/*.txt.gz
  cat notes.txt | textproc tag --workers 2`,
	RunE: runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)

	tagCmd.Flags().BoolVar(&tagFilterStopwords, "filter-stopwords", false, "drop stopwords that are not part of an entity")
	tagCmd.Flags().StringVar(&tagCase, "case", "", "convert untagged terms to upper or lower case")
	tagCmd.Flags().StringVar(&tagLanguage, "language", "en", "language used for case conversion (BCP 47)")
	tagCmd.Flags().BoolVar(&tagTitleLine, "title", false, "treat the first line of each file as its title")
	tagCmd.Flags().BoolVar(&tagNoColor, "no-color", false, "disable colored output")
}

// tagOptions are the per-run settings of the tag command
type tagOptions struct {
	filterStopwords bool
	caseMode        string
	language        string
	titleLine       bool
}

func runTag(cmd *cobra.Command, args []string) error {
	if tagNoColor {
		color.NoColor = true
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := tagOptions{
		filterStopwords: tagFilterStopwords,
		caseMode:        tagCase,
		language:        tagLanguage,
		titleLine:       tagTitleLine,
	}
	if len(args) == 0 {
		args = []string{stdinName}
	}
	return tagFiles(ctx, cfg, args, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// tagFiles loads the components described by cfg, tags every file and
// writes the rendered documents to out. Per-document failures are reported
// on errOut; the returned error counts them.
func tagFiles(ctx context.Context, cfg *config.Config, paths []string, opts tagOptions, out, errOut io.Writer) error {
	comp, err := (&config.Loader{Config: cfg}).Load(ctx)
	if err != nil {
		return err
	}

	pre, err := buildPreprocessor(comp, opts)
	if err != nil {
		return err
	}

	docs := make([]*data.Document, len(paths))
	for i, path := range paths {
		doc, err := readDocument(comp.Tokenizer, path, opts.titleLine)
		if err != nil {
			return err
		}
		docs[i] = doc
	}

	results, err := tagging.TagDocuments(ctx, tagging.BatchConfig{
		Workers: comp.Workers,
		Tagger:  comp.Tagger,
	}, docs)
	if err != nil {
		return err
	}

	failed, entities := 0, 0
	for i, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(errOut, "%s: %v\n", paths[i], r.Err)
			continue
		}
		doc := r.Doc
		if len(pre) > 0 {
			if doc, err = pre.Process(doc); err != nil {
				failed++
				fmt.Fprintf(errOut, "%s: %v\n", paths[i], err)
				continue
			}
		}
		entities += countTagged(doc)
		if err := renderDocument(out, doc); err != nil {
			return err
		}
	}

	fmt.Fprintf(errOut, "Tagged %d documents, %d tagged terms, %d failed\n", len(docs)-failed, entities, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(docs))
	}
	return nil
}

func buildPreprocessor(comp *config.Components, opts tagOptions) (preprocess.Chain, error) {
	var chain preprocess.Chain
	if opts.filterStopwords {
		chain = append(chain, comp.StopFilter)
	}
	if opts.caseMode != "" {
		mode, err := preprocess.ParseCaseMode(opts.caseMode)
		if err != nil {
			return nil, err
		}
		lang, err := language.Parse(opts.language)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", opts.language, err)
		}
		conv, err := preprocess.NewCaseConverter(mode, lang)
		if err != nil {
			return nil, err
		}
		chain = append(chain, conv)
	}
	return chain, nil
}
