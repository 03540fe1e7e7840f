package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cognicore/textproc/internal/logger"
	"github.com/cognicore/textproc/pkg/textproc/config"
)

// Version is set at build time with -ldflags.
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "textproc",
	Short: "textproc - dictionary based multi-tagset document tagging",
	Long: `textproc tags entities in plain text documents.

Entities come from dictionaries given in the config file or stored in a
dictionary database. An entity listed in several dictionaries gets the tag
of every dictionary; existing tags on the text are kept.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			logger.SetLogLevel(logrus.DebugLevel)
		} else if lvl := viper.GetString("log_level"); lvl != "" {
			logger.SetLogLevel(logger.ParseLevel(lvl))
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "textproc %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./textproc.yaml or $HOME/.textproc/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int("workers", 0, "number of tagging workers (overrides config)")
	rootCmd.PersistentFlags().String("tokenizer", "", "tokenizer name (overrides config)")
	rootCmd.PersistentFlags().String("store", "", "dictionary database (overrides config)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("tokenizer", rootCmd.PersistentFlags().Lookup("tokenizer"))
	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig locates the config file and reads ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".textproc"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("textproc")
	}

	// Read in environment variables that match TEXTPROC_*
	viper.SetEnvPrefix("TEXTPROC")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig reads the config file found by viper, or the defaults, and
// applies flag and environment overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := viper.ConfigFileUsed(); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if w := viper.GetInt("workers"); w > 0 {
		cfg.Workers = w
	}
	if tok := viper.GetString("tokenizer"); tok != "" {
		cfg.Tokenizer = tok
	}
	if st := viper.GetString("store"); st != "" {
		cfg.Store = st
	}
	return cfg, cfg.Validate()
}
