package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/subosito/gotenv"

	"github.com/wallact/wallact/pkg/actual"
	"github.com/wallact/wallact/pkg/config"
	"github.com/wallact/wallact/pkg/importer"
	"github.com/wallact/wallact/pkg/mapping"
	"github.com/wallact/wallact/pkg/parser"
	"github.com/wallact/wallact/pkg/resolver"
	"github.com/wallact/wallact/pkg/source"
)

var (
	filePath       string
	apiMode        bool
	defaultAccount string
	mapFile        string
	debug          bool
)

var rootCmd = &cobra.Command{
	Use:                "wallact (--file <export.json> | --api) [--account <name>]",
	Short:              "Import Wallos subscriptions into Actual Budget as schedules",
	Args:               cobra.ArbitraryArgs,
	SilenceUsage:       true,
	SilenceErrors:      true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "wallact",
		})
		if debug {
			logger.SetLevel(log.DebugLevel)
		}

		// The whitelist parser drops unknown flags without reporting them,
		// so re-scan the raw argv to warn about what it swallowed.
		for _, flag := range unknownFlags(cmd.Flags(), os.Args[1:]) {
			logger.Warn("ignoring unknown flag", "flag", flag)
		}

		_ = gotenv.Load()
		cfg := config.Load()
		cfg.DefaultAccount = defaultAccount
		cfg.MappingFile = mapFile
		cfg.Debug = debug

		if filePath == "" && !apiMode {
			_ = cmd.Usage()
			return fmt.Errorf("one of --file or --api is required")
		}

		p := parser.New(logger)

		var src source.Source
		if filePath != "" {
			src = source.NewFile(filePath, p)
		} else {
			if err := cfg.ValidateRemote(); err != nil {
				_ = cmd.Usage()
				return err
			}
			src = source.NewWallos(cfg.WallosURL, cfg.WallosAPIKey, p)
		}

		subs, err := src.Subscriptions()
		if err != nil {
			return err
		}
		if cfg.Debug {
			pp.Println(subs)
		}

		aliases, err := mapping.Load(cfg.MappingFile)
		if err != nil {
			return err
		}

		stdin := bufio.NewReader(os.Stdin)
		res := resolver.New(logger, stdin, os.Stdout, aliases)
		client := actual.NewHTTPClient(cfg.ServerURL, cfg.Password, cfg.DataDir, logger)

		imp := importer.New(cfg, logger, client, res, stdin, os.Stdout)
		_, err = imp.Run(subs)
		return err
	},
}

// unknownFlags returns the --name tokens in argv that are not registered on
// the flag set. Flag values and everything after a bare "--" are left alone.
func unknownFlags(fs *pflag.FlagSet, argv []string) []string {
	var unknown []string
	for _, arg := range argv {
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		name := strings.TrimPrefix(arg, "--")
		if i := strings.Index(name, "="); i >= 0 {
			name = name[:i]
		}
		if name != "" && fs.Lookup(name) == nil {
			unknown = append(unknown, "--"+name)
		}
	}
	return unknown
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})

	rootCmd.Flags().StringVar(&filePath, "file", "", "Import from a Wallos JSON export file")
	rootCmd.Flags().BoolVar(&apiMode, "api", false, "Import from the Wallos API (needs WALLOS_URL and WALLOS_API_KEY)")
	rootCmd.Flags().StringVar(&defaultAccount, "account", "", "Default account name for unmatched subscriptions")
	rootCmd.Flags().StringVar(&mapFile, "map", "", "YAML file mapping payment methods to account names")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Verbose logging and a dump of the normalized subscriptions")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}
