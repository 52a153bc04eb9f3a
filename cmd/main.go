package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/config"
	"github.com/brettbedarf/vfstree/filesystem"
	"github.com/brettbedarf/vfstree/internal/util"
	"github.com/brettbedarf/vfstree/requests"
	"github.com/dustin/go-humanize"
	"github.com/jmgilman/go/errors"
)

func main() {
	// Parse command line arguments
	var (
		configPath   string
		manifestPath string
		verbose      int
		long         bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config override file (.yaml, .yml or .json)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&manifestPath, "manifest", "", "Path to tree manifest file")
	flag.StringVar(&manifestPath, "m", "", "--manifest (shorthand)")
	flag.IntVar(&verbose, "verbose", config.InfoVerbose,
		"Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", config.InfoVerbose, "--verbose (shorthand)")
	flag.BoolVar(&long, "long", false, "Prefix each dump line with inode number, mode and block count")
	flag.BoolVar(&long, "l", false, "--long (shorthand)")
	flag.Parse()

	logLvl := util.LevelFromVerbosity(verbose)
	util.InitializeLoggerTo(os.Stderr, logLvl)
	logger := util.GetLogger("main")
	logger.Info().Int("verbose", verbose).Str("config", configPath).Str("manifest", manifestPath).
		Msg("vfstree initializing")

	var cfg *config.Config
	if configPath != "" {
		var err error
		if cfg, err = config.NewConfigFromFile(configPath); err != nil {
			fail(err, "Failed to load config")
		}
		// the command line wins over the file
		cfg.LogLvl = logLvl
	} else {
		cfg = config.NewConfig(&config.ConfigOverride{LogLvl: &verbose})
	}

	fs, err := vfstree.New(cfg, filesystem.WithLogger(util.GetLogger("filesystem")))
	if err != nil {
		fail(err, "Failed to create filesystem")
	}

	if manifestPath != "" {
		m, err := requests.LoadFile(manifestPath)
		if err != nil {
			fail(err, "Failed to load manifest")
		}
		counts := m.Count()
		logger.Debug().
			Int("folders", counts[requests.FolderNodeType]).
			Int("files", counts[requests.FileNodeType]).
			Int("shortcuts", counts[requests.ShortcutNodeType]).
			Msg("Manifest loaded")

		res, err := requests.Apply(fs, m, requests.WithLogger(util.GetLogger("requests")))
		if err != nil {
			fail(err, "Failed to apply manifest")
		}
		logger.Info().Int("folders", res.Folders).Int("files", res.Files).Int("shortcuts", res.Shortcuts).
			Msg("Added new nodes to filesystem")
	} else {
		logger.Warn().Msg("No manifest provided")
	}

	root := fs.Root()
	if long {
		fmt.Println(filesystem.DisplayAttrs(root))
	} else {
		fmt.Println(root.DisplayTree())
	}
	fmt.Printf("%s used of %s (%s free)\n",
		humanize.Bytes(root.Size()), humanize.Bytes(root.Capacity()), humanize.Bytes(root.Remaining()))
}

// fail logs err with its error code and exits with status 1
func fail(err error, msg string) {
	logger := util.GetLogger("main")
	evt := logger.Error().Err(err).Str("code", string(errors.GetCode(err)))
	var perr errors.PlatformError
	if errors.As(err, &perr) && len(perr.Context()) > 0 {
		evt = evt.Interface("context", perr.Context())
	}
	evt.Msg(msg)
	os.Exit(1)
}
