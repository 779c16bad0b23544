package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jwei/taxfolio"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "taxfolio.yaml", "Path to the optional configuration file")
var dataDirFlag = flag.String("data", "", "Path to the data folder (overrides the configuration)")

// appConfig loads the configuration file and applies flag overrides.
func appConfig() (Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return cfg, err
	}
	if *dataDirFlag != "" {
		cfg.DataDir = *dataDirFlag
	}
	return cfg, nil
}

// readHistory loads and decodes one platform's trade history file.
// A missing file is fatal: there is nothing to compute from.
func readHistory(dir, platform string) ([]taxfolio.Trade, error) {
	name := filepath.Join(dir, taxfolio.HistoryFileName(platform))
	f, err := os.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("history file %q does not exist: run 'tpf fetch' or 'tpf merge' first", name)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	trades, err := taxfolio.DecodeHistory(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", name, err)
	}
	return trades, nil
}
