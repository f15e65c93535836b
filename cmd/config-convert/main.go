package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/pvspectral/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML site configuration file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite database file (required)")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Show what would be done without executing")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <sites.yaml> -sqlite <sites.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Check if YAML file exists
	if _, err := os.Stat(*yamlFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: YAML file does not exist: %s\n", *yamlFile)
		os.Exit(1)
	}

	// Check if SQLite file already exists
	if _, err := os.Stat(*sqliteFile); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: SQLite file already exists: %s\n", *sqliteFile)
		fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
		os.Exit(1)
	}

	fmt.Printf("Converting YAML site configuration to SQLite...\n")
	fmt.Printf("  Source: %s\n", *yamlFile)
	fmt.Printf("  Target: %s\n", *sqliteFile)

	n, err := convert(*yamlFile, *sqliteFile, *force, *dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Printf("Dry run: %d site(s) validated, nothing written\n", n)
		return
	}
	fmt.Printf("Converted %d site(s)\n", n)
}

// convert copies every site from a YAML file into a SQLite database and
// returns the number of sites
func convert(yamlFile, sqliteFile string, force, dryRun bool) (int, error) {
	yamlProvider := config.NewYAMLProvider(yamlFile)
	cfg, err := yamlProvider.LoadConfig()
	if err != nil {
		return 0, fmt.Errorf("failed to load YAML config: %w", err)
	}

	if dryRun {
		for _, site := range cfg.Sites {
			fmt.Printf("  would convert site %s\n", site.Name)
		}
		return len(cfg.Sites), nil
	}

	if force {
		if err := os.Remove(sqliteFile); err != nil && !os.IsNotExist(err) {
			return 0, fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	sqliteProvider, err := config.NewSQLiteProvider(sqliteFile)
	if err != nil {
		return 0, err
	}
	defer sqliteProvider.Close()

	if err := sqliteProvider.SaveConfig(cfg); err != nil {
		return 0, fmt.Errorf("failed to save config: %w", err)
	}

	// Read back to confirm the database loads cleanly
	saved, err := sqliteProvider.GetSites()
	if err != nil {
		return 0, fmt.Errorf("failed to verify converted config: %w", err)
	}
	if len(saved) != len(cfg.Sites) {
		return 0, fmt.Errorf("verification failed: wrote %d sites, read back %d", len(cfg.Sites), len(saved))
	}

	return len(saved), nil
}
