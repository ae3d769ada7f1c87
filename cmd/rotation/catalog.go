package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
)

var catalogPath string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the abilities of a path",
	Long: `Print the capability set of a base path or subpath as YAML, with the overrides
of the configured catalog_file applied. The output is a valid catalog_file.`,
	RunE: printCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogPath, "path", "", "base path or subpath name")
	_ = catalogCmd.MarkFlagRequired("path")
}

func printCatalog(cmd *cobra.Command, _ []string) error {
	path := entities.ParsePath(catalogPath)
	if path == entities.PathNone {
		return errors.InvalidArgumentf("unknown path %q", catalogPath)
	}

	c, err := catalog.ForPath(path)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.CatalogFile != "" {
		overrides, err := catalog.LoadOverrides(cfg.CatalogFile)
		if err != nil {
			return err
		}
		if c, err = c.Apply(overrides); err != nil {
			return err
		}
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(map[string]any{
		"path":      string(path),
		"abilities": c.Abilities(),
	})
}
