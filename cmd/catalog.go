package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the flag quiz country catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the countries of the active catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		fmt.Printf("%-4s  %-3s  %-40s  %s\n", "Code", "", "Name", "Flag")
		fmt.Println(strings.Repeat("─", 70))
		for _, c := range cat.Countries() {
			assets := catalog.ResolveFlagAsset(c, cfg.Catalog.FlagDir)
			fmt.Printf("%-4s  %-3s  %-40s  %s\n", c.Code, c.Emoji(), c.Name, assets[len(assets)-1].Location())
		}
		fmt.Printf("\n%d countries\n", cat.Len())
		return nil
	},
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a catalog file against the catalog schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s is not a valid catalog: %w", args[0], verr)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s: ok, %d countries\n", args[0], cat.Len())
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
}
