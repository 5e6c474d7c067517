package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
	"github.com/spf13/cobra"
)

var changelogListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List changelog versions with entry counts",
	Example: `  relnotes changelog list
  relnotes changelog list --plain`,
	Args: cobra.NoArgs,
	RunE: runChangelogList,
}

func init() {
	changelogCmd.AddCommand(changelogListCmd)
	changelogListCmd.Flags().Bool("plain", false, "ASCII table borders")
}

func runChangelogList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := loadChangelog(cfg)
	if err != nil {
		return err
	}

	plain := cfg.Plain
	if cmd.Flags().Changed("plain") {
		plain, _ = cmd.Flags().GetBool("plain")
	}

	table := renderTable(
		[]string{"Version", "Date", "Entries", "Categories"},
		versionRows(log.Versions),
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		plain,
	)
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}

func versionRows(versions []changelog.Version) [][]string {
	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		date := v.Date
		if date == "" {
			date = "-"
		}
		rows = append(rows, []string{
			v.Version,
			date,
			strconv.Itoa(v.Changes.Count()),
			categoryNames(v.Changes.Categories()),
		})
	}
	return rows
}

// categoryNames lists the non-empty categories of m in canonical order.
func categoryNames(m releasenotes.CategoryMap) string {
	var names []string
	for _, cat := range releasenotes.Categories() {
		if len(m[cat]) > 0 {
			names = append(names, cat.String())
		}
	}
	return strings.Join(names, ", ")
}
