package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eduglobal/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse partner universities, programs and scholarships",
}

var catalogUniversitiesCmd = &cobra.Command{
	Use:   "universities",
	Short: "List partner universities",
	Run: func(cmd *cobra.Command, args []string) {
		focus := focusCountry()
		for _, u := range catalog.Universities() {
			if focus != "" && u.Country != focus {
				continue
			}
			fmt.Printf("%-28s %-10s %-22s rank #%d\n", u.Name, u.Country, u.Location, u.Ranking)
		}
	},
}

var catalogProgramsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List study programs",
	Run: func(cmd *cobra.Command, args []string) {
		programs := catalog.Programs()
		if focus := focusCountry(); focus != "" {
			programs = catalog.ProgramsByCountry(focus)
		}
		for _, p := range programs {
			fmt.Printf("%-34s %-6s %-28s %s %d/yr, IELTS %.1f, intakes %s\n",
				p.Name, p.Degree, p.UniversityName, p.Currency, p.Tuition, p.IELTS, strings.Join(p.Intake, "/"))
		}
	},
}

var catalogScholarshipsCmd = &cobra.Command{
	Use:   "scholarships",
	Short: "List scholarships",
	Run: func(cmd *cobra.Command, args []string) {
		scholarships := catalog.Scholarships()
		if focus := focusCountry(); focus != "" {
			scholarships = catalog.ScholarshipsByCountry(focus)
		}
		for _, s := range scholarships {
			fmt.Printf("%-34s %-10s %-14s deadline %s\n  %s\n", s.Name, s.Country, s.Amount, s.Deadline, s.Eligibility)
		}
	},
}

var catalogDestinationsCmd = &cobra.Command{
	Use:   "destinations",
	Short: "List destination country guides",
	Run: func(cmd *cobra.Command, args []string) {
		focus := focusCountry()
		for _, d := range catalog.Destinations() {
			if focus != "" && d.Country != focus {
				continue
			}
			fmt.Printf("%s\n  Visa: %s\n  Work: %s\n  Tuition: %s\n", d.Name, d.VisaNotes, d.WorkRights, d.AvgTuition)
		}
	},
}

// focusCountry maps the --country flag onto a catalog country, matching
// case-insensitively. An unrecognized value means no focus.
func focusCountry() catalog.Country {
	want := strings.TrimSpace(flagCountry)
	if want == "" {
		return ""
	}
	for _, d := range catalog.Destinations() {
		if strings.EqualFold(string(d.Country), want) {
			return d.Country
		}
	}
	return ""
}

func init() {
	catalogCmd.AddCommand(catalogUniversitiesCmd)
	catalogCmd.AddCommand(catalogProgramsCmd)
	catalogCmd.AddCommand(catalogScholarshipsCmd)
	catalogCmd.AddCommand(catalogDestinationsCmd)
}
