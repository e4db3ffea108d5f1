package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eduglobal/internal/gemini"
)

var (
	assessCGPA    float64
	assessIELTS   float64
	assessBudget  int
	assessCountry string
	assessField   string
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess admission eligibility and visa probability",
	Long: `Runs a structured eligibility and visa assessment for a student
profile and prints the analysis with program recommendations.

Example:
  eduglobal assess --cgpa 3.4 --ielts 7.0 --budget 30000 --country Canada --field "Computer Science"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		in := gemini.ProfileInputs{
			CGPA:    assessCGPA,
			IELTS:   assessIELTS,
			Budget:  assessBudget,
			Country: strings.TrimSpace(assessCountry),
			Field:   strings.TrimSpace(assessField),
		}
		result, err := client.Assess(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("assessment failed: %w", err)
		}

		fmt.Printf("Eligibility:      %s\n", result.Eligibility)
		fmt.Printf("  %s\n", result.EligibilityReason)
		fmt.Printf("Visa probability: %d%%\n", result.VisaProbability)
		fmt.Printf("  %s\n", result.VisaReason)
		if len(result.VisaRisks) > 0 {
			fmt.Println("Visa risks:")
			for _, r := range result.VisaRisks {
				fmt.Printf("  - %s\n", r)
			}
		}
		if len(result.Recommendations) > 0 {
			fmt.Println("Recommended programs:")
			for _, r := range result.Recommendations {
				fmt.Printf("  - %s at %s\n    %s\n", r.Program, r.University, r.Reason)
			}
		}
		return nil
	},
}

func init() {
	assessCmd.Flags().Float64Var(&assessCGPA, "cgpa", 0, "CGPA on a 4.0 scale (required)")
	assessCmd.Flags().Float64Var(&assessIELTS, "ielts", 0, "IELTS band score (required)")
	assessCmd.Flags().IntVar(&assessBudget, "budget", 0, "Annual budget in USD (required)")
	assessCmd.Flags().StringVar(&assessCountry, "country", "", "Target country (required)")
	assessCmd.Flags().StringVar(&assessField, "field", "", "Field of study (required)")
	assessCmd.MarkFlagRequired("cgpa")
	assessCmd.MarkFlagRequired("ielts")
	assessCmd.MarkFlagRequired("budget")
	assessCmd.MarkFlagRequired("country")
	assessCmd.MarkFlagRequired("field")
}
