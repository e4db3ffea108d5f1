package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eduglobal/internal/gemini"
)

var sopInputs gemini.SOPInputs

var sopCmd = &cobra.Command{
	Use:   "sop",
	Short: "Draft a statement of purpose",
	Long: `Drafts a statement of purpose from the applicant's details and
prints it to stdout.

Example:
  eduglobal sop --name "Asha Rahman" --course "MSc Data Science" \
    --university "University of Toronto" \
    --background "BSc CSE, 2 years as a backend engineer" \
    --goals "Lead ML infrastructure teams in fintech"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		draft, err := client.DraftSOP(cmd.Context(), sopInputs)
		if err != nil {
			return fmt.Errorf("drafting failed: %w", err)
		}
		fmt.Println(draft)
		return nil
	},
}

func init() {
	sopCmd.Flags().StringVar(&sopInputs.Name, "name", "", "Applicant name (required)")
	sopCmd.Flags().StringVar(&sopInputs.Course, "course", "", "Target course (required)")
	sopCmd.Flags().StringVar(&sopInputs.University, "university", "", "Target university (required)")
	sopCmd.Flags().StringVar(&sopInputs.Background, "background", "", "Academic and professional background (required)")
	sopCmd.Flags().StringVar(&sopInputs.Goals, "goals", "", "Career goals (required)")
	sopCmd.MarkFlagRequired("name")
	sopCmd.MarkFlagRequired("course")
	sopCmd.MarkFlagRequired("university")
	sopCmd.MarkFlagRequired("background")
	sopCmd.MarkFlagRequired("goals")
}
