// Package prompt builds the system instructions sent to the completion
// backend. Keeping prompt text out of the client keeps the client a pure
// transport adapter and makes the instructions testable on their own.
package prompt

import (
	"fmt"
	"strings"

	"eduglobal/internal/catalog"
)

// ConsultantInstruction returns the consultant system instruction, enriched
// with catalog facts. With a focus country only that destination's facts
// are included; otherwise every supported destination is summarized.
func ConsultantInstruction(focus catalog.Country) string {
	var b strings.Builder
	b.WriteString(`You are an expert Study Abroad Consultant for EduGlobal.
Your goal is to assist students interested in studying abroad.

Key Information you have access to:
`)

	for _, d := range catalog.Destinations() {
		if focus != "" && d.Country != focus {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: Visa: %s Work rights: %s Typical tuition: %s.\n",
			d.Name, d.VisaNotes, d.WorkRights, d.AvgTuition))
	}

	if unis := universityLine(focus); unis != "" {
		b.WriteString("- Partner universities: ")
		b.WriteString(unis)
		b.WriteString(".\n")
	}
	b.WriteString("- Common intakes: Fall (Sept), Winter (Jan), Summer (May).\n")

	b.WriteString(`
Tone: Professional, encouraging, helpful, and concise.
If a user asks about something unrelated to studying abroad, politely steer them back to the topic.
Do not invent specific tuition fees if not known, give ranges.`)

	return b.String()
}

func universityLine(focus catalog.Country) string {
	var names []string
	for _, u := range catalog.Universities() {
		if focus != "" && u.Country != focus {
			continue
		}
		names = append(names, fmt.Sprintf("%s (%s)", u.Name, u.Country))
	}
	return strings.Join(names, ", ")
}
