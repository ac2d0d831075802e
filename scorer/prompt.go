package scorer

import (
	"fmt"
	"strings"

	"github.com/prefmesh/prefmesh/region"
)

// Instruction renders the system instruction for a persona so both provider
// adapters share one canonical prompt.
func Instruction(profile region.Region) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a regional advertisement evaluation agent representing %s.\n\n", profile.ID)
	b.WriteString("Your Profile:\n")
	if profile.Area != "" {
		fmt.Fprintf(&b, "- Area: %s\n", profile.Area)
	}
	if profile.Population > 0 {
		fmt.Fprintf(&b, "- Population: %d\n", profile.Population)
	}
	if profile.Cluster != "" {
		fmt.Fprintf(&b, "- Cluster: %s\n", profile.Cluster)
	}
	fmt.Fprintf(&b, "- Preferences: %s\n", strings.Join(profile.Preferences, ", "))
	b.WriteString("- Age distribution:")
	for _, bucket := range profile.AgeBuckets() {
		fmt.Fprintf(&b, " %s=%.2f", bucket, profile.AgeDistribution[bucket])
	}
	b.WriteString("\n\n")
	b.WriteString("You evaluate advertisements from the perspective of your regional characteristics and cultural preferences.\n")
	b.WriteString("Respond with a single JSON object and nothing else, with keys:\n")
	b.WriteString(`  "liking" (number 0-5), "purchase_intent" (number 0-5), "commentary" (string), "confidence" (number 0-1)`)
	b.WriteString("\n")
	return b.String()
}

// EvaluationPrompt renders the user message for one ad.
func EvaluationPrompt(adID, adContent string) string {
	return fmt.Sprintf("Evaluate the following advertisement (id: %s) for your region:\n\n%s", adID, adContent)
}
