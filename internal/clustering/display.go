package clustering

import (
	"fmt"
	"slices"
	"strings"

	"github.com/justestif/go-moodmuse/internal/catalog"
)

const sampleItemCount = 3

// FormatGroupSummary returns a human-readable summary of mood groups.
// Shows item count, partition split, and the first 3 items of each group.
// Outliers are summarized by count only.
func FormatGroupSummary(groups []MoodGroup, outliers []catalog.Item) string {
	var sb strings.Builder

	total := len(outliers)
	for _, g := range groups {
		total += len(g.Items)
	}

	if len(groups) == 0 {
		sb.WriteString(fmt.Sprintf("No mood groups found from %d items", total))
		if len(outliers) > 0 {
			sb.WriteString(fmt.Sprintf(" (%d outliers skipped)", len(outliers)))
		}
		sb.WriteString("\n")
		return sb.String()
	}

	groupWord := "group"
	if len(groups) > 1 {
		groupWord = "groups"
	}
	sb.WriteString(fmt.Sprintf("Found %d mood %s from %d items", len(groups), groupWord, total))
	if len(outliers) > 0 {
		sb.WriteString(fmt.Sprintf(" (%d outliers skipped)", len(outliers)))
	}
	sb.WriteString("\n")

	for i, g := range groups {
		sb.WriteString("\n")
		sb.WriteString(formatGroup(i+1, g))
	}

	return sb.String()
}

// formatGroup formats a single group with its sample items.
func formatGroup(num int, g MoodGroup) string {
	var sb strings.Builder

	itemWord := "item"
	if len(g.Items) > 1 {
		itemWord = "items"
	}
	sb.WriteString(fmt.Sprintf("Group %d: %s (%d %s)\n", num, g.Name, len(g.Items), itemWord))
	sb.WriteString(fmt.Sprintf("  energy %.2f, valence %.2f", g.Centroid.Energy, g.Centroid.Valence))
	if len(g.Partitions) > 0 {
		sb.WriteString(", " + formatPartitions(g.Partitions))
	}
	sb.WriteString("\n")
	if g.Description != "" {
		sb.WriteString("  " + g.Description + "\n")
	}

	for _, it := range g.Items[:min(sampleItemCount, len(g.Items))] {
		sb.WriteString(fmt.Sprintf("  • \"%s\" - %s\n", it.Title, it.Attribution))
	}

	if remaining := len(g.Items) - sampleItemCount; remaining > 0 {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", remaining))
	}

	return sb.String()
}

// formatPartitions renders counts as "english 3, hindi 2" in name order.
func formatPartitions(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s %d", name, counts[name])
	}
	return strings.Join(parts, ", ")
}
