// Package report computes and renders aggregate statistics for a
// document corpus.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"sitecorpus/internal/pipeline"
)

// How many top documents the report lists
const topDocuments = 5

// CategoryCount pairs a category value with its document count
type CategoryCount struct {
	Value string
	Count int
}

// Stats holds the aggregate figures for a corpus
type Stats struct {
	TotalDocuments int

	TotalWords   int
	AverageWords float64
	MedianWords  int
	MinWords     int
	MaxWords     int

	TotalChars   int
	AverageChars float64

	Languages    []CategoryCount
	ContentTypes []CategoryCount

	Substantial int
	LongForm    int
	HasCode     int

	TotalReadingMinutes   int
	AverageReadingMinutes float64

	TopByWordCount []pipeline.Document
}

// Compute aggregates statistics over the documents
func Compute(docs []pipeline.Document) *Stats {
	stats := &Stats{TotalDocuments: len(docs)}
	if len(docs) == 0 {
		return stats
	}

	wordCounts := make([]int, 0, len(docs))
	languages := make(map[string]int)
	contentTypes := make(map[string]int)

	stats.MinWords = docs[0].WordCount
	for _, doc := range docs {
		wordCounts = append(wordCounts, doc.WordCount)
		stats.TotalWords += doc.WordCount
		stats.TotalChars += doc.CharCount
		stats.TotalReadingMinutes += doc.ReadingTimeMinutes

		if doc.WordCount < stats.MinWords {
			stats.MinWords = doc.WordCount
		}
		if doc.WordCount > stats.MaxWords {
			stats.MaxWords = doc.WordCount
		}

		languages[doc.Language]++
		contentTypes[doc.ContentType]++

		if doc.IsSubstantial {
			stats.Substantial++
		}
		if doc.IsLongForm {
			stats.LongForm++
		}
		if doc.HasCode {
			stats.HasCode++
		}
	}

	total := float64(len(docs))
	stats.AverageWords = float64(stats.TotalWords) / total
	stats.AverageChars = float64(stats.TotalChars) / total
	stats.AverageReadingMinutes = float64(stats.TotalReadingMinutes) / total

	sort.Ints(wordCounts)
	stats.MedianWords = wordCounts[len(wordCounts)/2]

	stats.Languages = sortedCounts(languages)
	stats.ContentTypes = sortedCounts(contentTypes)
	stats.TopByWordCount = topDocs(docs)

	return stats
}

// sortedCounts orders categories by count descending, then by value
// for a stable listing
func sortedCounts(counts map[string]int) []CategoryCount {
	result := make([]CategoryCount, 0, len(counts))
	for value, count := range counts {
		result = append(result, CategoryCount{Value: value, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Value < result[j].Value
	})
	return result
}

func topDocs(docs []pipeline.Document) []pipeline.Document {
	sorted := make([]pipeline.Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WordCount > sorted[j].WordCount
	})

	if len(sorted) > topDocuments {
		sorted = sorted[:topDocuments]
	}
	return sorted
}

// Render writes a human-readable report for the documents
func Render(w io.Writer, docs []pipeline.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents to analyze.")
		return
	}

	stats := Compute(docs)
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "DOCUMENT ANALYTICS")
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "\nTotal Documents: %d\n", stats.TotalDocuments)

	fmt.Fprintf(w, "\nWord Count Statistics:\n")
	fmt.Fprintf(w, "  Total words: %d\n", stats.TotalWords)
	fmt.Fprintf(w, "  Average: %.0f\n", stats.AverageWords)
	fmt.Fprintf(w, "  Median: %d\n", stats.MedianWords)
	fmt.Fprintf(w, "  Min: %d\n", stats.MinWords)
	fmt.Fprintf(w, "  Max: %d\n", stats.MaxWords)

	fmt.Fprintf(w, "\nCharacter Count Statistics:\n")
	fmt.Fprintf(w, "  Total characters: %d\n", stats.TotalChars)
	fmt.Fprintf(w, "  Average: %.0f\n", stats.AverageChars)

	fmt.Fprintf(w, "\nLanguage Distribution:\n")
	for _, lang := range stats.Languages {
		fmt.Fprintf(w, "  %s: %d (%.1f%%)\n", lang.Value, lang.Count, percent(lang.Count, stats.TotalDocuments))
	}

	fmt.Fprintf(w, "\nContent Type Distribution:\n")
	for _, ct := range stats.ContentTypes {
		fmt.Fprintf(w, "  %s: %d (%.1f%%)\n", ct.Value, ct.Count, percent(ct.Count, stats.TotalDocuments))
	}

	fmt.Fprintf(w, "\nQuality Signals:\n")
	fmt.Fprintf(w, "  Substantial (>=100 words): %d (%.1f%%)\n", stats.Substantial, percent(stats.Substantial, stats.TotalDocuments))
	fmt.Fprintf(w, "  Long-form (>=1000 words): %d (%.1f%%)\n", stats.LongForm, percent(stats.LongForm, stats.TotalDocuments))
	fmt.Fprintf(w, "  Contains code: %d (%.1f%%)\n", stats.HasCode, percent(stats.HasCode, stats.TotalDocuments))

	fmt.Fprintf(w, "\nReading Time:\n")
	fmt.Fprintf(w, "  Total estimated reading time: %d minutes (%.1f hours)\n",
		stats.TotalReadingMinutes, float64(stats.TotalReadingMinutes)/60)
	fmt.Fprintf(w, "  Average per document: %.1f minutes\n", stats.AverageReadingMinutes)

	fmt.Fprintf(w, "\nTop %d Documents by Word Count:\n", topDocuments)
	for i, doc := range stats.TopByWordCount {
		fmt.Fprintf(w, "  %d. %s\n", i+1, truncate(doc.Title, 60))
		fmt.Fprintf(w, "     URL: %s\n", doc.URL)
		fmt.Fprintf(w, "     Words: %d\n", doc.WordCount)
	}

	fmt.Fprintln(w, rule)
}

func percent(part, total int) float64 {
	return float64(part) / float64(total) * 100
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
