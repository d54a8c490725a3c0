package service

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/editguard/editguard/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}

// Write writes the scan response in the specified format
func (f *OutputFormatterImpl) Write(response *domain.ScanResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	default:
		return domain.NewOutputError(fmt.Sprintf("unsupported output format: %s", format), nil)
	}
}

// writeText writes the scan response as plain text
func (f *OutputFormatterImpl) writeText(response *domain.ScanResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== editguard Scan Report ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n", response.Version)
	fmt.Fprintf(writer, "Duration: %dms\n\n", response.DurationMs)

	// Summary
	s := response.Summary
	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files scanned: %d\n", s.FilesScanned)
	fmt.Fprintf(writer, "  Passed: %d\n", s.FilesPassed)
	fmt.Fprintf(writer, "  Failed: %d\n", s.FilesFailed)
	fmt.Fprintf(writer, "  Skipped: %d\n", s.FilesSkipped)
	fmt.Fprintf(writer, "  Cache hits: %d\n", s.CacheHits)
	fmt.Fprintf(writer, "\n")

	// Severity distribution
	fmt.Fprintf(writer, "Issue Distribution:\n")
	fmt.Fprintf(writer, "  Blocking: %d\n", s.BlockingIssues)
	fmt.Fprintf(writer, "  Warning: %d\n", s.WarningIssues)
	fmt.Fprintf(writer, "  Info: %d\n", s.InfoIssues)
	fmt.Fprintf(writer, "\n")

	// File details
	for _, file := range response.Files {
		if len(file.Issues) == 0 {
			continue
		}
		status := "PASS"
		if !file.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(writer, "%s [%s]\n", file.FilePath, status)
		for _, issue := range file.Issues {
			if issue.Line > 0 {
				fmt.Fprintf(writer, "  Line %d: %s%s\n", issue.Line, issue.Message, severityIndicator(issue.Severity))
			} else {
				fmt.Fprintf(writer, "  %s%s\n", issue.Message, severityIndicator(issue.Severity))
			}
			fmt.Fprintf(writer, "    Check: %s/%s\n", issue.Check, issue.Category)
			if issue.Suggestion != "" {
				fmt.Fprintf(writer, "    Suggestion: %s\n", issue.Suggestion)
			}
		}
		fmt.Fprintf(writer, "\n")
	}

	if s.TotalIssues == 0 {
		fmt.Fprintf(writer, "No issues found.\n")
	}

	// Warnings
	if len(response.Warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}

	// Errors
	if len(response.Errors) > 0 {
		fmt.Fprintf(writer, "\nErrors:\n")
		for _, e := range response.Errors {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
	}

	return nil
}

// severityIndicator returns the bracketed severity marker for text reports
func severityIndicator(severity domain.Severity) string {
	switch severity {
	case domain.SeverityCritical:
		return " [CRITICAL]"
	case domain.SeverityError:
		return " [ERROR]"
	case domain.SeverityWarning:
		return " [WARNING]"
	case domain.SeverityInfo:
		return " [INFO]"
	default:
		return ""
	}
}
