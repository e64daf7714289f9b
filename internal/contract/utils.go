package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Grade label constants.
const (
	ExcellentValue = "Excellent" // Excellent value
	GoodValue      = "Good"      // Good value
	AverageValue   = "Average"   // Average value
	PoorValue      = "Poor"      // Poor value
	UngradedValue  = "-"         // No grade
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // standout match
	GoodColor      = color.New(color.FgCyan)              // solid match
	AverageColor   = color.New(color.FgYellow)            // unremarkable match
	PoorColor      = color.New(color.FgRed)               // below par
)

// GetPlainLabel returns a plain text label for a 1-10 grade. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(grade float64) string {
	switch {
	case grade <= 0:
		return UngradedValue
	case grade >= 8:
		return ExcellentValue
	case grade >= 7:
		return GoodValue
	case grade >= 6:
		return AverageValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(grade float64) string {
	text := GetPlainLabel(grade)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case AverageValue:
		return AverageColor.Sprint(text)
	case PoorValue:
		return PoorColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output. An empty
// path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for the store.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".matchgrade.db"
	}
	return filepath.Join(homeDir, ".matchgrade.db")
}

// TruncateName truncates a display name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
