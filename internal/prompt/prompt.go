// Package prompt reads answers from an interactive terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/xerrors"
)

const ColorQuestion = "🎨 Enter the color for your icons (e.g., #88C0D0): "

// Color asks for the icon color once and returns the trimmed answer. An empty
// answer, including end of input, is returned as "" without error.
func Color(r *bufio.Reader, w io.Writer) (string, error) {
	return Line(r, w, ColorQuestion)
}

// Line writes question and reads a single trimmed line.
func Line(r *bufio.Reader, w io.Writer, question string) (string, error) {
	if _, err := fmt.Fprint(w, question); err != nil {
		return "", xerrors.Errorf("write prompt: %w", err)
	}
	input, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", xerrors.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// Field asks for a value and falls back to defaultValue on an empty answer.
func Field(r *bufio.Reader, w io.Writer, label, defaultValue string) string {
	input, _ := Line(r, w, fmt.Sprintf("%s [%s]: ", label, defaultValue))
	if input == "" {
		return defaultValue
	}
	return input
}

func Confirm(r *bufio.Reader, w io.Writer, message string) bool {
	input, _ := Line(r, w, fmt.Sprintf("%s (y/N): ", message))
	input = strings.ToLower(input)
	return input == "y" || input == "yes"
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHex accepts #RGB and #RRGGBB.
func ValidateHex(color string) error {
	if !hexColor.MatchString(color) {
		return xerrors.Errorf("invalid color %q: want #RGB or #RRGGBB", color)
	}
	return nil
}
