package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Render styles markdown for the terminal. style is a glamour style name
// such as "dark", "light" or "notty".
func Render(md, style string) (string, error) {
	out, err := glamour.Render(md, style)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
