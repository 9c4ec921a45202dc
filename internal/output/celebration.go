package output

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// printCelebration pulses a highlight around the message for a grade-A
// audit. Only called when stdout is a TTY.
func printCelebration(msg string) {
	calm := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	glow := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	peak := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	steps := []struct {
		decor string
		style lipgloss.Style
		pause time.Duration
	}{
		{"", calm, 150 * time.Millisecond},
		{"✦", glow, 250 * time.Millisecond},
		{"✦✦", peak, 400 * time.Millisecond},
		{"✦", glow, 250 * time.Millisecond},
		{"", calm, 0},
	}

	for i, step := range steps {
		if i > 0 {
			fmt.Print("\r\033[K")
		}
		line := msg
		if step.decor != "" {
			line = step.decor + " " + msg + " " + step.decor
		}
		fmt.Print(step.style.Render(line))
		if step.pause > 0 {
			time.Sleep(step.pause)
		}
	}
	fmt.Println()
}
