package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/tui"
)

func main() {
	// Optional taxpayer file used to pre-fill the form
	inputPath := ""
	if len(os.Args) > 2 {
		fmt.Println("Usage: taxgo-tui [taxpayer-file]")
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		inputPath = os.Args[1]
		if _, err := os.Stat(inputPath); os.IsNotExist(err) {
			fmt.Printf("Error: Taxpayer file not found: %s\n", inputPath)
			os.Exit(1)
		}
	}

	registry, err := loadRegistry(os.Getenv("REGULATORY_CONFIG"))
	if err != nil {
		fmt.Printf("Error loading tax tables: %v\n", err)
		os.Exit(1)
	}

	year := os.Getenv("DEFAULT_ASSESSMENT_YEAR")
	if year == "" {
		year = "2024-25"
	}

	// Create the application model
	model := tui.NewModel(compare.NewComparator(registry), tui.Options{
		AssessmentYear:    year,
		StandardDeduction: registry.StandardDeduction(),
		InputPath:         inputPath,
	})

	// Create the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	// Run the program
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func loadRegistry(path string) (*domain.SlabRegistry, error) {
	parser := config.NewRegulatoryParser()
	if path == "" {
		return parser.LoadDefault()
	}
	return parser.LoadFromFile(path)
}
