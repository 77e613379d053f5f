package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vvka-141/claimload/internal/tui/components"
)

// RunWithSpinner executes work while showing an animated spinner, then a
// final ✓/✗ line. In non-interactive mode (CI, piped output) it prints plain
// lines instead so logs stay clean. The work function's error is returned
// unchanged either way.
func RunWithSpinner(message string, work func() (string, error)) error {
	if !IsInteractive() {
		fmt.Println(message)
		result, err := work()
		if err != nil {
			fmt.Printf("✗ %v\n", err)
			return err
		}
		fmt.Printf("✓ %s\n", result)
		return nil
	}

	errCh := make(chan error, 1)
	p := tea.NewProgram(spinnerModel{spinner: components.NewSpinner(message)})

	go func() {
		result, err := work()
		if err != nil {
			p.Send(components.SpinnerFailed(err))
		} else {
			p.Send(components.SpinnerDone(result))
		}
		errCh <- err
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal display failed: %w", err)
	}
	// On ctrl+c the display quits first; the caller's signal handler cancels
	// the context, so the work unwinds and sends its error shortly after.
	return <-errCh
}

type spinnerModel struct {
	spinner components.Spinner
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Init()
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if m.spinner.IsDone() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m spinnerModel) View() string {
	return m.spinner.View() + "\n"
}
