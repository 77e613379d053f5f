package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vvka-141/claimload/internal/scaffold"
	"github.com/vvka-141/claimload/internal/tui"
)

var initCmd = &cobra.Command{
	Use:   "init <project-name>",
	Short: "Create a starter load project",
	Long: `Init creates a new project directory with a claimload.yaml, an
.env.example, and sample landing feeds under feeds/landing/. The samples
work out of the box with a local file:// store:

  claimload init myloads
  cd myloads
  claimload run --storage-connection file://./feeds

Run 'claimload init --list' to see the available templates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var (
	initTemplate string
	initList     bool
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initTemplate, "template", "default", "Project template to use")
	initCmd.Flags().BoolVar(&initList, "list", false, "List available templates and exit")
}

func runInit(cmd *cobra.Command, args []string) error {
	if initList {
		templates, err := scaffold.ListTemplates()
		if err != nil {
			return err
		}
		fmt.Println("Available templates:")
		for _, name := range templates {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("project name is required (example: claimload init myloads)")
	}
	projectName := args[0]
	if strings.ContainsAny(projectName, `/\`) {
		return fmt.Errorf("project name %q must not contain path separators", projectName)
	}

	verbose := getVerboseFlag(cmd)
	targetPath, err := filepath.Abs(projectName)
	if err != nil {
		return err
	}

	s := scaffold.NewScaffolder(verbose)
	if err := s.CreateProject(projectName, initTemplate, targetPath); err != nil {
		return err
	}

	fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("✓ Created project '%s'", projectName)))
	fmt.Printf("\nNext steps:\n  cd %s\n  cp .env.example .env\n  claimload check\n", projectName)
	return nil
}
