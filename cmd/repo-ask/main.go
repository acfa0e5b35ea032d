package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ahmednasr/repo-tools/internal/config"
	"github.com/ahmednasr/repo-tools/internal/models"
	"github.com/ahmednasr/repo-tools/internal/pipeline"
)

func main() {
	root := &cobra.Command{
		Use:   "repo-ask",
		Short: "Ask questions about a GitHub repository from the terminal",
	}

	root.AddCommand(askCmd(), toolsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func askCmd() *cobra.Command {
	var owner, repo string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a question using the repository tools",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			p, err := pipeline.New(cfg, nil)
			if err != nil {
				return err
			}

			answer, err := p.Ask.Ask(context.Background(), models.ToolRequest{
				Query: strings.Join(args, " "),
				Owner: owner,
				Repo:  repo,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Repository owner (defaults to DEFAULT_REPO_OWNER)")
	cmd.Flags().StringVar(&repo, "repo", "", "Repository name (defaults to DEFAULT_REPO_NAME)")
	return cmd
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the repository tools in the order they run",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pipeline.New(config.Load(), nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, d := range p.Catalog.Definitions() {
				fmt.Fprintf(out, "%d. %s (%s)\n", i+1, d.Name, d.Output)
				fmt.Fprintf(out, "   %s\n", d.Description)
			}
			return nil
		},
	}
}
