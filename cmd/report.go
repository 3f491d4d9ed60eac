package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/devinsight/internal/domain"
)

var reportCmd = &cobra.Command{
	Use:   "report <username>",
	Short: "Builds the analytics report of a GitHub user",
	Long:  `Fetches the profile, repositories and organizations of a GitHub user and prints the derived report as JSON or as tables.`,
	Args:  cobra.MatchAll(cobra.ExactArgs(1), usernameArg),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		format, _ := cmd.Flags().GetString("format")
		if format != "json" && format != "table" {
			return fmt.Errorf("unsupported format %q (want json or table)", format)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		aggregator, err := newAggregator(cfg, logger)
		if err != nil {
			return err
		}

		report, err := aggregator.Report(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}

		if format == "table" {
			return renderReport(report)
		}

		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(jsonData))
		return nil
	},
}

// usernameArg rejects a blank username before any request is made.
func usernameArg(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("username must not be empty")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("format", "f", "json", "Output format: json or table")
	reportCmd.Flags().String("api", "rest", "GitHub API backend: rest or graphql (graphql needs GITHUB_TOKEN)")
}

// renderReport prints the report as terminal tables.
func renderReport(r *domain.Report) error {
	p := r.Profile
	title := p.Username
	if p.Name != "" {
		title = fmt.Sprintf("%s (@%s)", p.Name, p.Username)
	}
	pterm.DefaultSection.Println(title)

	overview := pterm.TableData{
		{"Metric", "Value"},
		{"Developer score", strconv.Itoa(r.Stats.DeveloperScore)},
		{"Activity", string(r.Stats.ActivityLevel)},
		{"Personality", r.Stats.Personality},
		{"Public repos", strconv.Itoa(p.PublicRepos)},
		{"Stars / forks", fmt.Sprintf("%d / %d", r.Stats.TotalStars, r.Stats.TotalForks)},
		{"Followers / following", fmt.Sprintf("%d / %d", p.Followers, p.Following)},
		{"Organizations", strconv.Itoa(len(p.Organizations))},
		{"Rating", strconv.FormatFloat(r.AIReview.Rating, 'f', 1, 64)},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(overview).Render(); err != nil {
		return err
	}

	if len(r.Stats.Languages) > 0 {
		langs := pterm.TableData{{"Language", "Repos", "%"}}
		for _, l := range r.Stats.Languages {
			langs = append(langs, []string{l.Name, strconv.Itoa(l.Count), strconv.Itoa(l.Percentage)})
		}
		pterm.DefaultSection.WithLevel(2).Println("Languages")
		if err := pterm.DefaultTable.WithHasHeader().WithData(langs).Render(); err != nil {
			return err
		}
	}

	if len(r.Stats.TopRepos) > 0 {
		repos := pterm.TableData{{"Repository", "Stars", "Language"}}
		for _, repo := range r.Stats.TopRepos {
			repos = append(repos, []string{repo.Name, strconv.Itoa(repo.Stars), repo.Language})
		}
		pterm.DefaultSection.WithLevel(2).Println("Top repositories")
		if err := pterm.DefaultTable.WithHasHeader().WithData(repos).Render(); err != nil {
			return err
		}
	}

	if len(r.Stats.RepoHealth) > 0 {
		health := pterm.TableData{{"Repository", "Score", "Status"}}
		for _, h := range r.Stats.RepoHealth {
			health = append(health, []string{h.Name, fmt.Sprintf("%d/4", h.Score), string(h.Status)})
		}
		pterm.DefaultSection.WithLevel(2).Println("Repository health")
		if err := pterm.DefaultTable.WithHasHeader().WithData(health).Render(); err != nil {
			return err
		}
	}

	pterm.DefaultSection.WithLevel(2).Println("Review")
	for _, s := range r.AIReview.Strengths {
		pterm.Success.Println(s)
	}
	for _, w := range r.AIReview.Weaknesses {
		pterm.Warning.Println(w)
	}
	pterm.Info.Println(r.AIReview.Suggestion)

	pterm.DefaultBox.WithTitle("Resume insight").Println(r.ResumeInsight)
	return nil
}
