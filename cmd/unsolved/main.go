package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/programme-lv/unsolved/cfapi"
	"github.com/programme-lv/unsolved/conf"
	"github.com/programme-lv/unsolved/logger"
	"github.com/programme-lv/unsolved/present"
	"github.com/programme-lv/unsolved/unsolved/unsolvedsrvc"
)

func main() {
	handle := flag.String("handle", "", "judge handle; prompts interactively when empty")
	chartPath := flag.String("chart", "", "write the tag bar chart PNG to this path")
	asJSON := flag.Bool("json", false, "print the result as JSON")
	flag.Parse()

	cfg, err := conf.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, present.ErrStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}

	// stdout belongs to the presenter
	slog.SetDefault(logger.New(os.Stderr, cfg.LogLevel, cfg.Env))

	srvc := unsolvedsrvc.NewUnsolvedSrvc(cfapi.NewClient(
		cfapi.WithBaseURL(cfg.CfAPIBaseURL),
		cfapi.WithCount(cfg.SubmCount),
		cfapi.WithTimeout(cfg.HTTPTimeout),
	), nil)

	if strings.TrimSpace(*handle) == "" {
		p := tea.NewProgram(initialModel(srvc, cfg.ProblemBaseURL, *chartPath), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintln(os.Stderr, present.ErrStyle.Render(fmt.Sprintf("Error: %v", err)))
			os.Exit(1)
		}
		return
	}

	if err := run(context.Background(), os.Stdout, srvc, runOpts{
		handle:         strings.TrimSpace(*handle),
		problemBaseURL: cfg.ProblemBaseURL,
		chartPath:      *chartPath,
		json:           *asJSON,
		notes:          os.Stderr,
	}); err != nil {
		fmt.Fprintln(os.Stderr, present.ErrStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

type runOpts struct {
	handle         string
	problemBaseURL string
	chartPath      string
	json           bool
	notes          io.Writer // messages that must stay out of the result output
}

func run(ctx context.Context, out io.Writer, srvc *unsolvedsrvc.UnsolvedSrvc, opts runOpts) error {
	view, err := compute(ctx, srvc, opts.handle, opts.problemBaseURL)
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		fmt.Fprint(out, present.RenderText(view, 0))
	}

	if opts.chartPath == "" {
		return nil
	}
	if len(view.Tags) == 0 {
		if opts.notes != nil {
			fmt.Fprintf(opts.notes, "no tags to chart, %s not written\n", opts.chartPath)
		}
		return nil
	}
	return writeChart(opts.chartPath, view.Tags)
}

func compute(ctx context.Context, srvc *unsolvedsrvc.UnsolvedSrvc, handle, problemBaseURL string) (present.UnsolvedView, error) {
	res, err := srvc.ComputeUnsolved.Handle(ctx, unsolvedsrvc.ComputeUnsolvedParams{Handle: handle})
	if err != nil {
		return present.UnsolvedView{}, err
	}
	return present.NewUnsolvedView(res.Handle, res.Buckets, res.Tags, problemBaseURL), nil
}

func writeChart(path string, tags []present.Tag) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := present.RenderTagChart(f, tags); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to render tag chart: %w", err)
	}
	return f.Close()
}
