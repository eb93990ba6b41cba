package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/ivlev/promoreel/internal/director"
	"github.com/ivlev/promoreel/internal/engine"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Show scene placement and transition windows",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of a table"},
		},
		Action: infoAction,
	}
}

func infoAction(c *cli.Context) error {
	p, err := openProject(c, configFrom(c))
	if err != nil {
		return err
	}
	summary := p.Summarize()

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return printSummary(c, summary)
}

func printSummary(c *cli.Context, s engine.Summary) error {
	fmt.Fprintf(c.App.Writer, "%d frames at %g fps (%.2fs)\n\n", s.TotalFrames, s.FPS, s.Seconds)

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tSTART\tDURATION\tPARAMETERS")
	for _, sc := range s.Scenes {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", sc.ID, sc.Start, sc.Duration, strings.Join(sc.Parameters, " "))
	}
	if len(s.Overlaps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "TRANSITION\tWINDOW\tPRESENTATION")
		for _, o := range s.Overlaps {
			fmt.Fprintf(w, "%s -> %s\t[%d, %d)\t%s\n", o.From, o.To, o.Start, o.End, o.Presentation)
		}
	}
	return w.Flush()
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Print the resolved state of each frame",
		Flags: append(rangeFlags(),
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "json or msgpack"},
		),
		Action: resolveAction,
	}
}

func resolveAction(c *cli.Context) error {
	cfg := configFrom(c)
	cfg.Format = c.String("format")
	p, err := openProject(c, cfg)
	if err != nil {
		return err
	}
	return p.Dump(c.Context, c.App.Writer)
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:   "verify",
		Usage:  "Check coverage, blend weights and determinism of every frame",
		Action: verifyAction,
	}
}

func verifyAction(c *cli.Context) error {
	p, err := openProject(c, configFrom(c))
	if err != nil {
		return err
	}
	report, err := p.Verify(c.Context)
	if err != nil {
		return err
	}

	if report.OK() {
		fmt.Fprintf(c.App.Writer, "ok: %d frames, %d in transitions\n", report.Frames, report.OverlapFrames)
		return nil
	}
	for _, issue := range report.Issues {
		fmt.Fprintf(c.App.Writer, "frame %d: %s\n", issue.Frame, issue.Reason)
	}
	return cli.Exit(fmt.Sprintf("%d issues found", len(report.Issues)), 3)
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Paint preview frames as PNG files",
		Flags: append(rangeFlags(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "output", Usage: "Output directory"},
			&cli.BoolFlag{Name: "stats", Usage: "Log a performance report"},
		),
		Action: renderAction,
	}
}

func renderAction(c *cli.Context) error {
	cfg := configFrom(c)
	cfg.OutputDir = c.String("out")
	cfg.ShowStats = c.Bool("stats")
	p, err := openProject(c, cfg)
	if err != nil {
		return err
	}
	report, err := p.Render(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "rendered %d frames to %s\n", report.Frames, report.OutDir)
	return nil
}

func scaffoldCommand() *cli.Command {
	return &cli.Command{
		Name:  "scaffold",
		Usage: "Write the built-in showcase as an editable scenario file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: defaultScenarioDir, Usage: "Target directory"},
		},
		Action: scaffoldAction,
	}
}

func scaffoldAction(c *cli.Context) error {
	dir := c.String("dir")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path := director.GenerateScenarioPath(dir)
	if err := director.WriteScenario(director.DefaultScenario(), path); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, path)
	return nil
}
