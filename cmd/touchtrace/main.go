package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/milk9111/touchpad/prefabs"
	"github.com/milk9111/touchpad/replay"
	"github.com/milk9111/touchpad/touch"
	"github.com/spf13/cobra"
)

var (
	plotHeight int
	plotWidth  int

	title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "touchtrace",
		Short:        "replay gesture scripts through a virtual touch control",
		SilenceUsage: true,
	}

	runCmd := &cobra.Command{
		Use:   "run [script]",
		Short: "replay a gesture script and plot every mapped axis",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	runCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height in rows")
	runCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width in columns")

	validateCmd := &cobra.Command{
		Use:   "validate [layout]",
		Short: "check a control layout (defaults to the bundled one)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  validateLayout,
	}

	rootCmd.AddCommand(runCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := replay.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := replay.Run(script)
	if err != nil {
		return err
	}

	name := script.Name
	if name == "" {
		name = args[0]
	}
	fmt.Println(title.Render(name))
	fmt.Println(dim.Render(fmt.Sprintf("control %s, %d frames", script.Control.Name, len(samples))))
	fmt.Println()

	for _, m := range script.Control.Mappings {
		t, _ := touch.ParseTouchType(m.Type)
		if t == touch.Press {
			continue
		}
		graph := asciigraph.Plot(replay.Series(samples, m.Name),
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("%s (%s)", m.Name, t)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	var downs, ups []string
	for _, s := range samples {
		if s.Down {
			downs = append(downs, fmt.Sprint(s.Frame))
		}
		if s.Up {
			ups = append(ups, fmt.Sprint(s.Frame))
		}
	}
	fmt.Printf("%s %s\n", green.Render("down:"), joinOrNone(downs))
	fmt.Printf("%s %s\n", red.Render("up:  "), joinOrNone(ups))
	return nil
}

func validateLayout(cmd *cobra.Command, args []string) error {
	var (
		layout *prefabs.LayoutSpec
		err    error
	)
	if len(args) == 1 {
		data, rerr := os.ReadFile(args[0])
		if rerr != nil {
			return rerr
		}
		layout, err = prefabs.ParseLayout(data)
	} else {
		layout, err = prefabs.LoadLayout(prefabs.LayoutFile)
	}
	if err != nil {
		fmt.Println(red.Render("invalid"))
		return err
	}

	fmt.Println(title.Render(layout.Name), green.Render("ok"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONTROL\tPOSITION\tRADIUS\tMAPPINGS")
	for _, c := range layout.Controls {
		names := make([]string, len(c.Mappings))
		for i, m := range c.Mappings {
			names[i] = m.Name + ":" + m.Type
		}
		fmt.Fprintf(w, "%s\t(%.0f, %.0f)\t%.0f\t%s\n", c.Name, c.X, c.Y, c.Radius, strings.Join(names, " "))
	}
	return w.Flush()
}

func joinOrNone(frames []string) string {
	if len(frames) == 0 {
		return dim.Render("none")
	}
	return strings.Join(frames, ", ")
}
