package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/widget"
)

// node is the YAML form of one configured widget.
type node struct {
	ID       string `yaml:"id"`
	Type     string `yaml:"type"`
	Rect     rect   `yaml:"rect,flow"`
	Title    string `yaml:"title,omitempty"`
	Children []node `yaml:"children,omitempty"`
}

type rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func newInspectCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "inspect <app>",
		Short: "Print the configured widget trees of an app as YAML",
		Long: `Builds the windows of an app, lays them out at the given size and prints
every widget with its ID, type and rectangle. The IDs are the targets
accepted by the console UI and by scripts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ok := findApp(args[0])
			if !ok {
				return fmt.Errorf("unknown app %q", args[0])
			}
			return inspect(cmd.OutOrStdout(), a, event.Size{W: width, H: height})
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "window width in cells")
	cmd.Flags().IntVar(&height, "height", 24, "window height in cells")
	return cmd
}

func inspect(w io.Writer, a app, size event.Size) error {
	data := a.appData()
	var trees []node
	for _, root := range a.windows() {
		d := widget.NewDispatcher(root, widget.WithAppData(data))
		d.Resize(size)
		d.Update(data)
		trees = append(trees, describe(root))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(trees); err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	return enc.Close()
}

func describe(w widget.Widget) node {
	r := w.Core().Rect()
	n := node{
		ID:   w.Core().ID().String(),
		Type: typeName(w),
		Rect: rect{X: r.X, Y: r.Y, W: r.W, H: r.H},
	}
	if t, ok := w.(widget.Titled); ok {
		n.Title = t.Title()
	}
	for _, c := range w.Children() {
		n.Children = append(n.Children, describe(c))
	}
	return n
}

// typeName returns the package-qualified type of w without type
// arguments, e.g. "widgets.Text".
func typeName(w widget.Widget) string {
	s := fmt.Sprintf("%T", w)
	if i := strings.IndexByte(s, '['); i >= 0 {
		s = s[:i]
	}
	return strings.TrimPrefix(s, "*")
}
