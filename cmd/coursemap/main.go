package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"coursemap/internal/config"
	"coursemap/internal/course"
	"coursemap/internal/layout"
	"coursemap/internal/logger"
	"coursemap/internal/render"
	"coursemap/internal/server"
	"coursemap/internal/view"
)

var (
	cfgPath  string
	dataPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coursemap",
		Short: "Coursework hierarchy visualization",
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset path (overrides config)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(orderCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, err
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	return cfg, nil
}

func loadModel() (*course.Model, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	m, err := course.LoadFile(cfg.DataPath)
	if err != nil {
		return nil, cfg, err
	}
	return m, cfg, nil
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			log, err := logger.New(cfg.Mode)
			if err != nil {
				return err
			}
			defer log.Sync()
			return server.New(cfg, log).Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	return cmd
}

func renderCmd() *cobra.Command {
	var (
		variant string
		out     string
		focus   string
		select_ string
		width   float64
		height  float64
		theme   string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the diagram to a file (.svg, .png, or .pdf by extension)",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, cfg, err := loadModel()
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()

			if summary {
				format := strings.TrimPrefix(filepath.Ext(out), ".")
				if format == "" {
					format = "svg"
				}
				return render.SummaryChart(f, m, format)
			}

			if variant == "" {
				variant = cfg.Layout.Variant
			}
			eng, err := layout.New(layout.Variant(variant), layout.Options{
				TileTarget: cfg.Layout.TileTarget,
				TileMin:    cfg.Layout.TileMin,
				TileMax:    cfg.Layout.TileMax,
			})
			if err != nil {
				return err
			}

			ma := view.NewMachine(m, cfg.ResizeThreshold)
			st := view.State{}
			if focus != "" {
				st, _ = ma.Apply(st, view.LegendClick{Subject: focus})
			}
			if select_ != "" {
				st, _ = ma.Apply(st, view.TileActivate{ID: select_})
			}

			d, err := eng.Compute(m, layout.Bounds{W: width, H: height}, st.FocusedSubject)
			if err != nil {
				return err
			}

			th := render.ParseTheme(theme)
			switch filepath.Ext(out) {
			case ".svg":
				return render.SVG(f, d, st, th)
			case ".png":
				return render.PNG(f, d, st, th)
			case ".pdf":
				return render.PDF(f, d, m, st, th)
			default:
				return fmt.Errorf("unsupported output extension %q", filepath.Ext(out))
			}
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "layout variant: treemap, sunburst, radialtree, circlepack")
	cmd.Flags().StringVarP(&out, "out", "o", "coursework.svg", "output file")
	cmd.Flags().StringVar(&focus, "focus", "", "focus on one subject")
	cmd.Flags().StringVar(&select_, "select", "", "pinned course id")
	cmd.Flags().Float64Var(&width, "width", 960, "diagram width in pixels")
	cmd.Flags().Float64Var(&height, "height", 600, "diagram height in pixels")
	cmd.Flags().StringVar(&theme, "theme", "dark", "theme: light or dark")
	cmd.Flags().BoolVar(&summary, "summary", false, "render the courses-per-subject chart instead")
	return cmd
}

func validateCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the dataset and report integrity findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := loadModel()
			if err != nil {
				return err
			}

			fmt.Printf("subjects: %d\n", len(m.Subjects))
			fmt.Printf("courses:  %d\n", m.Len())
			fmt.Printf("stages:   %d\n", len(m.Raw.Stages))
			fmt.Printf("links:    %d\n", len(m.Raw.Links))

			if dangling := m.Dangling(); len(dangling) > 0 {
				fmt.Printf("dangling edges (%d):\n", len(dangling))
				for _, e := range dangling {
					fmt.Printf("  %s -> %s\n", e.Source, e.Target)
				}
			}

			if list {
				fmt.Println()
				for _, row := range m.Flatten() {
					fmt.Printf("%-20s %-24s %-10s %s\n", row.Subject, row.Group, row.Code, row.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "print the flat course listing")
	return cmd
}

func orderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print courses so every prerequisite comes before what it unlocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := loadModel()
			if err != nil {
				return err
			}
			for i, id := range m.Order() {
				fmt.Printf("%3d. %s\n", i+1, m.Label(id))
			}
			return nil
		},
	}
}
