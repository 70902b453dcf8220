package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"pathways.rf2lab.org/internal/appconf"
	"pathways.rf2lab.org/internal/dashboard"
	"pathways.rf2lab.org/internal/dataset"
	"pathways.rf2lab.org/internal/logging"
	"pathways.rf2lab.org/internal/models"
	"pathways.rf2lab.org/internal/textview"
	"pathways.rf2lab.org/internal/webui"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatHTML = "html"
)

type renderOptions struct {
	industry    string
	sensitivity float64
	format      string
	width       int
	output      string
}

func (c *cli) newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one dashboard view to the terminal, JSON or a standalone HTML page",
		Example: `  dashboard render --industry Technology --sensitivity 80
  dashboard render --industry heavy-manufacturing --format html --output report.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.industry, "industry", "", "Industry name or slug (default: first industry)")
	fs.Float64Var(&opts.sensitivity, "sensitivity", 0, "Cost sensitivity (default: middle of the range)")
	fs.StringVar(&opts.format, "format", formatText, "Output format (text|json|html)")
	fs.IntVar(&opts.width, "width", textview.DefaultWidth, "Text output width")
	fs.StringVarP(&opts.output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func (c *cli) runRender(cmd *cobra.Command, opts renderOptions) (err error) {
	switch opts.format {
	case formatText, formatJSON, formatHTML:
	default:
		return fmt.Errorf("unknown format %q (want text, json or html)", opts.format)
	}

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := c.newLogger(cfg)
	if err != nil {
		return err
	}

	view, err := renderView(cfg, opts, cmd.Flags().Changed("sensitivity"))
	if err != nil {
		return err
	}

	out := c.stdout
	if opts.output != "" {
		var f *os.File
		f, err = os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer logging.HandleDeferredError(&err, f.Close, logger, "close_render_output")
		out = f
	}

	return writeView(out, view, cfg.Theme, opts)
}

// renderView derives the view for the requested industry and sensitivity.
func renderView(cfg appconf.Config, opts renderOptions, sensitivitySet bool) (models.View, error) {
	ds, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return models.View{}, fmt.Errorf("loading dataset: %w", err)
	}
	r, err := dashboard.NewRenderer(ds, cfg.DashboardOptions())
	if err != nil {
		return models.View{}, err
	}

	sel := r.DefaultSelection()
	if opts.industry != "" {
		if sel, err = r.SelectIndustry(sel, opts.industry); err != nil {
			return models.View{}, err
		}
	}
	if sensitivitySet {
		sel = r.AdjustCostSensitivity(sel, opts.sensitivity)
	}
	return r.Render(sel)
}

func writeView(w io.Writer, view models.View, theme appconf.Theme, opts renderOptions) error {
	switch opts.format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(view)
	case formatHTML:
		pages, err := webui.NewPageRenderer(theme)
		if err != nil {
			return err
		}
		return pages.RenderStandalone(w, view)
	default:
		profile := termenv.Ascii
		if f, ok := w.(*os.File); ok {
			profile = termenv.NewOutput(f).EnvColorProfile()
		}
		_, err := io.WriteString(w, textview.NewPrinter(w, profile, theme, opts.width).Render(view))
		return err
	}
}
