// Package app owns the loaded dataset and turns group selections into views.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/KaramelBytes/sectorlens/internal/analysis"
	"github.com/KaramelBytes/sectorlens/internal/columns"
	"github.com/KaramelBytes/sectorlens/internal/config"
	"github.com/KaramelBytes/sectorlens/internal/dataset"
	"github.com/KaramelBytes/sectorlens/internal/logging"
	"github.com/KaramelBytes/sectorlens/internal/render"
)

// Options configures a Controller.
type Options struct {
	Source         string
	Load           dataset.Options
	GroupField     columns.Field
	SubsectorField columns.Field
	PreviewLimit   int
	AllLabel       string
	Locale         string
	ChartTitle     string
	ChartPalette   []string
	ChartSize      int
}

// OptionsFromConfig maps the global configuration onto controller options.
func OptionsFromConfig(c *config.Global) Options {
	return Options{
		Source: c.Source,
		Load: dataset.Options{
			Sheet:       c.Sheet,
			Delimiter:   c.DelimiterRune(),
			HTTPTimeout: time.Duration(c.HTTPTimeoutSec) * time.Second,
		},
		GroupField:     columns.Field{Name: "grupo", Patterns: c.GroupPatterns},
		SubsectorField: columns.Field{Name: "subsector", Patterns: c.SubsectorPatterns, Required: true},
		PreviewLimit:   c.PreviewLimit,
		AllLabel:       c.AllLabel,
		Locale:         c.Locale,
		ChartTitle:     "Subsectores",
		ChartPalette:   c.ChartPalette,
		ChartSize:      c.ChartSize,
	}
}

// State is built once by Load and only read afterwards.
type State struct {
	Dataset   *dataset.Dataset
	Group     columns.Binding
	Subsector columns.Binding
	// Groups holds the distinct group values in display order.
	Groups []string
}

// Fields returns the resolved headers, "" for unresolved ones.
func (s *State) Fields() analysis.Fields {
	return analysis.Fields{Group: s.Group.Header, Subsector: s.Subsector.Header}
}

// Controller loads a dataset once and derives views from it. After Load
// returns, every method only reads the state and is safe for concurrent use.
type Controller struct {
	opts  Options
	state *State
	err   error
}

// New returns a controller that has not loaded anything yet.
func New(opts Options) *Controller {
	if opts.AllLabel == "" {
		opts.AllLabel = "Todos"
	}
	if opts.Locale == "" {
		opts.Locale = "es"
	}
	return &Controller{opts: opts}
}

// Load reads the configured source and prepares the state. Any failure is
// kept and reported by later View and Render calls as a status message.
func (c *Controller) Load(ctx context.Context) error {
	if c.state != nil || c.err != nil {
		return ErrAlreadyLoaded
	}
	ds, err := dataset.Load(ctx, c.opts.Source, c.opts.Load)
	if err != nil {
		return c.fail(&LoadError{Source: c.opts.Source, Err: err})
	}
	return c.Init(ds)
}

// Init prepares the state from an already loaded dataset.
func (c *Controller) Init(ds *dataset.Dataset) error {
	if c.state != nil || c.err != nil {
		return ErrAlreadyLoaded
	}
	if ds.Len() == 0 {
		return c.fail(ErrEmptyDataset)
	}
	st := &State{
		Dataset:   ds,
		Group:     columns.Bind(ds.Headers, c.opts.GroupField),
		Subsector: columns.Bind(ds.Headers, c.opts.SubsectorField),
	}
	for _, b := range []columns.Binding{st.Group, st.Subsector} {
		if !b.Found && b.Field.Required {
			return c.fail(&UnresolvedFieldError{Field: b.Field.Name, Patterns: b.Field.Patterns})
		}
	}
	if st.Group.Found {
		st.Groups = analysis.SortGroups(analysis.DistinctGroupValues(ds.Records, st.Group.Header), c.opts.Locale)
	} else {
		logging.Logger().Info("group column not found; filters disabled", "patterns", c.opts.GroupField.Patterns)
	}
	logging.Logger().Debug("fields resolved",
		"group", st.Group.Header, "subsector", st.Subsector.Header, "groups", len(st.Groups))
	c.state = st
	return nil
}

func (c *Controller) fail(err error) error {
	logging.Logger().Error("dataset unavailable", "source", c.opts.Source, "err", err)
	c.err = err
	return err
}

// State returns the loaded state, or the load error.
func (c *Controller) State() (*State, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.state == nil {
		return nil, &LoadError{Source: c.opts.Source, Err: errNotLoaded}
	}
	return c.state, nil
}

// Options returns the controller's options with defaults applied.
func (c *Controller) Options() Options { return c.opts }

// Selection maps a group value from a query or flag to a selection. The
// all label selects every record, as the "all" chip does.
func (c *Controller) Selection(group string) analysis.Selection {
	group = strings.TrimSpace(group)
	if group == c.opts.AllLabel {
		return analysis.All
	}
	return analysis.SelectGroup(group)
}

// View derives the view for sel.
func (c *Controller) View(sel analysis.Selection) (*analysis.View, error) {
	st, err := c.State()
	if err != nil {
		return nil, err
	}
	return analysis.BuildView(st.Dataset, st.Fields(), st.Groups, sel, c.opts.PreviewLimit), nil
}

// Chart returns the subsector chart for a view.
func (c *Controller) Chart(v *analysis.View) render.Chart {
	return render.Chart{
		Title:   c.opts.ChartTitle,
		Entries: v.Counts,
		Palette: c.opts.ChartPalette,
		Size:    c.opts.ChartSize,
	}
}

// Chips returns the "all" chip followed by one chip per group, or nil when
// the group column is unresolved.
func (c *Controller) Chips(v *analysis.View) []render.Chip {
	if v.Fields.Group == "" {
		return nil
	}
	chips := make([]render.Chip, 0, len(v.Groups)+1)
	chips = append(chips, render.Chip{Label: c.opts.AllLabel, Selection: analysis.All, Active: v.Selection.IsAll()})
	for _, g := range v.Groups {
		chips = append(chips, render.Chip{Label: g, Selection: analysis.SelectGroup(g), Active: v.Selection.Group == g})
	}
	return chips
}

// Render draws the view for sel: chips, then the chart when there is
// something to count, then the preview table. If loading failed only the
// status message is drawn.
func (c *Controller) Render(r render.Renderer, sel analysis.Selection) error {
	v, err := c.View(sel)
	if err != nil {
		return r.RenderMessage(StatusMessage(err))
	}
	if chips := c.Chips(v); chips != nil {
		if err := r.RenderChips(chips); err != nil {
			return err
		}
	}
	if len(v.Counts) > 0 {
		if err := r.RenderChart(c.Chart(v)); err != nil {
			return err
		}
	}
	return r.RenderTable(render.Table{Headers: v.Headers, Rows: v.Rows, Matched: v.Matched})
}
