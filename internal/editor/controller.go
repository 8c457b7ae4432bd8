package editor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"formbench/internal/model"
)

// Gateway is the persistence contract the controller needs.
type Gateway interface {
	Save(ctx context.Context, st model.PersistedState) error
	Load(ctx context.Context) (model.PersistedState, bool, error)
}

// Controller owns the editor state for one editing session. Views call its On*
// entry points; each one commits list, selection and drag state together before
// returning.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	gw       Gateway
	catalog  model.Catalog
	log      *slog.Logger
	defaults model.CanvasSettings

	items    model.Form
	settings model.CanvasSettings
	drag     Drag
	sel      Selection
	dirty    bool
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithCatalog(cat model.Catalog) Option {
	return func(c *Controller) {
		if len(cat.Entries) > 0 {
			c.catalog = cat
		}
	}
}

// WithDefaults sets the canvas settings used before anything is loaded and after
// reverting with nothing saved.
func WithDefaults(st model.CanvasSettings) Option {
	return func(c *Controller) {
		if col, err := model.ParseColor(st.BackgroundColor); err == nil {
			c.defaults.BackgroundColor = col
		}
		if m, ok := model.ParseLayoutMode(string(st.Layout)); ok {
			c.defaults.Layout = m
		}
	}
}

func NewController(gw Gateway, opts ...Option) *Controller {
	c := &Controller{
		gw:       gw,
		catalog:  model.DefaultCatalog(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults: model.DefaultCanvasSettings(),
		items:    model.Form{},
	}
	for _, o := range opts {
		o(c)
	}
	c.settings = c.defaults
	return c
}

func (c *Controller) Items() model.Form { return c.items.Clone() }
func (c *Controller) Settings() model.CanvasSettings { return c.settings }
func (c *Controller) Selection() Selection { return c.sel }
func (c *Controller) Catalog() model.Catalog { return c.catalog }
func (c *Controller) Dirty() bool { return c.dirty }
func (c *Controller) Dragging() (Session, bool) { return c.drag.Peek() }
func (c *Controller) State() model.PersistedState { return c.persisted() }
func (c *Controller) SelectedIndex() (int, bool) { return c.sel.Index(c.items) }
func (c *Controller) SelectedItem() (model.FormItem, bool) {
	i, ok := c.sel.Index(c.items)
	if !ok {
		return model.FormItem{}, false
	}
	return c.items[i], true
}

func (c *Controller) OnPaletteDragStart(kind model.Kind) bool {
	e, ok := c.catalog.Lookup(kind)
	if !ok {
		c.log.Debug("drag start ignored: unknown kind", "kind", string(kind))
		c.drag.End()
		return false
	}
	s := PaletteSession(e.Kind)
	s.Item = c.catalog.NewItem(e.Kind)
	c.drag.Start(s)
	c.log.Debug("drag start", "origin", s.Origin.String(), "kind", string(e.Kind))
	return true
}

func (c *Controller) OnCanvasDragStart(index int) bool {
	s, err := CanvasSession(c.items, index)
	if err != nil {
		c.log.Debug("drag start ignored", "err", err)
		c.drag.End()
		return false
	}
	c.drag.Start(s)
	c.log.Debug("drag start", "origin", s.Origin.String(), "index", index, "item", s.Item.ID)
	return true
}

// OnDragEnd cancels an in-flight drag (released outside any drop target).
func (c *Controller) OnDragEnd() {
	c.drag.End()
}

func (c *Controller) OnDropAtSlot(index int) bool {
	return c.drop(index)
}

// OnDropOnCanvas drops onto the canvas background, which appends.
func (c *Controller) OnDropOnCanvas() bool {
	return c.drop(len(c.items))
}

func (c *Controller) drop(target int) bool {
	s, ok := c.drag.Peek()
	c.drag.End()
	if !ok {
		c.log.Debug("drop ignored", "err", ErrNoActiveDragSession, "target", target)
		return false
	}
	res, err := Drop(c.items, &s, target)
	if err != nil {
		c.log.Debug("drop ignored", "err", err, "target", target)
		return false
	}
	if !res.Changed {
		return false
	}
	c.items = res.Items
	c.sel = Selection{Kind: SelectItem, ItemID: res.Items[res.Index].ID}
	c.dirty = true
	c.log.Debug("drop", "origin", s.Origin.String(), "at", res.Index, "len", len(c.items))
	return true
}

func (c *Controller) OnItemClick(index int) bool {
	sel, err := ItemSelection(c.items, index)
	if err != nil {
		c.log.Debug("select ignored", "err", err)
		return false
	}
	c.sel = sel
	return true
}

func (c *Controller) OnCanvasClick() {
	c.sel = CanvasSelection()
}

// Hit describes what a single pointer event landed on. An event over an item is
// also over the canvas behind it; OnPointer resolves that so the item wins.
type Hit struct {
	Item     int
	OnItem   bool
	OnCanvas bool
}

func (c *Controller) OnPointer(h Hit) bool {
	if h.OnItem {
		return c.OnItemClick(h.Item)
	}
	if h.OnCanvas {
		c.OnCanvasClick()
		return true
	}
	return false
}

func (c *Controller) OnDeleteItem(index int) bool {
	next, err := DeleteAt(c.items, index)
	if err != nil {
		c.log.Debug("delete ignored", "err", err)
		return false
	}
	c.items = next
	c.sel = c.sel.Resync(c.items)
	// A drag lifted from the canvas may now point at the wrong slot.
	if s, ok := c.drag.Peek(); ok && s.Origin == OriginCanvas {
		c.drag.End()
	}
	c.dirty = true
	return true
}

func (c *Controller) OnEditSelectedText(text string) bool {
	i, ok := c.sel.Index(c.items)
	if !ok {
		c.log.Debug("edit ignored: no item selected")
		return false
	}
	if c.items[i].Text == text {
		return false
	}
	next := c.items.Clone()
	next[i].Text = text
	c.items = next
	c.dirty = true
	return true
}

func (c *Controller) OnSetSelectedRequired(req bool) bool {
	i, ok := c.sel.Index(c.items)
	if !ok {
		c.log.Debug("required ignored: no item selected")
		return false
	}
	it := c.items[i].WithRequired(req)
	if it.Required == c.items[i].Required {
		return false
	}
	next := c.items.Clone()
	next[i] = it
	c.items = next
	c.dirty = true
	return true
}

func (c *Controller) OnChangeBackground(color string) bool {
	col, err := model.ParseColor(color)
	if err != nil {
		c.log.Debug("background ignored", "err", err)
		return false
	}
	if col == c.settings.BackgroundColor {
		return false
	}
	c.settings.BackgroundColor = col
	c.dirty = true
	return true
}

func (c *Controller) OnChangeLayout(mode string) bool {
	m, ok := model.ParseLayoutMode(mode)
	if !ok || strings.TrimSpace(mode) == "" {
		c.log.Debug("layout ignored", "mode", mode)
		return false
	}
	if m == c.settings.Layout {
		return false
	}
	c.settings.Layout = m
	c.dirty = true
	return true
}

func (c *Controller) OnSave(ctx context.Context) error {
	if c.gw == nil {
		return errors.New("editor: no persistence gateway")
	}
	if err := c.gw.Save(ctx, c.persisted()); err != nil {
		return err
	}
	c.dirty = false
	c.log.Info("saved", "items", len(c.items), "bg", c.settings.BackgroundColor)
	return nil
}

// OnLoad replaces the editor state with the saved state. With nothing (usable)
// saved, the in-memory state is left alone and loaded is false.
func (c *Controller) OnLoad(ctx context.Context) (loaded bool, err error) {
	if c.gw == nil {
		return false, errors.New("editor: no persistence gateway")
	}
	st, ok, err := c.gw.Load(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		c.log.Debug("load: nothing saved")
		return false, nil
	}
	c.apply(st)
	return true, nil
}

// OnRevert discards unsaved changes and restores the last saved state, or the
// defaults when nothing has been saved.
func (c *Controller) OnRevert(ctx context.Context) error {
	if c.gw == nil {
		return errors.New("editor: no persistence gateway")
	}
	st, ok, err := c.gw.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		st = model.PersistedState{Items: model.Form{}, BackgroundColor: c.defaults.BackgroundColor, Layout: c.defaults.Layout}
	}
	c.apply(st)
	c.log.Info("reverted", "items", len(c.items))
	return nil
}

func (c *Controller) apply(st model.PersistedState) {
	c.items = st.Items.Clone()
	c.settings = st.Settings()
	c.sel = NoSelection()
	c.drag.End()
	c.dirty = false
}

func (c *Controller) persisted() model.PersistedState {
	return model.PersistedState{
		Items:           c.items.Clone(),
		BackgroundColor: c.settings.BackgroundColor,
		Layout:          c.settings.Layout,
	}
}
