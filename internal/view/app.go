// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package view

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/rs/zerolog/log"

	"github.com/vdash/vdash/internal/aws"
	"github.com/vdash/vdash/internal/config"
	"github.com/vdash/vdash/internal/config/data"
	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model"
	"github.com/vdash/vdash/internal/model1"
	"github.com/vdash/vdash/internal/nav"
	"github.com/vdash/vdash/internal/ui"
)

const footerText = "© work order ♥ crafted by Team tit"

// LogoSmall is shown in the header.
var LogoSmall = []string{
	`            _           _     `,
	` __   ____| | __ _ ___| |__  `,
	" \\ \\ / / _` |/ _` / __| '_ \\ ",
	`  \ V / (_| | (_| \__ \ | | |`,
	`   \_/ \__,_|\__,_|___/_| |_|`,
}

// InputCapturer is a view that needs every key, such as a form.
type InputCapturer interface {
	CapturesInput() bool
}

// App represents the application.
type App struct {
	*tview.Application

	version  string
	cfg      *config.Config
	factory  *dao.SwitchFactory
	aliases  *config.Aliases
	hotkeys  *config.HotKeys
	profiles *aws.ProfileDiscovery
	navMenu  nav.Menu

	Main      *tview.Pages
	Content   *ui.Pages
	command   *Command
	cmdBar    *ui.CmdBar
	menu      *ui.Menu
	crumbs    *ui.Crumbs
	flash     *ui.Flash
	sidebar   *Sidebar
	storeInfo *StoreInfo
	actions   *ui.KeyActions
	running   bool
	mx        sync.RWMutex
}

// NewApp returns an application over the records of f.
func NewApp(cfg *config.Config, f *dao.DataFactory, version string) *App {
	a := App{
		Application: tview.NewApplication(),
		version:     version,
		cfg:         cfg,
		factory:     dao.NewSwitchFactory(f),
		aliases:     config.NewAliases(),
		hotkeys:     config.NewHotKeys(),
		profiles:    aws.NewProfileDiscovery(),
		navMenu:     nav.VendorMenu(),
		Main:        tview.NewPages(),
		Content:     ui.NewPages(),
		cmdBar:      ui.NewCmdBar(),
		menu:        ui.NewMenu(),
		storeInfo:   NewStoreInfo(version),
		actions:     ui.NewKeyActions(),
	}
	a.flash = ui.NewFlash(&a)
	a.crumbs = ui.NewCrumbs(a.Content.Stack)
	a.command = NewCommand(&a)

	return &a
}

// Init loads the user files and builds the layout.
func (a *App) Init() error {
	if err := a.aliases.Load(); err != nil {
		return fmt.Errorf("aliases: %w", err)
	}
	if err := a.hotkeys.Load(); err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}
	m, err := nav.Load(config.AppMenuFile)
	if err != nil {
		return err
	}
	a.navMenu = m
	a.sidebar = NewSidebar(m, func(url string) {
		if err := a.Navigate(url); err == nil {
			a.focusTop()
		}
	})

	a.Content.AddListener(a.crumbs)
	a.Content.AddListener(a.menu)
	a.bindKeys()
	a.bindCmdBar()
	a.storeInfo.SetInfo(a.cfg.StoreSpec(), a.ReadOnly())

	a.Application.SetInputCapture(a.keyboard)
	a.EnableMouse(a.cfg.Vdash.UI.EnableMouse)
	a.Main.AddPage("main", a.layout(), true, true)
	a.SetRoot(a.Main, true)

	return nil
}

// Run shows the default view and runs the event loop.
func (a *App) Run() error {
	a.mx.Lock()
	a.running = true
	a.mx.Unlock()

	if err := a.command.Run(""); err != nil {
		log.Error().Err(err).Msg("Default view failed")
	}

	return a.Application.Run()
}

// Quit stops the event loop.
func (a *App) Quit() {
	a.mx.Lock()
	a.running = false
	a.mx.Unlock()

	if top := a.Content.Top(); top != nil {
		top.Stop()
	}
	a.Application.Stop()
}

// Close releases the current store.
func (a *App) Close() error {
	return a.factory.Close()
}

// IsRunning returns true while the event loop runs.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.running
}

// QueueUpdateDraw runs fn on the event loop without blocking the caller.
func (a *App) QueueUpdateDraw(fn func()) {
	go a.Application.QueueUpdateDraw(fn)
}

// Notify shows msg in the flash bar.
func (a *App) Notify(msg string, sev model.Severity) {
	a.flash.Notify(msg, sev)
}

// ReadOnly returns true when writes are disabled.
func (a *App) ReadOnly() bool {
	return a.cfg.Vdash.IsReadOnly()
}

// RefreshRate returns the list refresh period, zero when disabled.
func (a *App) RefreshRate() time.Duration {
	return a.cfg.Vdash.RefreshDuration()
}

// ViewSettings returns the list settings of resource.
func (a *App) ViewSettings(resource string) data.View {
	return a.cfg.Vdash.ViewSettings(resource)
}

func (a *App) layout() tview.Primitive {
	header := tview.NewFlex().SetDirection(tview.FlexColumn)
	header.AddItem(a.storeInfo, 40, 0, false)
	if !a.cfg.Vdash.UI.Menuless {
		header.AddItem(a.menu, 0, 1, false)
	}
	if !a.cfg.Vdash.UI.Logoless {
		header.AddItem(logo(), 32, 0, false)
	}

	body := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.sidebar, 30, 0, false).
		AddItem(a.Content, 0, 1, true)

	footer := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorGray).
		SetText(footerText)
	footer.SetBackgroundColor(tcell.ColorDefault)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, len(LogoSmall)+1, 0, false).
		AddItem(a.cmdBar, 3, 0, false).
		AddItem(body, 0, 1, true)
	if !a.cfg.Vdash.UI.Crumbsless {
		main.AddItem(a.crumbs, 1, 0, false)
	}
	main.AddItem(a.flash, 1, 0, false)
	main.AddItem(footer, 1, 0, false)

	return main
}

func logo() tview.Primitive {
	v := tview.NewTextView()
	v.SetTextColor(tcell.ColorOrange)
	v.SetBackgroundColor(tcell.ColorDefault)
	v.SetText(strings.Join(LogoSmall, "\n"))

	return v
}

func (a *App) bindKeys() {
	a.actions.Bulk(ui.KeyMap{
		ui.KeyColon:    ui.NewKeyAction("Command", a.activateCmd(ui.ModeCommand), false),
		ui.KeySlash:    ui.NewKeyAction("Search", a.activateCmd(ui.ModeSearch), false),
		ui.KeyQuestion: ui.NewKeyAction("Help", a.helpCmd, false),
		ui.KeyQ:        ui.NewKeyAction("Quit", a.quitCmd, false),
		tcell.KeyTab:   ui.NewKeyAction("Menu", a.sidebarCmd, false),
		tcell.KeyEsc:   ui.NewKeyAction("Back", a.backCmd, false),
	})

	for _, name := range a.hotkeys.Names() {
		hk := a.hotkeys.Get(name)
		if hk == nil {
			continue
		}
		key, err := ui.ParseKey(hk.ShortCut)
		if err != nil {
			log.Warn().Err(err).Str("hotkey", name).Msg("Ignoring hotkey")
			continue
		}
		cmd := hk.Command
		a.actions.Add(key, ui.NewKeyAction(hk.Description, func(*tcell.EventKey) *tcell.EventKey {
			if err := a.command.Run(cmd); err != nil {
				a.Notify(err.Error(), model.SeverityError)
			}
			return nil
		}, false))
	}
}

func (a *App) bindCmdBar() {
	a.cmdBar.SetCommands(a.aliases.Names())
	a.cmdBar.SetActiveFn(func(active bool) {
		if active {
			a.SetFocus(a.cmdBar)
			return
		}
		a.focusTop()
	})
	a.cmdBar.SetCommandFn(func(cmd string) {
		if err := a.command.Run(cmd); err != nil {
			log.Warn().Err(err).Str("command", cmd).Msg("Command failed")
		}
	})
	a.cmdBar.SetFilterFn(a.search)
	a.cmdBar.SetCancelFn(func() { a.search("") })
}

// keyboard handles the global keys. Views capturing input, prompts and
// the command bar get every key but ctrl-c.
func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyCtrlC {
		a.Quit()
		return nil
	}
	if a.cmdBar.IsActive() || a.Content.HasOverlay() {
		return evt
	}
	if c, ok := a.Content.Top().(InputCapturer); ok && c.CapturesInput() && !a.sidebar.HasFocus() {
		return evt
	}
	evt, _ = a.actions.Dispatch(evt)

	return evt
}

func (a *App) activateCmd(mode ui.IndicatorMode) ui.ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		a.cmdBar.Activate(mode)
		return nil
	}
}

func (a *App) quitCmd(*tcell.EventKey) *tcell.EventKey {
	a.Quit()
	return nil
}

func (a *App) helpCmd(*tcell.EventKey) *tcell.EventKey {
	if _, ok := a.Content.Top().(*Help); ok {
		a.Back()
		return nil
	}
	if err := a.push(NewHelp(a.aliases, a.hotkeys)); err != nil {
		a.Notify(err.Error(), model.SeverityError)
	}

	return nil
}

func (a *App) sidebarCmd(*tcell.EventKey) *tcell.EventKey {
	if a.sidebar.HasFocus() {
		a.focusTop()
		return nil
	}
	a.SetFocus(a.sidebar)

	return nil
}

func (a *App) backCmd(*tcell.EventKey) *tcell.EventKey {
	if a.sidebar.HasFocus() {
		a.focusTop()
		return nil
	}
	if a.cmdBar.GetFilterText() != "" {
		a.ClearSearch()
		return nil
	}
	a.Back()

	return nil
}

// search forwards the search bar text to the visible view.
func (a *App) search(s string) {
	if v, ok := a.Content.Top().(Searcher); ok {
		v.SetSearch(s)
	}
}

// ClearSearch empties the search bar.
func (a *App) ClearSearch() {
	a.cmdBar.ClearFilter()
}

func (a *App) focusTop() {
	if top := a.Content.Current(); top != nil {
		a.SetFocus(top)
		return
	}
	a.SetFocus(a.Content)
}

// push shows c on top of the current view.
func (a *App) push(c ui.Component) error {
	if err := c.Init(context.Background()); err != nil {
		return err
	}
	a.Content.Push(c)
	c.Start()
	a.SetFocus(c)

	return nil
}

// show replaces every view with c.
func (a *App) show(url string, c ui.Component) error {
	if err := c.Init(context.Background()); err != nil {
		return err
	}
	a.ClearSearch()
	a.Content.Reset(c)
	c.Start()
	a.SetFocus(c)
	a.sidebar.Highlight(url)

	return nil
}

// Back closes the top view and resumes the one below.
func (a *App) Back() {
	if a.Content.IsLast() {
		return
	}
	a.Content.Pop()
	if top := a.Content.Current(); top != nil {
		top.Start()
	}
	a.focusTop()
}

// Navigate moves to a menu url or record route. Unknown targets are
// reported as errors.
func (a *App) Navigate(target string) error {
	url := nav.NormalizeURL(target)
	err := a.navigate(url)
	if err != nil {
		a.Notify(err.Error(), model.SeverityError)
		return err
	}
	log.Debug().Str("url", url).Msg("Navigated")

	return nil
}

func (a *App) navigate(url string) error {
	switch url {
	case nav.RouteDashboard:
		return a.show(url, NewDashboard(a, false))
	case nav.RouteCharts:
		return a.show(url, NewDashboard(a, true))
	case nav.RouteAddProduct, nav.RouteProductList:
		return fmt.Errorf("%s is not available", url)
	}

	r, err := model.ParseRoute(url)
	if err != nil {
		return err
	}
	rid, ok := dao.LookupResource(r.Resource)
	if !ok {
		return fmt.Errorf("unknown resource %q", r.Resource)
	}
	if a.ReadOnly() && (r.Action == model.ActionEdit || r.Action == model.ActionCreate) {
		return dao.ErrReadOnly
	}

	switch r.Action {
	case model.ActionList:
		return a.show(url, a.listView(rid))
	case model.ActionDetails:
		return a.push(NewDetails(a, rid, r.ID))
	case model.ActionEdit, model.ActionCreate:
		if *rid == dao.CustomerRID {
			return a.push(NewCustomerEditor(a, r.ID))
		}
		a.sidebar.Highlight(url)
		a.editRecord(rid, r.ID)
		return nil
	default:
		return fmt.Errorf("unknown route %q", url)
	}
}

func (a *App) listView(rid *dao.ResourceID) ui.Component {
	switch *rid {
	case dao.InvoiceRID:
		return NewInvoiceList(a)
	case dao.CustomerRID:
		return NewCustomerList(a)
	default:
		return NewBrowser(a, rid, "")
	}
}

// editRecord loads record id then edits it in $EDITOR. An empty id
// creates a record.
func (a *App) editRecord(rid *dao.ResourceID, id string) {
	go func() {
		var rec model1.Record
		if id != "" {
			ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
			defer cancel()
			r, err := fetchRecord(ctx, a.factory, rid, id)
			if err != nil {
				a.Notify(err.Error(), model.SeverityError)
				return
			}
			rec = r
		}
		a.QueueUpdateDraw(func() { a.runEditor(rid, rec) })
	}()
}

func (a *App) runEditor(rid *dao.ResourceID, rec model1.Record) {
	acc, err := dao.AccessorFor(a.factory, rid)
	if err != nil {
		a.Notify(err.Error(), model.SeverityError)
		return
	}
	saver, ok := acc.(dao.Saver)
	if !ok {
		a.Notify(fmt.Sprintf("%s records cannot be saved", rid.Resource), model.SeverityError)
		return
	}
	tpl := make(model1.Record)
	if *rid == dao.InvoiceRID {
		tpl = InvoiceTemplate(time.Now())
	}

	saved, err := EditRecord(context.Background(), a, saver, rid, rec, tpl)
	switch {
	case errors.Is(err, ErrEditorCancelled):
		a.Notify("Edit cancelled", model.SeverityInfo)
	case errors.Is(err, ErrNoChanges):
		a.Notify("No changes detected", model.SeverityInfo)
	case err != nil:
		a.Notify(err.Error(), model.SeverityError)
	default:
		a.Notify(fmt.Sprintf("%s %s saved", strings.ToUpper(rid.Resource[:1])+rid.Resource[1:], saved.ID()), model.SeveritySuccess)
		if top := a.Content.Current(); top != nil {
			top.Start()
		}
	}
}

// confirm asks before running ack.
func (a *App) confirm(msg string, ack func()) {
	c := ui.ShowConfirm(a.Content, msg, func() {
		a.focusTop()
		ack()
	}, a.focusTop)
	a.SetFocus(c)
}

// prompt asks for one line of input.
func (a *App) prompt(label, placeholder string, done func(string)) {
	p := ui.NewPrompt(a.Content, label).
		SetPlaceholderText(placeholder).
		SetDoneFn(func(s string) {
			a.focusTop()
			done(s)
		}).
		SetCancelFn(a.focusTop)
	p.Show()
	a.SetFocus(p)
}

// Export stores an exported file, in the record store when it accepts
// files and in the exports dir otherwise. It returns where the file went.
func (a *App) Export(name string, body []byte) (string, error) {
	if bw, ok := a.factory.Store().(dao.BlobWriter); ok {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return bw.PutBlob(ctx, name, "text/csv", body)
	}

	path := filepath.Join(config.AppExportsDir, filepath.Base(name))
	if err := data.EnsureFullPath(path, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return "", fmt.Errorf("export to %s: %w", path, err)
	}

	return path, nil
}

// SwitchProfile reconnects the S3 store with an AWS profile. An empty
// region keeps the current one. done runs on the event loop once the
// new store is live.
func (a *App) SwitchProfile(profile, region string, done func()) {
	if a.cfg.StoreSpec().Kind != dao.StoreS3 {
		a.Notify(fmt.Sprintf("Profiles only apply to the %s store", dao.StoreS3), model.SeverityInfo)
		return
	}
	if region == "" {
		if conn := a.cfg.Connection(); conn != nil {
			region = conn.ActiveRegion()
		}
	}
	a.Notify(fmt.Sprintf("Connecting with profile %s...", profile), model.SeverityInfo)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultAPITimeout)
		defer cancel()

		conn := aws.NewAPIClient(aws.ClientConfig{Profile: profile, Region: region, Timeout: config.DefaultAPITimeout})
		if err := conn.CheckConnectivity(ctx); err != nil {
			a.Notify(err.Error(), model.SeverityError)
			return
		}
		prev := a.cfg.Connection()
		a.cfg.SetConnection(conn)
		store, err := dao.OpenStore(ctx, a.cfg.StoreSpec())
		if err != nil {
			a.cfg.SetConnection(prev)
			a.Notify(err.Error(), model.SeverityError)
			return
		}
		log.Info().Str("profile", profile).Str("region", conn.ActiveRegion()).Str("account", conn.AccountID()).Msg("Profile switched")

		a.QueueUpdateDraw(func() {
			old := a.factory.Swap(dao.NewFactory(store, a.ReadOnly()))
			if err := old.Close(); err != nil {
				log.Warn().Err(err).Msg("Closing previous store")
			}
			a.storeInfo.SetInfo(a.cfg.StoreSpec(), a.ReadOnly())
			a.Notify(fmt.Sprintf("Switched to profile %s", profile), model.SeveritySuccess)
			if done != nil {
				done()
			}
		})
	}()
}
