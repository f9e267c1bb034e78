// Package tray implements the system tray icon and menu.
package tray

import (
	_ "embed"
	"errors"
	"log/slog"
	"sync"

	"github.com/getlantern/systray"
	"github.com/melih/lighthouse-tray/internal/adapters/notify"
	"github.com/melih/lighthouse-tray/internal/adapters/tray/menu"
	"github.com/melih/lighthouse-tray/internal/core/domain"
	"github.com/melih/lighthouse-tray/internal/core/ports"
)

//go:embed icon.png
var iconData []byte

const aboutText = "A small tray utility to monitor and control Docker containers from your system tray."

// Tray renders snapshots into the menu and turns clicks into toggles.
type Tray struct {
	snapshots <-chan domain.Snapshot
	toggler   ports.Toggler
	inFlight  func(id string) bool
	notifier  *notify.Notifier
	onStart   func()
	onExit    func()

	statusItem   *systray.MenuItem
	slots        [menu.MaxSlots]*systray.MenuItem
	overflowItem *systray.MenuItem
	aboutItem    *systray.MenuItem
	quitItem     *systray.MenuItem

	// Maps slot index → container ID at the last render
	slotMu  sync.RWMutex
	slotIDs [menu.MaxSlots]string
}

// Config wires a Tray.
type Config struct {
	Snapshots <-chan domain.Snapshot
	Toggler   ports.Toggler
	InFlight  func(id string) bool
	Notifier  *notify.Notifier
	OnStart   func() // called once the menu exists
	OnExit    func() // called when the tray exits
}

func New(cfg Config) *Tray {
	return &Tray{
		snapshots: cfg.Snapshots,
		toggler:   cfg.Toggler,
		inFlight:  cfg.InFlight,
		notifier:  cfg.Notifier,
		onStart:   cfg.OnStart,
		onExit:    cfg.OnExit,
	}
}

// Run starts the system tray. This blocks the calling goroutine (must be main).
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTooltip(menu.AppName)

	t.statusItem = systray.AddMenuItem("Loading containers...", "")
	t.statusItem.Disable()

	// Pre-allocate container slots (hidden by default)
	for i := 0; i < menu.MaxSlots; i++ {
		t.slots[i] = systray.AddMenuItem("", "")
		t.slots[i].Hide()
		go t.handleSlotClicks(i)
	}
	t.overflowItem = systray.AddMenuItem("", "")
	t.overflowItem.Disable()
	t.overflowItem.Hide()

	systray.AddSeparator()
	t.aboutItem = systray.AddMenuItem("About", "About "+menu.AppName)
	t.quitItem = systray.AddMenuItem("Exit", "Quit "+menu.AppName)

	if t.onStart != nil {
		t.onStart()
	}

	go t.handleClicks()
	go t.renderLoop()
}

func (t *Tray) onQuit() {
	if t.onExit != nil {
		t.onExit()
	}
}

func (t *Tray) handleClicks() {
	for {
		select {
		case <-t.aboutItem.ClickedCh:
			t.notifier.Notify(aboutText)
		case <-t.quitItem.ClickedCh:
			systray.Quit()
			return
		}
	}
}

func (t *Tray) handleSlotClicks(slot int) {
	for range t.slots[slot].ClickedCh {
		t.slotMu.RLock()
		id := t.slotIDs[slot]
		t.slotMu.RUnlock()
		if id == "" {
			continue
		}

		// The result reaches the user through the dispatcher's notification hook.
		if _, err := t.toggler.Toggle(id); err != nil {
			if errors.Is(err, domain.ErrActionInFlight) {
				slog.Debug("Ignoring click, action pending.", "container", domain.ShortID(id))
				continue
			}
			slog.Warn("Toggle failed.", "container", domain.ShortID(id), "err", err)
		}
	}
}

func (t *Tray) renderLoop() {
	for snap := range t.snapshots {
		t.apply(menu.Render(snap, t.inFlight))
	}
}

// apply replaces the whole menu content; nothing from the previous render survives.
func (t *Tray) apply(m menu.Menu) {
	t.slotMu.Lock()
	for i := range t.slotIDs {
		t.slotIDs[i] = ""
	}
	for i, item := range m.Items {
		t.slotIDs[i] = item.ContainerID
	}
	t.slotMu.Unlock()

	if m.Status != "" {
		t.statusItem.SetTitle(m.Status)
		t.statusItem.Show()
	} else {
		t.statusItem.Hide()
	}

	for i := 0; i < menu.MaxSlots; i++ {
		if i >= len(m.Items) {
			t.slots[i].Hide()
			continue
		}
		t.slots[i].SetTitle(m.Items[i].Title)
		t.slots[i].SetTooltip(m.Items[i].Tooltip)
		t.slots[i].Show()
	}

	if m.Overflow > 0 {
		t.overflowItem.SetTitle(menu.OverflowTitle(m.Overflow))
		t.overflowItem.Show()
	} else {
		t.overflowItem.Hide()
	}

	systray.SetTooltip(m.Tooltip)
}
