// Package menu derives tray menu content from container snapshots.
package menu

import (
	"fmt"

	"github.com/melih/lighthouse-tray/internal/core/domain"
)

// MaxSlots is the number of pre-allocated container menu items.
const MaxSlots = 20

// AppName prefixes the tray tooltip.
const AppName = "Lighthouse Tray"

// Item is one container row of the menu.
type Item struct {
	ContainerID string
	Title       string
	Tooltip     string
}

// Menu is the full menu content derived from one snapshot.
type Menu struct {
	Status   string // non-empty when the runtime is unavailable or there is nothing to show
	Items    []Item
	Overflow int // containers beyond MaxSlots
	Tooltip  string
}

// Render builds the menu from a snapshot. inFlight may be nil.
func Render(snap domain.Snapshot, inFlight func(id string) bool) Menu {
	if snap.Degraded() {
		return Menu{
			Status:  fmt.Sprintf("Docker unavailable: %v", snap.Err),
			Tooltip: AppName + ": Docker unavailable",
		}
	}

	var m Menu
	running := 0
	for i, c := range snap.Containers {
		if c.Running() {
			running++
		}
		if i >= MaxSlots {
			m.Overflow++
			continue
		}
		m.Items = append(m.Items, Item{
			ContainerID: c.ID,
			Title:       itemTitle(c, inFlight != nil && inFlight(c.ID)),
			Tooltip:     itemTooltip(c),
		})
	}
	if len(snap.Containers) == 0 {
		m.Status = "No containers"
	}
	m.Tooltip = fmt.Sprintf("%s: %d running, %d stopped", AppName, running, len(snap.Containers)-running)
	return m
}

func itemTitle(c domain.ContainerSummary, pending bool) string {
	marker := "⚪"
	if c.Running() {
		marker = "🟢"
	}
	if pending {
		marker = "⏳"
	}
	return fmt.Sprintf("%s %s", marker, c.DisplayName())
}

func itemTooltip(c domain.ContainerSummary) string {
	verb := "start"
	if c.Running() {
		verb = "stop"
	}
	if c.Image == "" {
		return fmt.Sprintf("Click to %s", verb)
	}
	return fmt.Sprintf("%s (%s) - click to %s", c.Image, c.Status, verb)
}

// OverflowTitle labels the item standing in for containers beyond MaxSlots.
func OverflowTitle(n int) string {
	return fmt.Sprintf("… and %d more", n)
}
