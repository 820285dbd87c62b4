// Package demo provides the showcase menu tree wired to live data sources.
// It exercises every field variant: static attributes, computed attributes
// re-evaluated on each resolve, and subscribable sources pushing changes into
// an open menu.
package demo

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/hwpanel/menunav/internal/format/table"
	"github.com/hwpanel/menunav/internal/menu"
	"github.com/hwpanel/menunav/internal/reactive"
)

// Demo owns the live state behind the showcase tree.
type Demo struct {
	clock         *reactive.State[string]
	notifications *reactive.State[[]string]
	volume        *VolumeApp
	stop          chan struct{}
}

// New starts the demo's background clock. Stop releases it.
func New() *Demo {
	d := &Demo{
		clock:         reactive.NewState(time.Now().Format("15:04:05")),
		notifications: reactive.NewState([]string(nil)),
		volume:        newVolumeApp(),
		stop:          make(chan struct{}),
	}
	go d.tick()
	return d
}

// Stop halts the background clock.
func (d *Demo) Stop() { close(d.stop) }

func (d *Demo) tick() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-d.stop:
			return
		case now := <-ticker.C:
			d.clock.Set(now.Format("15:04:05"))
		}
	}
}

// Root builds the demo root menu.
func (d *Demo) Root() menu.Menu {
	return &menu.HeadedMenu{
		MenuSpec: menu.MenuSpec{
			Title: menu.Static("Main"),
			Items: menu.Static([]menu.Item{
				d.notificationsItem(),
				d.volumeItem(),
				d.settingsItem(),
				d.aboutItem(),
				d.powerItem(),
			}),
		},
		Heading:    menu.Static("What would you like to do?"),
		SubHeading: menu.FromSource[string](d.clock),
	}
}

func (d *Demo) notificationsItem() menu.Item {
	return &menu.SubMenuItem{
		ItemSpec: menu.ItemSpec{
			Key:   "notifications",
			Label: menu.Static("Notifications"),
			Icon:  menu.Static("󰍡"),
			Color: menu.Static("#ffdd00"),
		},
		SubMenu: menu.FromSource[menu.Menu](newMappedState(d.notifications, d.notificationsMenu)),
	}
}

func (d *Demo) notificationsMenu(entries []string) menu.Menu {
	items := make([]menu.Item, 0, len(entries)+2)
	for i, text := range entries {
		items = append(items, &menu.ActionItem{ItemSpec: menu.ItemSpec{
			Key:   fmt.Sprintf("notification-%d", i),
			Label: menu.Static(text),
			Icon:  menu.Static("󰀦"),
		}})
	}
	items = append(items,
		&menu.ActionItem{
			ItemSpec: menu.ItemSpec{Key: "add", Label: menu.Static("Add test notification")},
			Action: func() any {
				d.notifications.Update(func(v []string) []string {
					return append(v, fmt.Sprintf("Notification %d", len(v)+1))
				})
				return nil
			},
		},
		&menu.ActionItem{
			ItemSpec: menu.ItemSpec{Key: "clear", Label: menu.Static("Clear all"), Color: menu.Static("#ff4444")},
			Action: func() any {
				d.notifications.Set(nil)
				return nil
			},
		},
	)
	return &menu.HeadlessMenu{MenuSpec: menu.MenuSpec{
		Title:       menu.Static("Notifications"),
		Items:       menu.Static(items),
		Placeholder: menu.Static("No notifications"),
	}}
}

func (d *Demo) volumeItem() menu.Item {
	return &menu.ApplicationItem{
		ItemSpec: menu.ItemSpec{
			Key:         "volume",
			Label:       menu.Static("Volume"),
			Icon:        menu.Static("󰕾"),
			HasProgress: true,
			Progress:    menu.Computed(func() float64 { return d.volume.Fraction() }),
		},
		Application: menu.Static(menu.Application(d.volume)),
	}
}

func (d *Demo) settingsItem() menu.Item {
	sub := &menu.HeadedMenu{
		MenuSpec: menu.MenuSpec{
			Title: menu.Static("Settings"),
			Items: menu.Static([]menu.Item{
				&menu.ActionItem{ItemSpec: menu.ItemSpec{
					Key:     "brightness",
					Label:   menu.Static("Brightness"),
					Icon:    menu.Static("󰃠"),
					IsShort: menu.Static(true),
				}},
				&menu.ActionItem{ItemSpec: menu.ItemSpec{
					Key:   "network",
					Label: menu.Static("Network"),
					Icon:  menu.Static("󰖩"),
				}},
				&menu.ActionItem{ItemSpec: menu.ItemSpec{
					Key:   "display",
					Label: menu.Static("Display"),
					Icon:  menu.Static("󰍹"),
				}},
				&menu.ActionItem{ItemSpec: menu.ItemSpec{
					Key:   "sound",
					Label: menu.Static("Sound"),
					Icon:  menu.Static("󰓃"),
				}},
			}),
		},
		Heading:    menu.Static("Settings"),
		SubHeading: menu.Computed(func() string { return "Host " + hostname() }),
	}
	return &menu.SubMenuItem{
		ItemSpec: menu.ItemSpec{Key: "settings", Label: menu.Static("Settings"), Icon: menu.Static("")},
		SubMenu:  menu.Static(menu.Menu(sub)),
	}
}

func (d *Demo) aboutItem() menu.Item {
	return &menu.ActionItem{
		ItemSpec: menu.ItemSpec{Key: "about", Label: menu.Static("About"), Icon: menu.Static("󰋽")},
		Action:   func() any { return menu.Application(newAboutApp()) },
	}
}

// powerItem opens its submenu through an action return value.
func (d *Demo) powerItem() menu.Item {
	return &menu.ActionItem{
		ItemSpec: menu.ItemSpec{Key: "power", Label: menu.Static("Power"), Icon: menu.Static("⏻"), Color: menu.Static("#ff4444")},
		Action: func() any {
			return menu.Menu(&menu.HeadlessMenu{MenuSpec: menu.MenuSpec{
				Title: menu.Static("Power"),
				Items: menu.Static([]menu.Item{
					&menu.ActionItem{ItemSpec: menu.ItemSpec{Key: "shutdown", Label: menu.Static("Shutdown")}},
					&menu.ActionItem{ItemSpec: menu.ItemSpec{Key: "reboot", Label: menu.Static("Reboot")}},
				}),
			}})
		},
	}
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}

// VolumeApp is a minimal full-screen application: up and down adjust the
// level, back closes it.
type VolumeApp struct {
	level *reactive.State[int]
}

func newVolumeApp() *VolumeApp {
	return &VolumeApp{level: reactive.NewState(50)}
}

// Fraction reports the level in [0..1].
func (a *VolumeApp) Fraction() float64 { return float64(a.level.Get()) / 100 }

func (a *VolumeApp) Title() menu.Field[string] {
	return menu.Computed(func() string { return fmt.Sprintf("Volume %d%%", a.level.Get()) })
}

func (a *VolumeApp) GoUp() {
	a.level.Update(func(v int) int { return min(v+5, 100) })
}

func (a *VolumeApp) GoDown() {
	a.level.Update(func(v int) int { return max(v-5, 0) })
}

func (a *VolumeApp) GoBack() bool { return false }

func (a *VolumeApp) String() string {
	level := a.level.Get()
	filled := level / 5
	bar := ""
	for i := 0; i < 20; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return fmt.Sprintf("%s %d%%\n\n↑/↓ to adjust, esc to close", bar, level)
}

// AboutApp shows build and host facts as an aligned table.
type AboutApp struct {
	lines  []string
	opened time.Time
}

func newAboutApp() *AboutApp { return &AboutApp{} }

func (a *AboutApp) Title() menu.Field[string] { return menu.Static("About") }

func (a *AboutApp) GoUp()        {}
func (a *AboutApp) GoDown()      {}
func (a *AboutApp) GoBack() bool { return false }

// OnOpen snapshots the facts once; the screen is static afterwards.
func (a *AboutApp) OnOpen() {
	a.opened = time.Now()
	a.lines = table.Format([][]string{
		{"host", hostname()},
		{"os", runtime.GOOS},
		{"arch", runtime.GOARCH},
		{"go", runtime.Version()},
		{"cpus", fmt.Sprintf("%d", runtime.NumCPU())},
	}, []table.Alignment{table.AlignLeft, table.AlignRight})
}

func (a *AboutApp) OnClose() {
	a.lines = nil
}

func (a *AboutApp) String() string {
	out := ""
	for _, line := range a.lines {
		out += line + "\n"
	}
	return out + fmt.Sprintf("\nopen since %s", a.opened.Format("15:04:05"))
}

// mappedState adapts a subscribable source of one type into another. The
// mapping runs on the delivering goroutine.
type mappedState[S, T any] struct {
	src *reactive.State[S]
	fn  func(S) T
}

func newMappedState[S, T any](src *reactive.State[S], fn func(S) T) *mappedState[S, T] {
	return &mappedState[S, T]{src: src, fn: fn}
}

func (m *mappedState[S, T]) Subscribe(fn func(T)) func() {
	return m.src.Subscribe(func(v S) { fn(m.fn(v)) })
}
