package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrNotInteractive is returned by SelectDevice when stdin is not a terminal.
var ErrNotInteractive = errors.New("device selection needs an interactive terminal; pass vendor_id and product_id instead")

// DeviceInfo contains information about a HID device for display
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Product      string
	// Supported marks pads whose reports the hid source can decode.
	Supported bool
}

// deviceSelectModel runs the picker form under Bubble Tea so esc and q abort.
type deviceSelectModel struct {
	form    *huh.Form
	devices []DeviceInfo
	aborted bool
}

func (m deviceSelectModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m deviceSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, tea.Quit
	}

	return m, cmd
}

func (m deviceSelectModel) View() string {
	if m.form.State == huh.StateCompleted {
		return ""
	}
	return m.form.View()
}

// deviceGroup is one titled section of the device list.
type deviceGroup struct {
	Title   string
	Devices []DeviceInfo
}

// groupDevices splits devices into decodable gamepads and everything else,
// keeping the input order inside each group. Empty groups are dropped.
func groupDevices(devices []DeviceInfo) []deviceGroup {
	pads := deviceGroup{Title: "Gamepads"}
	other := deviceGroup{Title: "Other HID devices"}
	for _, d := range devices {
		if d.Supported {
			pads.Devices = append(pads.Devices, d)
		} else {
			other.Devices = append(other.Devices, d)
		}
	}

	var groups []deviceGroup
	for _, g := range []deviceGroup{pads, other} {
		if len(g.Devices) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// pickerOrder flattens the groups so gamepads come first in the picker.
func pickerOrder(devices []DeviceInfo) []DeviceInfo {
	var out []DeviceInfo
	for _, g := range groupDevices(devices) {
		out = append(out, g.Devices...)
	}
	return out
}

func deviceLabel(d DeviceInfo) string {
	name := formatDeviceName(d)
	if d.Supported {
		name += " " + SupportedTagStyle.Render("DualShock 4")
	}
	return fmt.Sprintf("%s  %s",
		DeviceIDStyle.Render(fmt.Sprintf("0x%04X:0x%04X", d.VendorID, d.ProductID)),
		name,
	)
}

// SelectDevice asks for the gamepad to paint with. Picking a device the hid
// source cannot decode needs a second confirmation.
func SelectDevice(devices []DeviceInfo) (*DeviceInfo, error) {
	if len(devices) == 0 {
		return nil, fmt.Errorf("no devices to select from")
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotInteractive
	}

	ordered := pickerOrder(devices)
	options := make([]huh.Option[int], len(ordered))
	for i, d := range ordered {
		options[i] = huh.NewOption(deviceLabel(d), i)
	}

	var selectedIndex int
	confirmed := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select Gamepad").
				Description(pickerDescription(ordered)).
				Options(options...).
				Value(&selectedIndex),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Not a DualShock 4").
				Description("padpaint may not decode reports from this device. Use it anyway?").
				Affirmative("Use it").
				Negative("Cancel").
				Value(&confirmed),
		).WithHideFunc(func() bool {
			return ordered[selectedIndex].Supported
		}),
	).WithTheme(customTheme()).WithShowHelp(false)

	model := deviceSelectModel{
		form:    form,
		devices: ordered,
	}

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(deviceSelectModel)
	if m.aborted || !confirmed {
		return nil, nil // User cancelled
	}

	return &ordered[selectedIndex], nil
}

func pickerDescription(devices []DeviceInfo) string {
	if countSupported(devices) == 0 {
		return "No DualShock 4 found; other devices are listed (esc to cancel)"
	}
	return "Choose the gamepad to paint with (esc to cancel)"
}

// formatDeviceName creates a readable name for the device
func formatDeviceName(d DeviceInfo) string {
	name := d.Product
	if name == "" {
		name = "Unknown Device"
	}
	if d.Manufacturer != "" {
		name = d.Manufacturer + " " + name
	}
	return name
}

// PrintDeviceList prints HID devices with gamepads and other devices in
// separate sections.
func PrintDeviceList(devices []DeviceInfo) {
	if len(devices) == 0 {
		fmt.Println(Warning("No HID devices found"))
		return
	}

	fmt.Println()
	fmt.Println(Title("HID Devices"))
	fmt.Println(Muted(fmt.Sprintf("Found %d device(s), %d supported gamepad(s)", len(devices), countSupported(devices))))

	for _, g := range groupDevices(devices) {
		fmt.Println()
		fmt.Println(SubtitleStyle.Render(fmt.Sprintf("%s (%d)", g.Title, len(g.Devices))))
		for _, d := range g.Devices {
			printDevice(d)
		}
	}
	fmt.Println()
}

func countSupported(devices []DeviceInfo) int {
	n := 0
	for _, d := range devices {
		if d.Supported {
			n++
		}
	}
	return n
}

func printDevice(d DeviceInfo) {
	idLine := DeviceIDStyle.Render(fmt.Sprintf("  0x%04X:0x%04X", d.VendorID, d.ProductID))

	name := d.Product
	if name == "" {
		name = "Unknown Device"
	}

	details := []string{DeviceNameStyle.Render(name)}
	if d.Manufacturer != "" {
		details = append(details, DeviceManufacturerStyle.Render("by "+d.Manufacturer))
	}

	fmt.Printf("%s  %s\n", idLine, strings.Join(details, " "))
}

// PrintDeviceUpdated shows a success message after updating device config
func PrintDeviceUpdated(configPath string, vendorID, productID uint16) {
	fmt.Println()
	fmt.Println(Success("Device configuration updated"))
	fmt.Println()
	fmt.Printf("  %s %s\n", Muted("Config:"), configPath)
	fmt.Printf("  %s %s\n", Muted("Device:"), DeviceIDStyle.Render(fmt.Sprintf("0x%04X:0x%04X", vendorID, productID)))
	fmt.Println()
}

// PrintDeviceCreated shows a success message after creating device config
func PrintDeviceCreated(configPath string, vendorID, productID uint16) {
	fmt.Println()
	fmt.Println(Success("Device configuration created"))
	fmt.Println()
	fmt.Printf("  %s %s\n", Muted("Config:"), configPath)
	fmt.Printf("  %s %s\n", Muted("Device:"), DeviceIDStyle.Render(fmt.Sprintf("0x%04X:0x%04X", vendorID, productID)))
	fmt.Println()
}

// customTheme returns a custom huh theme matching our style palette
func customTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Customize the theme to match our color palette
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(ColorText)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)

	return t
}
