package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pleimann/padpaint/internal/config"
	"github.com/pleimann/padpaint/internal/utils"
)

type example struct {
	cmd  string
	desc string
}

// PrintUsage displays the styled help/usage text
func PrintUsage(version string) {
	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Render(utils.ExecutableName())

	versionTag := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render("v" + version)

	fmt.Printf("%s %s\n", banner, versionTag)
	fmt.Println(Muted("Paint with a gamepad"))
	fmt.Println()

	exe := utils.ExecutableName()
	printSection("Usage", []string{
		exe + " [flags]              Open the canvas",
		exe + " list-devices         List available HID devices",
		exe + " set-device [args]    Read a specific HID gamepad directly",
		exe + " init-config          Write a default configuration file",
		exe + " help                 Show this help message",
	})

	printSection("Flags", []string{
		"-c, --config string    Path to configuration file (default \"config.yaml\")",
		"-s, --source string    Input source, ebiten or hid (overrides the config)",
		"-v, --verbose          Enable verbose logging",
		"    --version          Print version and exit",
	})

	printCommandSection()
	printControlsSection(config.DefaultBindings())

	printExamples([]example{
		{exe, "Paint using config.yaml"},
		{exe + " --config my.yaml", "Paint using a custom config file"},
		{exe + " --source hid", "Read the configured HID gamepad"},
		{exe + " list-devices", "List connected HID devices"},
		{exe + " set-device 0x054C 0x09CC", "Use a DualShock 4 over USB"},
	})
}

func printSection(title string, items []string) {
	fmt.Println(Bold(title))
	for _, item := range items {
		fmt.Printf("  %s\n", item)
	}
	fmt.Println()
}

func printCommandSection() {
	fmt.Println(Bold("Commands"))

	cmdStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	fmt.Printf("  %s\n", cmdStyle.Render("list-devices"))
	fmt.Printf("      List available HID devices and mark supported gamepads\n")
	fmt.Println()

	fmt.Printf("  %s\n", cmdStyle.Render("set-device"))
	fmt.Printf("      Set the HID gamepad in the config file\n")
	fmt.Printf("      Run %s for more information\n", Code(utils.ExecutableName()+" set-device --help"))
	fmt.Println()

	fmt.Printf("  %s\n", cmdStyle.Render("init-config"))
	fmt.Printf("      Write the default configuration, including button bindings\n")
	fmt.Printf("      Run %s for more information\n", Code(utils.ExecutableName()+" init-config --help"))
	fmt.Println()
}

// printControlsSection lists the stick and trigger roles followed by the
// button bindings of each mode.
func printControlsSection(b config.BindingsConfig) {
	fmt.Println(Bold("Controls"))

	fixed := [][2]string{
		{"LS", "move the brush"},
		{"RS", "pick hue and saturation"},
		{"LT", "brightness"},
		{"RT", "paint, pressure sets the size"},
	}
	var rows []string
	for _, f := range fixed {
		rows = append(rows, ControlStyle.Render(f[0])+ActionStyle.Render(f[1]))
	}
	fmt.Println(indent(ControlsBoxStyle.Render(strings.Join(rows, "\n"))))

	for _, group := range []struct {
		title    string
		bindings map[string]string
	}{
		{"All modes", b.Common},
		{"Palette mode", b.Palette},
		{"Layer mode", b.Layer},
	} {
		fmt.Printf("  %s\n", SubtitleStyle.Render(group.title))
		fmt.Println(indent(ControlsBoxStyle.Render(strings.Join(bindingRows(group.bindings), "\n"))))
	}
	fmt.Println()
}

// bindingRows renders one row per bound control, sorted by control name.
// Controls bound to "none" are left out.
func bindingRows(bindings map[string]string) []string {
	controls := make([]string, 0, len(bindings))
	for c, a := range bindings {
		if a == "none" {
			continue
		}
		controls = append(controls, c)
	}
	sort.Strings(controls)

	rows := make([]string, len(controls))
	for i, c := range controls {
		rows[i] = ControlStyle.Render(c) + ActionStyle.Render(strings.ReplaceAll(bindings[c], "_", " "))
	}
	return rows
}

func indent(block string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func printExamples(examples []example) {
	fmt.Println(Bold("Examples"))

	cmdStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary)

	maxLen := 0
	for _, ex := range examples {
		if len(ex.cmd) > maxLen {
			maxLen = len(ex.cmd)
		}
	}

	for _, ex := range examples {
		padding := strings.Repeat(" ", maxLen-len(ex.cmd)+2)
		fmt.Printf("  %s%s%s\n", cmdStyle.Render(ex.cmd), padding, Muted(ex.desc))
	}
	fmt.Println()
}

// PrintSetDeviceUsage displays the styled help text for set-device subcommand
func PrintSetDeviceUsage() {
	exe := utils.ExecutableName()
	fmt.Println(Bold("Usage:"), exe+" set-device [options] [vendor_id product_id]")
	fmt.Println()
	fmt.Println("Set the HID gamepad in the configuration file and switch to the hid source.")
	fmt.Println()
	fmt.Println(Muted("If vendor_id and product_id are provided, updates the config directly."))
	fmt.Println(Muted("Otherwise, displays a list of connected devices to choose from."))
	fmt.Println()

	fmt.Println(Bold("Arguments"))
	fmt.Printf("  %s    Device vendor ID (hex with 0x prefix or decimal)\n", SubtitleStyle.Render("vendor_id"))
	fmt.Printf("  %s   Device product ID (hex with 0x prefix or decimal)\n", SubtitleStyle.Render("product_id"))
	fmt.Println()

	fmt.Println(Bold("Options"))
	fmt.Printf("  %s    Path to configuration file (default \"config.yaml\")\n", SubtitleStyle.Render("-c, --config string"))
	fmt.Println()

	printExamples([]example{
		{exe + " set-device", "Interactive selection"},
		{exe + " set-device 0x054C 0x09CC", "Direct specification"},
		{exe + " set-device --config my.yaml", "Use different config"},
	})
}

// PrintInitConfigUsage displays the styled help text for init-config subcommand
func PrintInitConfigUsage() {
	exe := utils.ExecutableName()
	fmt.Println(Bold("Usage:"), exe+" init-config [options]")
	fmt.Println()
	fmt.Println("Write a configuration file with every default spelled out.")
	fmt.Println()
	fmt.Println(Muted("The file selects the ebiten source; run set-device to read a HID gamepad."))
	fmt.Println()

	fmt.Println(Bold("Options"))
	fmt.Printf("  %s    Path to configuration file (default \"config.yaml\")\n", SubtitleStyle.Render("-c, --config string"))
	fmt.Printf("  %s           Overwrite an existing file\n", SubtitleStyle.Render("-f, --force"))
	fmt.Println()

	printExamples([]example{
		{exe + " init-config", "Create config.yaml"},
		{exe + " init-config --force --config my.yaml", "Replace my.yaml"},
	})
}

// PrintVersion displays the styled version information
func PrintVersion(version string) {
	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Render(utils.ExecutableName())

	versionTag := lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Render("v" + version)

	fmt.Printf("%s %s\n", banner, versionTag)
}

// PrintError displays a styled error message
func PrintError(message string) {
	fmt.Println(Error(message))
}

// PrintFatalError displays a styled fatal error message with context
func PrintFatalError(context, message string) {
	fmt.Println()
	fmt.Println(Error(context))
	fmt.Printf("  %s\n", Muted(message))
	fmt.Println()
}

// PrintConfigCreated shows where init-config wrote the defaults.
func PrintConfigCreated(configPath string) {
	fmt.Println()
	fmt.Println(Success("Configuration created"))
	fmt.Println()
	fmt.Printf("  %s %s\n", Muted("Config:"), configPath)
	fmt.Printf("  %s %s\n", Muted("Source:"), config.SourceEbiten)
	fmt.Println()
	fmt.Println(Muted("Edits to the bindings, brush and paint sections apply while painting."))
}
