package styles

import "github.com/charmbracelet/lipgloss"

// Themes maps slugs to the bundled Base16 schemes.
var Themes = map[string]Theme{
	"solarized-dark": {
		Name: "Solarized Dark",
		Base00: lipgloss.Color("#002b36"), Base01: lipgloss.Color("#073642"),
		Base02: lipgloss.Color("#586e75"), Base03: lipgloss.Color("#657b83"),
		Base04: lipgloss.Color("#839496"), Base05: lipgloss.Color("#93a1a1"),
		Base06: lipgloss.Color("#eee8d5"), Base07: lipgloss.Color("#fdf6e3"),
		Base08: lipgloss.Color("#dc322f"), Base09: lipgloss.Color("#cb4b16"),
		Base0A: lipgloss.Color("#b58900"), Base0B: lipgloss.Color("#859900"),
		Base0C: lipgloss.Color("#2aa198"), Base0D: lipgloss.Color("#268bd2"),
		Base0E: lipgloss.Color("#6c71c4"), Base0F: lipgloss.Color("#d33682"),
	},
	"solarized-light": {
		Name: "Solarized Light",
		Base00: lipgloss.Color("#fdf6e3"), Base01: lipgloss.Color("#eee8d5"),
		Base02: lipgloss.Color("#93a1a1"), Base03: lipgloss.Color("#839496"),
		Base04: lipgloss.Color("#657b83"), Base05: lipgloss.Color("#586e75"),
		Base06: lipgloss.Color("#073642"), Base07: lipgloss.Color("#002b36"),
		Base08: lipgloss.Color("#dc322f"), Base09: lipgloss.Color("#cb4b16"),
		Base0A: lipgloss.Color("#b58900"), Base0B: lipgloss.Color("#859900"),
		Base0C: lipgloss.Color("#2aa198"), Base0D: lipgloss.Color("#268bd2"),
		Base0E: lipgloss.Color("#6c71c4"), Base0F: lipgloss.Color("#d33682"),
	},
	"dracula": {
		Name: "Dracula",
		Base00: lipgloss.Color("#282936"), Base01: lipgloss.Color("#3a3c4e"),
		Base02: lipgloss.Color("#4d4f68"), Base03: lipgloss.Color("#626483"),
		Base04: lipgloss.Color("#62d6e8"), Base05: lipgloss.Color("#e9e9f4"),
		Base06: lipgloss.Color("#f1f2f8"), Base07: lipgloss.Color("#f7f7fb"),
		Base08: lipgloss.Color("#ea51b2"), Base09: lipgloss.Color("#b45bcf"),
		Base0A: lipgloss.Color("#00f769"), Base0B: lipgloss.Color("#ebff87"),
		Base0C: lipgloss.Color("#a1efe4"), Base0D: lipgloss.Color("#62d6e8"),
		Base0E: lipgloss.Color("#b45bcf"), Base0F: lipgloss.Color("#00f769"),
	},
	"nord": {
		Name: "Nord",
		Base00: lipgloss.Color("#2e3440"), Base01: lipgloss.Color("#3b4252"),
		Base02: lipgloss.Color("#434c5e"), Base03: lipgloss.Color("#4c566a"),
		Base04: lipgloss.Color("#d8dee9"), Base05: lipgloss.Color("#e5e9f0"),
		Base06: lipgloss.Color("#eceff4"), Base07: lipgloss.Color("#8fbcbb"),
		Base08: lipgloss.Color("#bf616a"), Base09: lipgloss.Color("#d08770"),
		Base0A: lipgloss.Color("#ebcb8b"), Base0B: lipgloss.Color("#a3be8c"),
		Base0C: lipgloss.Color("#88c0d0"), Base0D: lipgloss.Color("#81a1c1"),
		Base0E: lipgloss.Color("#b48ead"), Base0F: lipgloss.Color("#5e81ac"),
	},
	"gruvbox-dark": {
		Name: "Gruvbox Dark",
		Base00: lipgloss.Color("#282828"), Base01: lipgloss.Color("#3c3836"),
		Base02: lipgloss.Color("#504945"), Base03: lipgloss.Color("#665c54"),
		Base04: lipgloss.Color("#bdae93"), Base05: lipgloss.Color("#d5c4a1"),
		Base06: lipgloss.Color("#ebdbb2"), Base07: lipgloss.Color("#fbf1c7"),
		Base08: lipgloss.Color("#fb4934"), Base09: lipgloss.Color("#fe8019"),
		Base0A: lipgloss.Color("#fabd2f"), Base0B: lipgloss.Color("#b8bb26"),
		Base0C: lipgloss.Color("#8ec07c"), Base0D: lipgloss.Color("#83a598"),
		Base0E: lipgloss.Color("#d3869b"), Base0F: lipgloss.Color("#d65d0e"),
	},
	"monokai": {
		Name: "Monokai",
		Base00: lipgloss.Color("#272822"), Base01: lipgloss.Color("#383830"),
		Base02: lipgloss.Color("#49483e"), Base03: lipgloss.Color("#75715e"),
		Base04: lipgloss.Color("#a59f85"), Base05: lipgloss.Color("#f8f8f2"),
		Base06: lipgloss.Color("#f5f4f1"), Base07: lipgloss.Color("#f9f8f5"),
		Base08: lipgloss.Color("#f92672"), Base09: lipgloss.Color("#fd971f"),
		Base0A: lipgloss.Color("#f4bf75"), Base0B: lipgloss.Color("#a6e22e"),
		Base0C: lipgloss.Color("#a1efe4"), Base0D: lipgloss.Color("#66d9ef"),
		Base0E: lipgloss.Color("#ae81ff"), Base0F: lipgloss.Color("#cc6633"),
	},
	"tomorrow-night": {
		Name: "Tomorrow Night",
		Base00: lipgloss.Color("#1d1f21"), Base01: lipgloss.Color("#282a2e"),
		Base02: lipgloss.Color("#373b41"), Base03: lipgloss.Color("#969896"),
		Base04: lipgloss.Color("#b4b7b4"), Base05: lipgloss.Color("#c5c8c6"),
		Base06: lipgloss.Color("#e0e0e0"), Base07: lipgloss.Color("#ffffff"),
		Base08: lipgloss.Color("#cc6666"), Base09: lipgloss.Color("#de935f"),
		Base0A: lipgloss.Color("#f0c674"), Base0B: lipgloss.Color("#b5bd68"),
		Base0C: lipgloss.Color("#8abeb7"), Base0D: lipgloss.Color("#81a2be"),
		Base0E: lipgloss.Color("#b294bb"), Base0F: lipgloss.Color("#a3685a"),
	},
}
