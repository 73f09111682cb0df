package game

// Locators are the CSS selectors the bot relies on. They are a contract with
// the game page, not with the bot.
type Locators struct {
	PrimaryAction  string `yaml:"primary_action" json:"primary_action"`
	EnabledUpgrade string `yaml:"enabled_upgrade" json:"enabled_upgrade"`
	EnabledProduct string `yaml:"enabled_product" json:"enabled_product"`
	BulkMode       string `yaml:"bulk_mode" json:"bulk_mode"`
	RenameStart    string `yaml:"rename_start" json:"rename_start"`
	RenameInput    string `yaml:"rename_input" json:"rename_input"`
	RenameConfirm  string `yaml:"rename_confirm" json:"rename_confirm"`
}

// DefaultLocators returns the selectors for Cookie Clicker.
func DefaultLocators() Locators {
	return Locators{
		PrimaryAction:  "#bigCookie",
		EnabledUpgrade: "div.crate.upgrade.enabled",
		EnabledProduct: "div.product.enabled",
		BulkMode:       "#storeBulk1",
		RenameStart:    "#bakeryName",
		RenameInput:    "#bakeryNameInput",
		RenameConfirm:  "#promptOption0",
	}
}

// Missing returns the yaml keys of the selectors that are empty.
func (l Locators) Missing() []string {
	var missing []string
	fields := []struct {
		key   string
		value string
	}{
		{"primary_action", l.PrimaryAction},
		{"enabled_upgrade", l.EnabledUpgrade},
		{"enabled_product", l.EnabledProduct},
		{"bulk_mode", l.BulkMode},
		{"rename_start", l.RenameStart},
		{"rename_input", l.RenameInput},
		{"rename_confirm", l.RenameConfirm},
	}
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.key)
		}
	}
	return missing
}

// withDefaults fills empty selectors from DefaultLocators.
func (l Locators) withDefaults() Locators {
	d := DefaultLocators()
	if l.PrimaryAction == "" {
		l.PrimaryAction = d.PrimaryAction
	}
	if l.EnabledUpgrade == "" {
		l.EnabledUpgrade = d.EnabledUpgrade
	}
	if l.EnabledProduct == "" {
		l.EnabledProduct = d.EnabledProduct
	}
	if l.BulkMode == "" {
		l.BulkMode = d.BulkMode
	}
	if l.RenameStart == "" {
		l.RenameStart = d.RenameStart
	}
	if l.RenameInput == "" {
		l.RenameInput = d.RenameInput
	}
	if l.RenameConfirm == "" {
		l.RenameConfirm = d.RenameConfirm
	}
	return l
}
