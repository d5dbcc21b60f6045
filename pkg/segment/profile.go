package segment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Strategy selects how appointment and dismissal orders are extracted.
type Strategy string

const (
	// StrategyLineScan walks the line sequence and extracts fields by
	// literal splits, with the composed regexes as fallback over spans the
	// scan could not complete.
	StrategyLineScan Strategy = "line-scan"

	// StrategyRegex uses only the composed regex patterns.
	StrategyRegex Strategy = "regex"
)

// Profile configures a segmentation engine: the order strategy and which
// optional capture groups are enabled. Profiles are loaded from YAML files
// so that editions from periods with different typesetting conventions can
// be segmented without a rebuild.
type Profile struct {
	// Name identifies the profile ("padrao", "historico-2019").
	Name string `yaml:"name"`

	// OrderStrategy selects the order extraction strategy.
	OrderStrategy Strategy `yaml:"order_strategy"`

	// CaptureDismissalReason enables the dismissal reason clause.
	CaptureDismissalReason bool `yaml:"capture_dismissal_reason"`

	// CaptureTransferredVacancy enables the transferred-vacancy clause.
	CaptureTransferredVacancy bool `yaml:"capture_transferred_vacancy"`

	// CaptureBonusReference enables the gratification clause.
	CaptureBonusReference bool `yaml:"capture_bonus_reference"`

	// CaptureDecreeAnnex enables decree annex blocks.
	CaptureDecreeAnnex bool `yaml:"capture_decree_annex"`
}

// DefaultProfile returns the profile used when none is configured: line-scan
// strategy with every optional capture enabled.
func DefaultProfile() Profile {
	return Profile{
		Name:                      "padrao",
		OrderStrategy:             StrategyLineScan,
		CaptureDismissalReason:    true,
		CaptureTransferredVacancy: true,
		CaptureBonusReference:     true,
		CaptureDecreeAnnex:        true,
	}
}

// Validate checks that the profile is usable.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	switch p.OrderStrategy {
	case StrategyLineScan, StrategyRegex:
		return nil
	case "":
		return fmt.Errorf("profile %q: order_strategy is required", p.Name)
	default:
		return fmt.Errorf("profile %q: unknown order_strategy %q", p.Name, p.OrderStrategy)
	}
}

// LoadProfileFile reads and validates a single profile from a YAML file.
func LoadProfileFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading file: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}

	return profile, nil
}
