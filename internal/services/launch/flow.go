package launch

import (
	"fmt"
	"strings"

	"fotocamera/internal/domain"
)

// Decision is the next step after a launch or a prompt answer.
type Decision int

const (
	// OpenCamera starts the camera screen.
	OpenCamera Decision = iota
	// ShowDefaultPrompt asks whether to make this the default camera.
	ShowDefaultPrompt
	// OpenDefaultSettings sends the user to the system default-apps settings.
	OpenDefaultSettings
)

func (d Decision) String() string {
	switch d {
	case ShowDefaultPrompt:
		return "show-default-prompt"
	case OpenDefaultSettings:
		return "open-default-settings"
	default:
		return "open-camera"
	}
}

// Choice is the user's answer to the default-camera prompt.
type Choice int

const (
	Yes Choice = iota
	No
	Later
)

func (c Choice) String() string {
	switch c {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "later"
	}
}

// ParseChoice accepts yes, no or later (case-insensitive).
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return Yes, nil
	case "no":
		return No, nil
	case "later":
		return Later, nil
	default:
		return Later, fmt.Errorf("unknown answer %q (want yes, no or later)", s)
	}
}

// Next returns what to do on launch. The first launch always prompts and is
// recorded as completed; later launches prompt until the user opts out.
func Next(prefs domain.PreferenceStore) (Decision, error) {
	first, err := prefs.IsFirstLaunch()
	if err != nil {
		return OpenCamera, err
	}
	if first {
		if err := prefs.SetFirstLaunchCompleted(); err != nil {
			return OpenCamera, err
		}
		return ShowDefaultPrompt, nil
	}

	dontAsk, err := prefs.IsDontAskAgainDefault()
	if err != nil {
		return OpenCamera, err
	}
	if dontAsk {
		return OpenCamera, nil
	}
	return ShowDefaultPrompt, nil
}

// Answer records the prompt answer. Yes and No store the "don't ask again"
// checkbox when it is ticked; Later never does.
func Answer(prefs domain.PreferenceStore, choice Choice, dontAskAgain bool) (Decision, error) {
	if choice != Later && dontAskAgain {
		if err := prefs.SetDontAskAgainDefault(true); err != nil {
			return OpenCamera, err
		}
	}
	if choice == Yes {
		return OpenDefaultSettings, nil
	}
	return OpenCamera, nil
}
