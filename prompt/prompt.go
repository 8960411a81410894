package prompt

import (
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mitchellh/go-homedir"
)

// Prompter asks the user for a value. Every method reports cancellation
// (interrupt or empty input) as an empty string with a nil error, so callers
// can abort their workflow without treating it as a failure.
type Prompter interface {
	Input(message string) (string, error)
	Select(message string, options []string) (string, error)
	File(message string) (string, error)
}

// TerminalPrompter asks on the controlling terminal.
type TerminalPrompter struct{}

func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

func (p *TerminalPrompter) Input(message string) (string, error) {
	answer := ""
	err := survey.AskOne(&survey.Input{Message: message}, &answer)
	if err == terminal.InterruptErr {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func (p *TerminalPrompter) Select(message string, options []string) (string, error) {
	answer := ""
	err := survey.AskOne(&survey.Select{Message: message, Options: options}, &answer)
	if err == terminal.InterruptErr {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return answer, nil
}

// File prompts for a path, offering file name completion so the user can
// browse or type the location directly.
func (p *TerminalPrompter) File(message string) (string, error) {
	answer := ""
	input := &survey.Input{
		Message: message,
		Suggest: func(toComplete string) []string {
			matches, _ := filepath.Glob(toComplete + "*")
			return matches
		},
	}
	err := survey.AskOne(input, &answer)
	if err == terminal.InterruptErr {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(answer)
	if err != nil {
		return "", err
	}
	return expanded, nil
}
