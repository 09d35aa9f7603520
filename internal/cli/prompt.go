package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/quarry-dev/quarry/internal/app"
	"github.com/quarry-dev/quarry/internal/template/generator"
	"github.com/quarry-dev/quarry/internal/template/model"
)

// surveyVarPrompter implements app.VarPrompter with interactive survey
// prompts.
type surveyVarPrompter struct{}

var _ app.VarPrompter = surveyVarPrompter{}

// PromptVar asks for one variable value according to its declared type.
func (surveyVarPrompter) PromptVar(name string, def model.VarDef) (interface{}, error) {
	message := def.Prompt
	if message == "" {
		message = name
	}
	if def.Description != "" {
		message += " - " + def.Description
	}

	switch def.Type {
	case model.VarTypeBoolean:
		return promptBool(message, def)
	case model.VarTypeList:
		return promptList(message, def)
	default:
		return promptString(message, def)
	}
}

// promptString prompts for a string variable.
func promptString(message string, def model.VarDef) (string, error) {
	defaultVal := ""
	if s, ok := def.Default.(string); ok {
		defaultVal = s
	}

	var result string
	prompt := &survey.Input{
		Message: message,
		Default: defaultVal,
		Help:    def.Description,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// promptBool prompts for a boolean variable.
func promptBool(message string, def model.VarDef) (bool, error) {
	defaultVal := false
	if b, ok := def.Default.(bool); ok {
		defaultVal = b
	}

	var result bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultVal,
		Help:    def.Description,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// promptList prompts for a comma-separated list variable.
func promptList(message string, def model.VarDef) (interface{}, error) {
	var result string
	prompt := &survey.Input{
		Message: message + " (comma separated)",
		Help:    def.Description,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return nil, err
	}
	return app.CoerceVarValue(model.VarDef{Type: model.VarTypeList}, result)
}

// surveyConflictPrompter implements generator.ConflictPrompter with a
// single-key question per conflicting file.
type surveyConflictPrompter struct{}

var _ generator.ConflictPrompter = surveyConflictPrompter{}

// ResolveConflict asks what to do with one conflicting path.
func (surveyConflictPrompter) ResolveConflict(path string) (generator.OverwriteRule, error) {
	var answer string
	prompt := &survey.Input{
		Message: fmt.Sprintf("File %s already exists. Overwrite? [Y/y/n/a]", path),
		Help:    "Y: overwrite all, y: overwrite this file, n: skip this file, a: append to this file",
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return 0, err
	}
	return generator.RuleForAnswer(answer), nil
}
