package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const labelsFile = "labels.json"

// Labels are the display strings of the expression table. Any field left
// empty in the labels file keeps its default.
type Labels struct {
	Options          string `json:"options_text"`
	ListType         string `json:"list_type_text"`
	RemoveExpression string `json:"remove_expression_text"`
	EditExpression   string `json:"edit_expression_text"`
	SaveExpression   string `json:"save_expression_text"`
	StopEditing      string `json:"stop_editing_text"`
	WhiteListWord    string `json:"white_list_word_text"`
	GreyListWord     string `json:"grey_list_word_text"`
	ToggleToWhite    string `json:"toggle_to_white_list_word_text"`
	ToggleToGrey     string `json:"toggle_to_grey_list_word_text"`
	AddExpression    string `json:"add_expression_text"`
	SimilarTo        string `json:"similar_to_text"`
	ExpressionGone   string `json:"expression_removed_text"`
}

func DefaultLabels() Labels {
	return Labels{
		Options:          "Options",
		ListType:         "List Type",
		RemoveExpression: "Remove",
		EditExpression:   "Edit",
		SaveExpression:   "Save",
		StopEditing:      "Stop editing",
		WhiteListWord:    "Whitelist",
		GreyListWord:     "Greylist",
		ToggleToWhite:    "Toggle to whitelist",
		ToggleToGrey:     "Toggle to greylist",
		AddExpression:    "Add expression",
		SimilarTo:        "Similar to",
		ExpressionGone:   "That expression was removed before it could be saved.",
	}
}

func labelsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exprtable", labelsFile), nil
}

// LoadLabels reads labels from path, or from the user config dir when path
// is empty. A missing file yields the defaults.
func LoadLabels(path string) (Labels, error) {
	labels := DefaultLabels()
	if path == "" {
		p, err := labelsPath()
		if err != nil {
			return labels, nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return labels, nil
		}
		return labels, fmt.Errorf("read labels: %w", err)
	}
	var override Labels
	if err := json.Unmarshal(data, &override); err != nil {
		return labels, fmt.Errorf("parse labels %s: %w", path, err)
	}
	return labels.merge(override), nil
}

func (l Labels) merge(o Labels) Labels {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&l.Options, o.Options)
	pick(&l.ListType, o.ListType)
	pick(&l.RemoveExpression, o.RemoveExpression)
	pick(&l.EditExpression, o.EditExpression)
	pick(&l.SaveExpression, o.SaveExpression)
	pick(&l.StopEditing, o.StopEditing)
	pick(&l.WhiteListWord, o.WhiteListWord)
	pick(&l.GreyListWord, o.GreyListWord)
	pick(&l.ToggleToWhite, o.ToggleToWhite)
	pick(&l.ToggleToGrey, o.ToggleToGrey)
	pick(&l.AddExpression, o.AddExpression)
	pick(&l.SimilarTo, o.SimilarTo)
	pick(&l.ExpressionGone, o.ExpressionGone)
	return l
}
