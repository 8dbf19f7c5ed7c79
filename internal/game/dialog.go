package game

import (
	"errors"
	"log"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/proximity-nav/internal/config"
	"github.com/iburimskiy/proximity-nav/internal/nav"
)

// openLayoutDialog asks for a nav layout file. A cancelled dialog returns
// nil items and nil error.
func openLayoutDialog() ([]nav.Item, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Nav Layout"),
		zenity.FileFilters{{
			Name:     "Layout",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil, nil
		}
		return nil, err
	}

	log.Printf("[INFO] loading nav layout %s", filename)
	return config.LoadItems(filename)
}

// ShowError reports a fatal startup error in a dialog, since the window may
// never have opened.
func ShowError(err error) {
	if err == nil {
		return
	}
	_ = zenity.Error(err.Error(), zenity.Title("proximity-nav"), zenity.ErrorIcon)
}
