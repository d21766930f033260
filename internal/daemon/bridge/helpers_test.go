package bridge

import (
	"github.com/goaltray/goaltray/internal/daemon/menu"
	"github.com/goaltray/goaltray/internal/models"
)

type recordingInstaller struct {
	installed []*menu.Menu
}

func (r *recordingInstaller) Install(m *menu.Menu) error {
	r.installed = append(r.installed, m)
	return nil
}

func menuOptions() menu.Options {
	return menu.Options{Variant: models.VariantRich, Labels: menu.EnglishLabels}
}
