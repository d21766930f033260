package menu

import "github.com/goaltray/goaltray/internal/models"

// Labels holds the fixed menu strings. Formats take the goal title
// (and impediment text where noted).
type Labels struct {
	Pending          string
	Completed        string
	MarkComplete     string
	AddImpediment    string
	RemoveImpediment string
	Undo             string
	NewGoal          string
	Manage           string
	Quit             string
	BlockedFormat    string // title, impediment
	DoneFormat       string // title
}

// PortugueseLabels is the default label set.
var PortugueseLabels = Labels{
	Pending:          "📝 Pendentes",
	Completed:        "✅ Concluídas",
	MarkComplete:     "✓ Marcar como concluída",
	AddImpediment:    "🚫 Adicionar impedimento",
	RemoveImpediment: "🔓 Remover impedimento",
	Undo:             "↩️ Desfazer conclusão",
	NewGoal:          "➕ Nova meta",
	Manage:           "🔧 Gerenciar Metas",
	Quit:             "Sair",
	BlockedFormat:    "🚫 %s (Bloqueado: %s)",
	DoneFormat:       "✓ %s",
}

// EnglishLabels is the alternative label set.
var EnglishLabels = Labels{
	Pending:          "📝 Pending",
	Completed:        "✅ Completed",
	MarkComplete:     "✓ Mark as complete",
	AddImpediment:    "🚫 Add impediment",
	RemoveImpediment: "🔓 Remove impediment",
	Undo:             "↩️ Undo completion",
	NewGoal:          "➕ New goal",
	Manage:           "🔧 Manage goals",
	Quit:             "Quit",
	BlockedFormat:    "🚫 %s (Blocked: %s)",
	DoneFormat:       "✓ %s",
}

// LabelsFor returns the label set named by a settings value. Unknown names get Portuguese.
func LabelsFor(name string) Labels {
	if name == models.LabelsEN {
		return EnglishLabels
	}
	return PortugueseLabels
}
