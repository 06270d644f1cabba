package telegram

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"zone-guard/internal/domain/entity"
)

const timeLayout = "02.01.2006 15:04:05"

var stateNames = map[entity.ZoneState]string{
	entity.ZoneUndefined: "зона не задана",
	entity.ZoneEditing:   "зона редактируется",
	entity.ZoneDefined:   "зона активна",
}

// formatStatus текст ответа на /status
func formatStatus(r entity.FrameReport) string {
	if r.Seq == 0 {
		return "⏳ Камера ещё не прислала ни одного кадра."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📷 Кадр #%d, %s\n", r.Seq, r.At.Format(timeLayout))
	fmt.Fprintf(&sb, "🟥 Состояние: %s\n", stateNames[r.State])
	if r.Skipped {
		sb.WriteString("⚠️ Детектор не ответил на последнем кадре\n")
	}
	if r.State == entity.ZoneDefined {
		fmt.Fprintf(&sb, "🚶 Объектов в зоне: %d\n", r.InsideCount)
	}
	fmt.Fprintf(&sb, "🔍 Обнаружено: %s", formatSummary(r.Summary))
	return sb.String()
}

// formatIncident подпись к оповещению
func formatIncident(inc *entity.Incident) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🚨 Проникновение в запретную зону!\n")
	fmt.Fprintf(&sb, "🕒 %s\n", inc.At.Format(timeLayout))
	fmt.Fprintf(&sb, "🚶 Объектов в зоне: %d\n", inc.InsideCount)
	if inc.Summary.Violations > 0 {
		fmt.Fprintf(&sb, "⛑ Нарушений СИЗ: %d\n", inc.Summary.Violations)
	}
	fmt.Fprintf(&sb, "🔍 На кадре: %s", formatSummary(inc.Summary))
	return sb.String()
}

// formatHistory текст ответа на /history
func formatHistory(incidents []*entity.Incident) string {
	if len(incidents) == 0 {
		return "✅ Инцидентов пока не было."
	}

	var sb strings.Builder
	sb.WriteString("📜 Последние инциденты:\n")
	for i, inc := range incidents {
		fmt.Fprintf(&sb, "\n%d. %s — в зоне %d", i+1, inc.At.Format(timeLayout), inc.InsideCount)
		if inc.Summary.Violations > 0 {
			fmt.Fprintf(&sb, ", нарушений %d", inc.Summary.Violations)
		}
	}
	return sb.String()
}

func formatSummary(s entity.Summary) string {
	if len(s.ByLabel) == 0 {
		return "ничего"
	}
	labels := lo.Keys(s.ByLabel)
	slices.Sort(labels)
	parts := lo.Map(labels, func(l string, _ int) string {
		return fmt.Sprintf("%s × %d", l, s.ByLabel[l])
	})
	return strings.Join(parts, ", ")
}
