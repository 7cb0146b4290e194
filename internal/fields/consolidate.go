package fields

import "github.com/google/uuid"

// Consolidate merges radio widgets that share a group key into one Field per
// group, in the order the groups were first encountered.
//
// The merged field's options are the de-duplicated union of the widgets'
// export values (first-seen order). Its geometry is the first widget's box,
// kept only as a fallback anchor; per-widget geometry stays on Widgets for
// overlay placement. OriginalWidgetNames retains every contributing
// technical name, because the mutable document may register the group under
// any one of them rather than the heuristic key.
func Consolidate(widgets []RadioWidget) []Field {
	var order []string
	groups := make(map[string]*Field)

	for _, w := range widgets {
		g, ok := groups[w.GroupKey]
		if !ok {
			g = &Field{
				ID:            uuid.NewString(),
				TechnicalName: w.TechnicalName,
				DisplayName:   displayNameForGroup(w),
				Kind:          KindRadio,
				Page:          w.Page,
				Geometry:      w.Geometry,
				Constraints:   w.Constraints,
			}
			groups[w.GroupKey] = g
			order = append(order, w.GroupKey)
		}

		if w.ExportValue != "" && !containsString(g.Options, w.ExportValue) {
			g.Options = append(g.Options, w.ExportValue)
		}
		// Every widget of a group inherits the same /V, so the first
		// non-empty one is the group's current selection.
		if g.Value == "" && w.Value != "" {
			g.Value = w.Value
		}
		if w.TechnicalName != "" && !containsString(g.OriginalWidgetNames, w.TechnicalName) {
			g.OriginalWidgetNames = append(g.OriginalWidgetNames, w.TechnicalName)
		}

		w.GroupID = g.ID
		g.Widgets = append(g.Widgets, w)
	}

	out := make([]Field, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	return out
}

// displayNameForGroup labels the consolidated field: the heuristic key when
// it was human-authored, otherwise the reformatted technical name.
func displayNameForGroup(w RadioWidget) string {
	if w.GroupKey != "" && w.GroupKey != w.TechnicalName {
		return w.GroupKey
	}
	return FormatFieldName(w.TechnicalName)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
