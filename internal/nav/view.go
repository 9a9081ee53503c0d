package nav

// Entry is the render model of one menu item.
type Entry struct {
	ID       string
	Label    string
	Path     string
	Parent   bool
	Active   bool
	Expanded bool
	Children []Entry
}

// View is the render model of the whole shell.
type View struct {
	Entries []Entry
	Active  string
	Overlay bool
}

// Title returns the label of the active leaf.
func (v View) Title() string {
	if item, ok := Lookup(v.Active); ok {
		return item.Label
	}
	return ""
}

// View returns a snapshot of the shell for templates.
func (s *Shell) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(Menu))
	for _, item := range Menu {
		entry := Entry{
			ID:     item.ID,
			Label:  item.Label,
			Path:   item.Path,
			Parent: item.Parent(),
			Active: item.ID == s.active,
		}
		if entry.Parent {
			entry.Expanded = s.expanded[item.ID]
			for _, child := range item.Children {
				entry.Children = append(entry.Children, Entry{
					ID:     child.ID,
					Label:  child.Label,
					Path:   child.Path,
					Active: child.ID == s.active,
				})
				if child.ID == s.active {
					entry.Active = true
				}
			}
		}
		entries = append(entries, entry)
	}
	return View{Entries: entries, Active: s.active, Overlay: s.overlay}
}
