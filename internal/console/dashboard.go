package console

import (
	"github.com/odyssey-erp/odyssey-pos/internal/resource"
	"github.com/odyssey-erp/odyssey-pos/internal/tables"
)

// Stat is one dashboard tile. Notice replaces the count when the
// collection could not be loaded.
type Stat struct {
	Label  string
	Count  int
	Ready  bool
	Notice string
}

// Dashboard is the landing screen's summary.
type Dashboard struct {
	Stats  []Stat
	Tables tables.Summary
}

// Dashboard summarizes the collections loaded for the dashboard section.
func (ws *Workspace) Dashboard() Dashboard {
	tableSnap := ws.Tables.Snapshot()
	return Dashboard{
		Stats: []Stat{
			stat("Users", ws.Users),
			stat("Tables", ws.Tables),
			stat("Products", ws.Products),
		},
		Tables: tables.Summarize(tableSnap.Items),
	}
}

func stat(label string, m resource.Mount) Stat {
	return Stat{
		Label:  label,
		Count:  m.Len(),
		Ready:  m.Status() == resource.StatusReady,
		Notice: m.Failure(),
	}
}
