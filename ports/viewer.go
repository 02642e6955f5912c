// Package ports defines the boundary interfaces between the core application
// services and the presentation layers.
package ports

import (
	"tabview/adapters/stats"
	"tabview/app"
	"tabview/domain/core"
	"tabview/domain/table"
)

// ViewerPort is everything a presentation layer may ask of the core: load
// bytes into a session, adjust view parameters, and read derived artifacts.
type ViewerPort interface {
	Load(filename string, raw []byte) (*app.Session, error)
	Get(id core.SessionID) (*app.Session, error)
	UpdateParams(id core.SessionID, p table.ViewParams) error
	Drop(id core.SessionID)

	Controls(id core.SessionID) (map[string]table.Control, error)
	CurrentView(id core.SessionID) (*table.View, error)
	Summary(id core.SessionID, column string) (stats.Summary, error)
	Distribution(id core.SessionID, column string) ([]stats.Bucket, error)
	ExportCSV(id core.SessionID) ([]byte, error)
	ExportExcel(id core.SessionID) ([]byte, error)
}
