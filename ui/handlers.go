package ui

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tabview/adapters/stats"
	"tabview/app"
	"tabview/domain/core"
	"tabview/domain/table"
	apperrors "tabview/internal/errors"
)

// handleIndex renders the upload form
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "index.html", map[string]interface{}{
		"Error": r.URL.Query().Get("error"),
	})
}

// handleUpload accepts one delimited-text or spreadsheet file and starts a
// session for it. Parse failures send the user back to the unloaded state
// with the error message - no partial table is ever kept.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload)
	if err := r.ParseMultipartForm(a.maxUpload); err != nil {
		http.Redirect(w, r, "/?error="+urlEscape("upload too large or malformed"), http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Redirect(w, r, "/?error="+urlEscape("no file supplied"), http.StatusSeeOther)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		http.Redirect(w, r, "/?error="+urlEscape("failed to read upload"), http.StatusSeeOther)
		return
	}

	session, err := a.viewer.Load(header.Filename, raw)
	if err != nil {
		log.Printf("[ui] Upload of %s rejected: %v", header.Filename, err)
		http.Redirect(w, r, "/?error="+urlEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/sessions/"+session.ID.String(), http.StatusSeeOther)
}

// controlView pairs a control descriptor with the caller's current selection
type controlView struct {
	table.Control
	Selected map[string]bool
	Low      float64
	High     float64
}

// bucketView is one chart bar with its width precomputed
type bucketView struct {
	Value   float64
	Count   int
	Percent float64
}

// sessionView is the full template payload for the session page
type sessionView struct {
	Session        *app.Session
	Header         []string
	Rows           [][]string
	RowCount       int
	TotalRows      int
	AllColumns     []string
	Visible        map[string]bool
	Controls       []controlView
	NumericColumns []string
	Metric         string
	Summary        *stats.Summary
	Buckets        []bucketView
	Sort           table.SortSpec
}

// handleSession renders the interactive table view: current view rows, the
// control panel reflecting the session's parameters, and the metrics readout
// and distribution chart for the chosen numeric column.
func (a *App) handleSession(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "id"))

	session, err := a.viewer.Get(id)
	if err != nil {
		http.Redirect(w, r, "/?error="+urlEscape("session expired, upload again"), http.StatusSeeOther)
		return
	}

	view, err := a.viewer.CurrentView(id)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	controls, err := a.viewer.Controls(id)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}

	records := view.Records()

	data := sessionView{
		Session:        session,
		Header:         records[0],
		Rows:           records[1:],
		RowCount:       view.NumRows(),
		TotalRows:      session.Table.NumRows(),
		AllColumns:     session.Table.ColumnNames(),
		Visible:        visibleSet(session.Table, session.Params.VisibleColumns),
		Controls:       a.controlViews(session, controls),
		NumericColumns: session.Table.NumericColumnNames(),
		Sort:           session.Params.Sort,
	}

	// Metrics readout and chart only make sense for a numeric column with
	// rows present; the controls never offer anything else, and aggregation
	// failures on an empty filtered view are simply not displayed.
	data.Metric = r.URL.Query().Get("metric")
	if data.Metric == "" && len(data.NumericColumns) > 0 {
		data.Metric = data.NumericColumns[0]
	}
	if data.Metric != "" {
		if summary, err := a.viewer.Summary(id, data.Metric); err == nil {
			data.Summary = &summary
			if buckets, err := a.viewer.Distribution(id, data.Metric); err == nil {
				data.Buckets = bucketViews(buckets)
			}
		}
	}

	a.renderTemplate(w, "session.html", data)
}

// handleUpdateParams parses the control form into view parameters and stores
// them on the session; the redirect recomputes the view from scratch.
func (a *App) handleUpdateParams(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "id"))

	session, err := a.viewer.Get(id)
	if err != nil {
		http.Redirect(w, r, "/?error="+urlEscape("session expired, upload again"), http.StatusSeeOther)
		return
	}
	controls, err := a.viewer.Controls(id)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	params := parseViewParams(r, session.Table, controls)
	if err := a.viewer.UpdateParams(id, params); err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}

	target := "/sessions/" + id.String()
	if metric := r.FormValue("metric"); metric != "" {
		target += "?metric=" + urlEscape(metric)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleDropSession discards the session and returns to the upload form
func (a *App) handleDropSession(w http.ResponseWriter, r *http.Request) {
	a.viewer.Drop(core.SessionID(chi.URLParam(r, "id")))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleExportCSV serves the current view as the filtered_export.csv download
func (a *App) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "id"))
	data, err := a.viewer.ExportCSV(id)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_export.csv"`)
	w.Write(data)
}

// handleExportExcel serves the current view as an xlsx download
func (a *App) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "id"))
	data, err := a.viewer.ExportExcel(id)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_export.xlsx"`)
	w.Write(data)
}

// controlViews orders the control descriptors by table column order and
// attaches the session's current selections for form rendering.
func (a *App) controlViews(session *app.Session, controls map[string]table.Control) []controlView {
	var views []controlView
	for _, name := range session.Table.ColumnNames() {
		control, ok := controls[name]
		if !ok {
			continue
		}
		cv := controlView{Control: control, Low: control.Min, High: control.Max}
		if con, ok := session.Params.Constraints[name]; ok {
			if len(con.Values) > 0 {
				cv.Selected = make(map[string]bool, len(con.Values))
				for _, v := range con.Values {
					cv.Selected[v] = true
				}
			}
			if con.Range != nil {
				cv.Low, cv.High = con.Range.Low, con.Range.High
			}
		}
		views = append(views, cv)
	}
	return views
}

// parseViewParams maps the submitted control form onto view parameters.
// Only explicit selections become constraints: an untouched range (still at
// its full bounds) and an empty categorical pick both mean "no filter".
func parseViewParams(r *http.Request, t *table.Table, controls map[string]table.Control) table.ViewParams {
	params := table.ViewParams{
		Sort: table.SortSpec{
			Column:    r.FormValue("sort_column"),
			Ascending: r.FormValue("sort_dir") != "desc",
		},
		Constraints: make(map[string]table.Constraint),
	}

	for _, name := range t.ColumnNames() {
		control, ok := controls[name]
		if !ok {
			continue
		}
		switch control.Kind {
		case table.ControlCategorical:
			if values := r.Form["cat_"+name]; len(values) > 0 {
				params.Constraints[name] = table.Constraint{Values: values}
			}
		case table.ControlRange:
			low, errLow := strconv.ParseFloat(r.FormValue("lo_"+name), 64)
			high, errHigh := strconv.ParseFloat(r.FormValue("hi_"+name), 64)
			if errLow != nil || errHigh != nil {
				continue
			}
			if low != control.Min || high != control.Max {
				params.Constraints[name] = table.Constraint{
					Range: &table.RangeSelection{Low: low, High: high},
				}
			}
		}
	}

	params.VisibleColumns = r.Form["visible"]
	return params
}

func visibleSet(t *table.Table, visible []string) map[string]bool {
	set := make(map[string]bool, t.NumColumns())
	if len(visible) == 0 {
		for _, name := range t.ColumnNames() {
			set[name] = true
		}
		return set
	}
	for _, name := range visible {
		set[name] = true
	}
	return set
}

func bucketViews(buckets []stats.Bucket) []bucketView {
	maxCount := 0
	for _, b := range buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	views := make([]bucketView, len(buckets))
	for i, b := range buckets {
		pct := 0.0
		if maxCount > 0 {
			pct = float64(b.Count) / float64(maxCount) * 100
		}
		views[i] = bucketView{Value: b.Value, Count: b.Count, Percent: pct}
	}
	return views
}

func urlEscape(s string) string {
	return url.QueryEscape(s)
}
