// Package interchange moves tracker state in and out of files: the browser
// localStorage dump the habit tracker web page keeps, and JSON, YAML and
// TOML exports.
package interchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nhle/habit-tracker/internal/dateutil"
	"github.com/nhle/habit-tracker/internal/model"
)

// localStorage keys of the browser tracker.
const (
	keyTasks     = "habitTasks"
	keyTemplates = "habitTemplates"
	keyGeneral   = "generalTasks"
)

// ImportReport summarizes what an import read and what it had to skip.
type ImportReport struct {
	Tasks     int
	Templates int
	General   int
	Warnings  []string
}

func (r *ImportReport) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// flexID accepts both the numeric ids the browser generates and strings.
type flexID string

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id %s is neither a number nor a string", b)
	}
	*id = flexID(n.String())
	return nil
}

type browserInstance struct {
	ID          flexID `json:"id"`
	Name        string `json:"name"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Color       string `json:"color"`
	Completed   bool   `json:"completed"`
	IsRepeating bool   `json:"isRepeating"`
	TemplateID  flexID `json:"templateId"`
}

type browserTemplate struct {
	Name       string `json:"name"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Color      string `json:"color"`
	RepeatType string `json:"repeatType"`
	CustomDays []int  `json:"customDays"`
	AnchorDate string `json:"anchorDate"`
}

type browserGeneral struct {
	ID        flexID `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Completed bool   `json:"completed"`
}

// ImportBrowser reads a localStorage dump: a JSON object whose habitTasks,
// habitTemplates and generalTasks values are either JSON values or JSON
// encoded strings. A section that is missing or malformed imports as empty
// and is noted in the report. Only a document that is not a JSON object at
// all is an error.
func ImportBrowser(r io.Reader) (model.Snapshots, ImportReport, error) {
	var report ImportReport

	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return model.Snapshots{}, report, fmt.Errorf("decoding browser dump: %w", err)
	}

	var rawTasks map[string][]browserInstance
	if err := decodeSection(doc[keyTasks], &rawTasks); err != nil {
		report.warnf("%s unreadable, imported as empty: %v", keyTasks, err)
		rawTasks = nil
	}
	var rawTemplates map[string]browserTemplate
	if err := decodeSection(doc[keyTemplates], &rawTemplates); err != nil {
		report.warnf("%s unreadable, imported as empty: %v", keyTemplates, err)
		rawTemplates = nil
	}
	var rawGeneral []browserGeneral
	if err := decodeSection(doc[keyGeneral], &rawGeneral); err != nil {
		report.warnf("%s unreadable, imported as empty: %v", keyGeneral, err)
		rawGeneral = nil
	}

	tasks, earliest := convertTasks(rawTasks, &report)
	templates := convertTemplates(rawTemplates, earliest, &report)
	general := convertGeneral(rawGeneral, &report)

	report.Templates = len(templates)
	report.General = len(general)
	for _, list := range tasks {
		report.Tasks += len(list)
	}

	return model.Snapshots{Tasks: tasks, Templates: templates, General: general}, report, nil
}

// decodeSection unmarshals raw into dst, unwrapping a JSON string first
// when the section was stored stringified.
func decodeSection(raw json.RawMessage, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return err
		}
		if strings.TrimSpace(inner) == "" {
			return nil
		}
		raw = json.RawMessage(inner)
	}
	return json.Unmarshal(raw, dst)
}

// convertTasks canonicalizes date keys and drops instances without an id.
// It also returns the earliest date each template has an instance on.
func convertTasks(raw map[string][]browserInstance, report *ImportReport) (model.TaskSnapshot, map[string]string) {
	tasks := make(model.TaskSnapshot, len(raw))
	earliest := make(map[string]string)

	dates := make([]string, 0, len(raw))
	for d := range raw {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, rawDate := range dates {
		y, m, d, err := dateutil.ParseDateKey(rawDate)
		if err != nil {
			report.warnf("skipping %d task(s) under invalid date %q", len(raw[rawDate]), rawDate)
			continue
		}
		date := dateutil.DateKey(y, m, d)

		for _, bi := range raw[rawDate] {
			if bi.ID == "" {
				report.warnf("skipping task %q on %s without an id", bi.Name, date)
				continue
			}
			inst := model.TaskInstance{
				ID:          string(bi.ID),
				Name:        bi.Name,
				StartTime:   bi.StartTime,
				EndTime:     bi.EndTime,
				Color:       bi.Color,
				Completed:   bi.Completed,
				IsRepeating: bi.IsRepeating && bi.TemplateID != "",
			}
			if inst.IsRepeating {
				inst.TemplateID = string(bi.TemplateID)
				if cur, ok := earliest[inst.TemplateID]; !ok || dateutil.Compare(date, cur) < 0 {
					earliest[inst.TemplateID] = date
				}
			}
			tasks[date] = append(tasks[date], inst)
		}
	}
	return tasks, earliest
}

// convertTemplates keeps templates with a known repeat type. Templates
// without an anchor date are anchored on their earliest instance.
func convertTemplates(
	raw map[string]browserTemplate,
	earliest map[string]string,
	report *ImportReport,
) model.TemplateSnapshot {
	templates := make(model.TemplateSnapshot, len(raw))
	for id, bt := range raw {
		rt := model.RepeatType(bt.RepeatType)
		if !rt.Recurring() {
			report.warnf("skipping template %s with unknown repeat type %q", id, bt.RepeatType)
			continue
		}

		anchor := bt.AnchorDate
		if y, m, d, err := dateutil.ParseDateKey(anchor); err == nil {
			anchor = dateutil.DateKey(y, m, d)
		} else {
			anchor = earliest[id]
			if anchor == "" {
				report.warnf("template %s has no anchor date and no instances", id)
			}
		}

		days := bt.CustomDays
		if rt != model.RepeatCustom {
			days = nil
		}

		templates[id] = model.Template{
			ID:         id,
			Name:       bt.Name,
			StartTime:  bt.StartTime,
			EndTime:    bt.EndTime,
			Color:      bt.Color,
			RepeatType: rt,
			CustomDays: days,
			AnchorDate: anchor,
		}
	}
	return templates
}

func convertGeneral(raw []browserGeneral, report *ImportReport) model.GeneralSnapshot {
	general := make(model.GeneralSnapshot, 0, len(raw))
	seen := make(map[flexID]bool, len(raw))
	for _, bg := range raw {
		if bg.ID == "" || seen[bg.ID] {
			report.warnf("skipping general task %q with a missing or duplicate id", bg.Name)
			continue
		}
		seen[bg.ID] = true
		general = append(general, model.GeneralTask{
			ID:        string(bg.ID),
			Name:      bg.Name,
			Color:     bg.Color,
			Completed: bg.Completed,
		})
	}
	return general
}
