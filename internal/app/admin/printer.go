package admin

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"condoadmin/internal/domain/collection"
	"condoadmin/internal/storage"

	"github.com/fatih/color"
)

const (
	FormatSimple = "simple"
	FormatTable  = "table"
	FormatJSON   = "json"
)

const maxCellLen = 40

// Printer renders service results for the terminal.
type Printer struct {
	w      io.Writer
	format string
	title  *color.Color
	faint  *color.Color
}

func NewPrinter(w io.Writer, format string) (*Printer, error) {
	switch format {
	case FormatSimple, FormatTable, FormatJSON:
	default:
		return nil, fmt.Errorf("неизвестный формат %q (simple, table, json)", format)
	}
	return &Printer{
		w:      w,
		format: format,
		title:  color.New(color.FgCyan, color.Bold),
		faint:  color.New(color.Faint),
	}, nil
}

func (p *Printer) Page(def collection.Definition, page collection.Page) error {
	items := make([]storage.Record, 0, len(page.Items))
	for _, rec := range page.Items {
		items = append(items, def.Visible(rec))
	}

	if p.format == FormatJSON {
		page.Items = items
		return p.json(page)
	}

	if len(items) == 0 {
		fmt.Fprintln(p.w, "Записи не найдены")
	} else if p.format == FormatTable {
		if err := p.table(items); err != nil {
			return err
		}
	} else {
		for i, rec := range items {
			p.title.Fprintf(p.w, "%d. id=%s\n", (page.Page-1)*page.PageSize+i+1, rec.ID())
			for _, key := range keys([]storage.Record{rec}) {
				if key == "id" {
					continue
				}
				fmt.Fprintf(p.w, "   %s: %s\n", key, cell(rec[key]))
			}
		}
	}

	p.faint.Fprintf(p.w, "\nСтраница %d из %d, всего записей: %d\n", page.Page, page.TotalPages, page.Total)
	return nil
}

func (p *Printer) Record(def collection.Definition, rec storage.Record) error {
	rec = def.Visible(rec)
	switch p.format {
	case FormatJSON:
		return p.json(rec)
	case FormatTable:
		return p.table([]storage.Record{rec})
	default:
		p.title.Fprintf(p.w, "%s #%s\n", def.Title, rec.ID())
		for _, key := range keys([]storage.Record{rec}) {
			if key != "id" {
				fmt.Fprintf(p.w, "  %-14s %s\n", key+":", cell(rec[key]))
			}
		}
		return nil
	}
}

func (p *Printer) Definitions(defs []collection.Definition) error {
	if p.format == FormatJSON {
		out := make([]map[string]any, 0, len(defs))
		for _, d := range defs {
			out = append(out, map[string]any{
				"name":         d.Name,
				"title":        d.Title,
				"searchFields": d.SearchFields,
				"exactFields":  d.ExactFields,
			})
		}
		return p.json(out)
	}

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tTITLE\tSEARCH\tFILTERS\t\n")
	for _, d := range defs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", d.Name, d.Title, strings.Join(d.SearchFields, ","), strings.Join(d.ExactFields, ","))
	}
	return w.Flush()
}

// Success prints a confirmation line.
func (p *Printer) Success(format string, args ...any) {
	if p.format == FormatJSON {
		return
	}
	color.New(color.FgGreen).Fprintf(p.w, "✓ "+format+"\n", args...)
}

func (p *Printer) table(items []storage.Record) error {
	cols := keys(items)

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(cols, "\t"))+"\t")
	for _, rec := range items {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = truncate(cell(rec[c]), maxCellLen)
		}
		fmt.Fprintln(w, strings.Join(row, "\t")+"\t")
	}
	return w.Flush()
}

func (p *Printer) json(v any) error {
	encoder := json.NewEncoder(p.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// keys returns "id" followed by the other field names in lexical order.
func keys(items []storage.Record) []string {
	seen := map[string]bool{"id": true}
	var rest []string
	for _, rec := range items {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)
	return append([]string{"id"}, rest...)
}

func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}
