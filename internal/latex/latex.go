// Package latex renders a plan as a printable LaTeX document: title page,
// document description with workload statistics, revision table, table of
// contents, organigram, deliverable map, one card per user story and the
// advancement report.
package latex

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/locale"
	"github.com/ThalusA/PLDGenerator/internal/report"
)

// Options tune the generated document.
type Options struct {
	// Date is printed on the title page. Zero means today.
	Date time.Time
	// Logo and Footer are optional image paths for the title page and page
	// header, and for the page footer.
	Logo   string
	Footer string
}

// Render returns the LaTeX source of p labelled with dict.
func Render(dict *locale.Dictionary, p *domain.PLD, opts Options) string {
	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}
	w := &writer{dict: dict}

	w.preamble(p, opts)
	w.line(`\begin{document}`)
	w.titlePage(p, opts)
	w.description(p)
	w.revisions(p)
	w.contents()
	w.organigram(p)
	w.deliverableMap(p)
	w.userStories(p)
	w.advancement(p)
	w.line(`\end{document}`)
	return w.b.String()
}

type writer struct {
	dict *locale.Dictionary
	b    strings.Builder
}

func (w *writer) line(format string, args ...any) {
	if len(args) == 0 {
		w.b.WriteString(format)
	} else {
		fmt.Fprintf(&w.b, format, args...)
	}
	w.b.WriteByte('\n')
}

var packages = []string{
	"graphicx", "amsmath", "fancyhdr", "hyperref", "tabularx", "colortbl",
	"calc", "needspace", "tocbibind", "xcolor", "enumitem", "lastpage",
}

func (w *writer) preamble(p *domain.PLD, opts Options) {
	w.line(`\documentclass[12pt]{extarticle}`)
	w.line(`\usepackage[T1]{fontenc}`)
	w.line(`\usepackage[utf8]{inputenc}`)
	w.line(`\usepackage[a4paper,total={170mm,257mm},left=20mm,top=20mm]{geometry}`)
	for _, pkg := range packages {
		w.line(`\usepackage{%s}`, pkg)
	}
	w.line(`\usepackage[linguistics]{forest}`)
	w.line(`\raggedbottom`)
	w.line(`\setcounter{secnumdepth}{0}`)
	w.line(`\renewcommand{\familydefault}{\sfdefault}`)
	w.line(`\newcolumntype{Y}{>{\raggedright\arraybackslash}X}`)

	footer := fmt.Sprintf(`\rfoot{%s \thepage\space %s \pageref{LastPage}}`, Escape(w.dict.Page), Escape(w.dict.Of))
	w.line(`\pagestyle{fancy}`)
	w.line(`\renewcommand{\headrulewidth}{0pt}`)
	w.line(`\fancyhf{}`)
	if opts.Logo != "" {
		w.line(`\lhead{\includegraphics[width=30pt]{%s}}`, opts.Logo)
	}
	w.line(`\rhead{\Large %s}`, Escape(w.dict.ProjectLogDocument))
	w.line("%s", footer)
	if opts.Footer != "" {
		w.line(`\lfoot{\includegraphics[width=100pt]{%s}}`, opts.Footer)
	}
	w.line(`\fancypagestyle{plain}{\renewcommand{\headrulewidth}{0pt}\fancyhf{}%s}`, footer)

	w.line(`\renewcommand*{\contentsname}{%s}`, Escape(w.dict.TableOfContent))
	w.line(`\title{%s}`, Escape(w.dict.ProjectLogDocument))
	w.line(`\date{%s}`, formatDate(opts.Date))
	w.line(`\author{%s}`, w.authors(p, ` \and `))
}

func (w *writer) authors(p *domain.PLD, sep string) string {
	authors := make([]string, len(p.Authors))
	for i, a := range p.Authors {
		authors[i] = Escape(a)
	}
	return strings.Join(authors, sep)
}

func formatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

func (w *writer) titlePage(p *domain.PLD, opts Options) {
	w.line(`\begin{titlepage}`)
	w.line(`\vspace*{\fill}`)
	w.line(`\begin{center}`)
	if opts.Logo != "" {
		w.line(`\includegraphics[width=0.4\linewidth]{%s}\\[1cm]`, opts.Logo)
	}
	w.line(`{\Huge\bfseries %s}\\[0.5cm]`, Escape(w.dict.ProjectLogDocument))
	w.line(`{\LARGE %s}\\[0.5cm]`, Escape(p.Title))
	if p.Subtitle != nil {
		w.line(`\vspace{4cm}`)
		w.line(`\textbf{\Large %s}\\[0.5cm]`, Escape(*p.Subtitle))
	}
	if len(p.Authors) > 0 {
		w.line(`%s\\[0.5cm]`, w.authors(p, `\\`))
	}
	w.line(`%s`, formatDate(opts.Date))
	w.line(`\end{center}`)
	w.line(`\vfill`)
	w.line(`\end{titlepage}`)
}

func headerCell(s string) string { return `\cellcolor{gray!30}` + s }

func (w *writer) row(cells ...string) {
	w.line(`%s \\ \hline`, strings.Join(cells, " & "))
}

func (w *writer) description(p *domain.PLD) {
	stats := report.Compute(p)

	w.line(`\section{%s}`, Escape(w.dict.DocumentDescription))
	w.line(`{\renewcommand{\arraystretch}{1.4}`)
	w.line(`\begin{tabularx}{\linewidth}{|l|Y|}`)
	w.line(`\hline`)
	w.row(headerCell(Escape(w.dict.Title)), Escape(p.Title))
	if p.Subtitle != nil {
		w.row(headerCell(Escape(w.dict.Subtitle)), Escape(*p.Subtitle))
	}
	if p.Description != nil {
		w.row(headerCell(Escape(w.dict.Description)), Escape(*p.Description))
	}
	w.row(headerCell(Escape(w.dict.Authors)), Escape(strings.Join(p.Authors, ", ")))
	if v := p.LatestVersion(); v != nil {
		w.row(headerCell(Escape(w.dict.UpdatedDate)), Escape(v.Date))
		w.row(headerCell(Escape(w.dict.ModelVersion)), Escape(v.Version))
	}
	w.row(`\multicolumn{2}{|l|}{` + headerCell(`\textbf{`+Escape(w.dict.Stats)+`}`) + `}`)
	shares := make([]string, len(stats.Distribution))
	for i, d := range stats.Distribution {
		shares[i] = Escape(d.Author) + ": " + report.FormatDays(d.ManDays)
	}
	w.row(headerCell(Escape(w.dict.ManDaysDistribution)), strings.Join(shares, ` \newline `))
	w.row(headerCell(Escape(w.dict.TotalManDays)), report.FormatDays(stats.TotalManDays))
	w.line(`\end{tabularx}}`)
}

// revisions lists the versions oldest first.
func (w *writer) revisions(p *domain.PLD) {
	versions := slices.Clone(p.Versions)
	slices.SortStableFunc(versions, func(a, b domain.Version) int { return cmp.Compare(a.Date, b.Date) })

	w.line(`\section{%s}`, Escape(w.dict.RevisionTable))
	w.line(`{\renewcommand{\arraystretch}{1.4}`)
	w.line(`\begin{tabularx}{\linewidth}{|l|l|Y|Y|Y|}`)
	w.line(`\hline`)
	w.row(headerCell(Escape(w.dict.Date)), headerCell(Escape(w.dict.Version)), headerCell(Escape(w.dict.Authors)),
		headerCell(Escape(w.dict.Sections)), headerCell(Escape(w.dict.Comment)))
	for _, v := range versions {
		w.row(Escape(v.Date), Escape(v.Version), Escape(strings.Join(v.Authors, ", ")), Escape(v.Sections), Escape(v.Comment))
	}
	w.line(`\end{tabularx}}`)
}

func (w *writer) contents() {
	w.line(`\newpage`)
	w.line(`\setcounter{secnumdepth}{3}`)
	w.line(`\setcounter{tocdepth}{3}`)
	w.line(`\tableofcontents`)
}

// organigram draws the plan hierarchy down to subsets as a forest tree.
func (w *writer) organigram(p *domain.PLD) {
	w.line(`\newpage`)
	w.line(`\section*{%s}`, Escape(w.dict.Organigram))
	w.line(`\addcontentsline{toc}{section}{%s}`, Escape(w.dict.Organigram))
	w.line(`\begin{center}`)
	w.line("%s", `\resizebox{\linewidth}{!}{%`)
	w.line(`\begin{forest}`)
	w.line(`for tree={draw, rounded corners, align=center, edge={-}, l sep=12pt}`)
	w.line(`[{%s}`, Escape(p.Title))
	for di, d := range p.Deliverables {
		w.line(`  [{%d %s}`, di+1, Escape(d.Name))
		for si, s := range d.Subsets {
			w.line(`    [{%d.%d %s}]`, di+1, si+1, Escape(s.Name))
		}
		w.line(`  ]`)
	}
	w.line(`]`)
	w.line(`\end{forest}}`)
	w.line(`\end{center}`)
}

// deliverableMap prints one table per deliverable with a column per subset
// and its stories listed below the subset heading.
func (w *writer) deliverableMap(p *domain.PLD) {
	w.line(`\section*{%s}`, Escape(w.dict.DeliverableMap))
	w.line(`\addcontentsline{toc}{section}{%s}`, Escape(w.dict.DeliverableMap))
	for di, d := range p.Deliverables {
		cols := max(len(d.Subsets), 1)
		columns := make([][]string, len(d.Subsets))
		depth := 0
		for si, s := range d.Subsets {
			col := []string{fmt.Sprintf(`\textbf{%d.%d %s}`, di+1, si+1, Escape(s.Name))}
			for ui, u := range s.UserStories {
				col = append(col, fmt.Sprintf(`%d.%d.%d %s`, di+1, si+1, ui+1, Escape(u.Name)))
			}
			columns[si] = col
			depth = max(depth, len(col))
		}

		w.line(`\subsection*{%d %s}`, di+1, Escape(d.Name))
		w.line(`{\renewcommand{\arraystretch}{1.4}`)
		w.line(`\begin{tabularx}{\linewidth}{|%s|}`, strings.Repeat("Y|", cols)[:2*cols-1])
		w.line(`\hline`)
		w.row(fmt.Sprintf(`\multicolumn{%d}{|c|}{%s}`, cols, headerCell(`\textbf{`+Escape(d.Name)+`}`)))
		if len(columns) == 0 {
			w.row("")
		}
		for r := range depth {
			cells := make([]string, len(columns))
			for c, col := range columns {
				if r < len(col) {
					cells[c] = col[r]
				}
			}
			w.row(cells...)
		}
		w.line(`\end{tabularx}}`)
	}
}

func (w *writer) userStories(p *domain.PLD) {
	w.line(`\newpage`)
	w.line(`\setcounter{secnumdepth}{3}`)
	w.line(`\section*{%s}`, Escape(w.dict.UserStories))
	w.line(`\addcontentsline{toc}{section}{%s}`, Escape(w.dict.UserStories))
	for _, d := range p.Deliverables {
		w.line(`\subsection{%s}`, Escape(d.Name))
		if d.Description != nil {
			w.line(`{\large %s}`, Escape(*d.Description))
			w.line("")
		}
		for _, s := range d.Subsets {
			w.line(`\subsubsection{%s}`, Escape(s.Name))
			if s.Description != nil {
				w.line(`{\large %s}`, Escape(*s.Description))
				w.line("")
			}
			for _, u := range s.UserStories {
				w.card(&u)
			}
		}
	}
}

func (w *writer) itemize(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`\begin{itemize}[nosep]`)
	for _, item := range items {
		b.WriteString(` \item ` + Escape(item))
	}
	b.WriteString(` \end{itemize}`)
	return b.String()
}

func span(content string, shaded bool) string {
	if shaded {
		content = headerCell(content)
	}
	return `\multicolumn{2}{|p{\dimexpr\linewidth-2\tabcolsep-2\arrayrulewidth}|}{` + content + `}`
}

// card prints one user story as a two-column table kept on a single page.
func (w *writer) card(u *domain.UserStory) {
	d := w.dict
	w.line(`\needspace{10\baselineskip}`)
	w.line(`\paragraph{%s}`, Escape(u.Name))
	w.line(`{\renewcommand{\arraystretch}{1.4}`)
	w.line(`\begin{tabularx}{\linewidth}{|Y|Y|}`)
	w.line(`\hline`)
	w.row(span(`\textbf{`+Escape(u.Name)+`}`, true))
	w.row(Escape(d.AsUser)+":", Escape(d.UserWant)+":")
	w.row(Escape(u.User), Escape(u.Action))
	w.row(span(Escape(d.Description)+`: \newline `+Escape(u.Description), true))
	w.row(span(Escape(d.DefinitionOfDone)+`: `+w.itemize(u.DefinitionsOfDone), false))
	w.row(span(Escape(d.Assignation)+`: `+Escape(strings.Join(u.Assignments, ", ")), true))
	w.row(Escape(d.EstimatedDuration)+":", fmt.Sprintf("%s %s (%d %s)",
		report.FormatDays(u.EstimatedDuration), Escape(d.ManDays), u.EstimatedHours(), Escape(d.Hours)))
	w.row(Escape(d.Status)+":", Escape(d.StatusLabel(u.Status)))
	if u.DueDate != "" {
		w.row(Escape(d.DueDate)+":", Escape(u.DueDate))
	}
	if u.EndDate != "" {
		w.row(Escape(d.EndDate)+":", Escape(u.EndDate))
	}
	switch {
	case u.Comments.IsZero():
	case u.Comments.IsList:
		w.row(span(Escape(d.Comments)+`: `+w.itemize(u.Comments.Items), true))
	default:
		w.row(span(Escape(d.Comments)+`: `+Escape(u.Comments.Text), true))
	}
	w.line(`\end{tabularx}}`)
}

func (w *writer) advancement(p *domain.PLD) {
	reports := report.Advancement(p)
	if len(reports) == 0 {
		return
	}
	w.line(`\newpage`)
	w.line(`\section*{%s}`, Escape(w.dict.AdvancementReport))
	w.line(`\addcontentsline{toc}{section}{%s}`, Escape(w.dict.AdvancementReport))
	for _, r := range reports {
		w.line(`\subsection*{%s}`, Escape(r.Author))
		w.line(`\begin{itemize}`)
		for _, s := range r.Stories {
			w.line(`\item %s: %s %s`, Escape(w.dict.StatusLabel(s.Status)), s.Coordinate, Escape(s.Name))
		}
		w.line(`\end{itemize}`)
	}
}
