package latex

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/locale"
	"github.com/ThalusA/PLDGenerator/internal/testutil"
)

var fixedDate = time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

func render(t *testing.T, code string, p *domain.PLD) string {
	t.Helper()
	dict, err := locale.Load(code)
	require.NoError(t, err)
	return Render(dict, p, Options{Date: fixedDate})
}

func TestRender_LocalizedFrame(t *testing.T) {
	tests := []struct {
		code string
		want []string
	}{
		{"en_US", []string{
			`\rhead{\Large Project Log Document}`,
			`\rfoot{Page \thepage\space of \pageref{LastPage}}`,
			`\renewcommand*{\contentsname}{Table of contents}`,
			`\section*{Organigram}`,
			`\section*{Deliverable map}`,
			`\section*{User stories}`,
			`\section*{Advancement report}`,
			`\section{Revision table}`,
		}},
		{"fr_FR", []string{
			`\rfoot{Page \thepage\space sur \pageref{LastPage}}`,
			`\renewcommand*{\contentsname}{Table des matières}`,
			`\section*{Organigramme}`,
			`\section*{Carte des livrables}`,
			`\section*{Rapport d'avancement}`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			out := render(t, tt.code, testutil.NewTestPLD())
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRender_TitlePage(t *testing.T) {
	out := render(t, "en_US", testutil.NewTestPLD())

	assert.True(t, strings.HasPrefix(out, `\documentclass[12pt]{extarticle}`))
	assert.Contains(t, out, `\date{5/3/2024}`)
	assert.Contains(t, out, `\author{Alice Martin \and Bob Stone}`)
	assert.Contains(t, out, `\textbf{\Large Issues linker}`)
	assert.True(t, strings.HasSuffix(out, "\\end{document}\n"))
}

func TestRender_EnvironmentsBalanced(t *testing.T) {
	for _, p := range []*domain.PLD{testutil.NewTestPLD(), {Title: "Empty", Locale: "en_US"}} {
		out := render(t, "en_US", p)
		assert.Equal(t, strings.Count(out, `\begin{`), strings.Count(out, `\end{`), p.Title)
	}
}

func TestRender_DescriptionStats(t *testing.T) {
	out := render(t, "en_US", testutil.NewTestPLD())

	assert.Contains(t, out, `\cellcolor{gray!30}Total man-days & 4 \\ \hline`)
	assert.Contains(t, out, `Alice Martin: 2.5 \newline Bob Stone: 1.5`)
	assert.Contains(t, out, `\cellcolor{gray!30}Model version & 1.0.0 \\ \hline`)
}

func TestRender_RevisionsOldestFirst(t *testing.T) {
	p := testutil.NewTestPLD()
	p.Versions = []domain.Version{
		{Date: "2024-02-01", Version: "1.1.0", Sections: "Billing", Comment: "Second"},
		{Date: "2024-01-10", Version: "1.0.0", Sections: "All", Comment: "First"},
	}
	out := render(t, "en_US", p)

	first := strings.Index(out, `2024-01-10 & 1.0.0`)
	second := strings.Index(out, `2024-02-01 & 1.1.0`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestRender_HierarchyNumbering(t *testing.T) {
	out := render(t, "en_US", testutil.NewTestPLD())

	tests := []struct {
		name string
		want string
	}{
		{"organigram deliverable", "  [{1 Accounts}"},
		{"organigram subset", "    [{1.2 Profile}]"},
		{"map columns", `\begin{tabularx}{\linewidth}{|Y|Y|}`},
		{"map headings", `\textbf{1.1 Sessions} & \textbf{1.2 Profile} \\ \hline`},
		{"map first stories", `1.1.1 Login & 1.2.1 Edit profile \\ \hline`},
		{"map padded column", `1.1.2 Logout &  \\ \hline`},
		{"single subset map", `\begin{tabularx}{\linewidth}{|Y|}`},
		{"advancement entry", `\item In progress: 1.1.1 Login`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRender_StoryCard(t *testing.T) {
	p := testutil.NewTestPLD()
	login := &p.Deliverables[0].Subsets[0].UserStories[0]
	login.DueDate = "2024-03-01"
	out := render(t, "en_US", p)

	assert.Contains(t, out, `\paragraph{Login}`)
	assert.Contains(t, out, `Estimated duration: & 1.5 man-days (12 hours) \\ \hline`)
	assert.Contains(t, out, `Due date: & 2024-03-01 \\ \hline`)
	assert.Contains(t, out, `\begin{itemize}[nosep] \item a \item b \end{itemize}`)
	assert.Contains(t, out, `Comments: later`)
}

func TestRender_EscapesText(t *testing.T) {
	p := testutil.NewTestPLD()
	p.Title = "R&D_plan 100%"
	out := render(t, "en_US", p)

	assert.Contains(t, out, `R\&D\_plan 100\%`)
	assert.NotContains(t, out, "R&D")
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a & b", `a \& b`},
		{"#1 $5 50%", `\#1 \$5 50\%`},
		{`C:\tmp`, `C:\textbackslash{}tmp`},
		{"{x}_y", `\{x\}\_y`},
		{"a~b^c", `a\textasciitilde{}b\textasciicircum{}c`},
		{"line\nbreak", `line\newline break`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}
