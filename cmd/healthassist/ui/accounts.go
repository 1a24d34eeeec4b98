package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"healthassist/internal/store"
)

// filter cycle for the 'f' key; empty means all roles.
var roleFilters = []store.Role{"", store.RoleAdmin, store.RoleDoctor, store.RolePatient}

type AccountsModel struct {
	Deps   *Deps
	Token  string
	Table  table.Model
	Filter int
	Status string
	Err    error
}

type storeChangedMsg struct{}

type editAccountMsg struct {
	Username string
}

type newAccountMsg struct{}

// tableHeight leaves room for the chrome and never collapses below a few
// rows on tiny terminals.
func tableHeight(total int) int {
	h := total - 10
	if h < 3 {
		h = 3
	}
	return h
}

func NewAccountsModel(d *Deps, token string, width, height int) AccountsModel {
	columns := []table.Column{
		{Title: "Username", Width: 16},
		{Title: "Role", Width: 10},
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Created", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	m := AccountsModel{Deps: d, Token: token, Table: t}
	m.refresh()
	return m
}

// canManage re-parses the session token on every privileged action, so an
// expired or tampered token loses its admin rights mid-session.
func (m AccountsModel) canManage() bool {
	claims, err := m.Deps.Signer.Parse(m.Token)
	return err == nil && claims.Role == string(store.RoleAdmin)
}

func (m *AccountsModel) refresh() {
	accounts := m.Deps.Store.ListAccounts(roleFilters[m.Filter])
	rows := make([]table.Row, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, table.Row{a.Username, string(a.Role), a.Name, a.Email, a.CreatedAt})
	}
	m.Table.SetRows(rows)
}

func (m AccountsModel) Init() tea.Cmd { return nil }

func (m AccountsModel) Update(msg tea.Msg) (AccountsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.refresh()
			m.Status = ""
			return m, nil
		case "f":
			m.Filter = (m.Filter + 1) % len(roleFilters)
			m.refresh()
			return m, nil
		case "n":
			if m.canManage() {
				return m, func() tea.Msg { return newAccountMsg{} }
			}
		case "e":
			if sel := m.Table.SelectedRow(); m.canManage() && len(sel) > 0 {
				username := sel[0]
				return m, func() tea.Msg { return editAccountMsg{Username: username} }
			}
		case "d":
			if sel := m.Table.SelectedRow(); m.canManage() && len(sel) > 0 {
				ok, message := m.Deps.Store.DeleteAccount(sel[0])
				m.Status = message
				if ok {
					m.refresh()
				}
				return m, nil
			}
		case "q":
			return m, tea.Quit
		}

	case storeChangedMsg:
		m.refresh()
		m.Status = "Store file changed on disk, reloaded"
		return m, nil
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m AccountsModel) View() string {
	var b strings.Builder

	filter := "all"
	if f := roleFilters[m.Filter]; f != "" {
		filter = string(f)
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Accounts (%s)", filter)) + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")

	help := "'r' refresh, 'f' filter role, 'q' quit"
	if m.canManage() {
		help = "'n' new, 'e' edit, 'd' delete, " + help
	}
	b.WriteString(blurredStyle.Render(help))

	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
