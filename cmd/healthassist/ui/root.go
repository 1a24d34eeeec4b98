package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"healthassist/internal/session"
	"healthassist/internal/store"
)

var (
	errInvalidRole   = errors.New("role must be admin, doctor or patient")
	errMissingFields = errors.New("username and password are required")
)

func errOutcome(message string) error { return errors.New(message) }

// Deps carries everything the views need: the account store, the session
// token signer and an optional watcher on the backing file.
type Deps struct {
	Store   *store.Store
	Signer  *session.Signer
	Watcher *store.Watcher
}

type state int

const (
	stateLogin state = iota
	stateAccounts
	stateForm
)

type RootModel struct {
	State    state
	Deps     *Deps
	Login    LoginModel
	Accounts AccountsModel
	Form     FormModel

	Username string
	Role     store.Role
	Token    string

	Quitting bool
	width    int
	height   int
}

func NewRootModel(d *Deps) RootModel {
	return RootModel{
		State: stateLogin,
		Deps:  d,
		Login: NewLoginModel(d),
	}
}

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.Login.Init())
}

// waitForStoreChange blocks on the watcher until the backing file is
// rewritten by another process.
func (m RootModel) waitForStoreChange() tea.Msg {
	if m.Deps.Watcher == nil {
		return nil
	}
	if _, ok := <-m.Deps.Watcher.Events(); !ok {
		return nil
	}
	return storeChangedMsg{}
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.State == stateAccounts {
			m.Accounts.Table.SetHeight(tableHeight(msg.Height))
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			if m.Deps.Watcher != nil {
				m.Deps.Watcher.Close()
			}
			return m, tea.Quit
		}

	case loginOKMsg:
		// the parsed claims, not the login form, decide who this session is
		claims, err := m.Deps.Signer.Parse(msg.Token)
		if err != nil {
			m.Login.Err = err
			return m, nil
		}
		m.Username = claims.Username
		m.Role = store.Role(claims.Role)
		m.Token = msg.Token
		m.Deps.Store.SetActor(claims.Username)
		m.State = stateAccounts
		m.Accounts = NewAccountsModel(m.Deps, msg.Token, m.width, m.height)
		cmds = append(cmds, m.Accounts.Init(), m.waitForStoreChange)
		return m, tea.Batch(cmds...)

	case storeChangedMsg:
		// re-arm the watcher wait regardless of the active view
		cmds = append(cmds, m.waitForStoreChange)
	}

	switch m.State {
	case stateLogin:
		newLogin, cmd := m.Login.Update(msg)
		m.Login = newLogin
		cmds = append(cmds, cmd)

	case stateAccounts:
		switch msg := msg.(type) {
		case newAccountMsg:
			m.State = stateForm
			m.Form = NewFormModel(m.Deps, "")
			cmds = append(cmds, m.Form.Init())
			return m, tea.Batch(cmds...)
		case editAccountMsg:
			m.State = stateForm
			m.Form = NewFormModel(m.Deps, msg.Username)
			cmds = append(cmds, m.Form.Init())
			return m, tea.Batch(cmds...)
		}

		newAccounts, cmd := m.Accounts.Update(msg)
		m.Accounts = newAccounts
		cmds = append(cmds, cmd)

	case stateForm:
		if done, ok := msg.(formDoneMsg); ok {
			m.State = stateAccounts
			m.Accounts.Status = done.Status
			m.Accounts.refresh()
			return m, tea.Batch(cmds...)
		}

		newForm, cmd := m.Form.Update(msg)
		m.Form = newForm
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateLogin:
		return m.Login.View()
	case stateAccounts:
		return m.Accounts.View()
	case stateForm:
		return m.Form.View()
	}
	return "Unknown state"
}
