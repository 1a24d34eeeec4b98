package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"healthassist/internal/store"
)

type formDoneMsg struct {
	Status string
}

// FormModel is the create/edit account form. In edit mode the username is
// fixed and an empty password field means "leave unchanged".
type FormModel struct {
	Deps     *Deps
	Editing  string // username being edited; empty for create
	Inputs   []textinput.Model
	FocusIdx int
	Err      error
}

const (
	formUsername = iota
	formPassword
	formRole
	formName
	formEmail
)

func NewFormModel(d *Deps, editing string) FormModel {
	inputs := make([]textinput.Model, 5)

	inputs[formUsername] = textinput.New()
	inputs[formUsername].Prompt = "Username: "

	inputs[formPassword] = textinput.New()
	inputs[formPassword].Prompt = "Password: "
	inputs[formPassword].EchoMode = textinput.EchoPassword

	inputs[formRole] = textinput.New()
	inputs[formRole].Prompt = "Role: "
	inputs[formRole].Placeholder = "admin | doctor | patient"

	inputs[formName] = textinput.New()
	inputs[formName].Prompt = "Name: "

	inputs[formEmail] = textinput.New()
	inputs[formEmail].Prompt = "Email: "

	m := FormModel{Deps: d, Editing: editing, Inputs: inputs}
	if editing != "" {
		m.Inputs[formUsername].SetValue(editing)
		m.Inputs[formPassword].Placeholder = "leave empty to keep"
		if acc, ok := d.Store.GetAccount(editing); ok {
			m.Inputs[formRole].SetValue(string(acc.Role))
			m.Inputs[formName].SetValue(acc.Name)
			m.Inputs[formEmail].SetValue(acc.Email)
		}
		m.FocusIdx = formPassword
	}
	m.Inputs[m.FocusIdx].PromptStyle = focusedStyle
	m.Inputs[m.FocusIdx].Focus()
	return m
}

func (m FormModel) Init() tea.Cmd { return textinput.Blink }

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmds []tea.Cmd = make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return formDoneMsg{} }
		case tea.KeyEnter:
			if m.FocusIdx == len(m.Inputs)-1 {
				return m, m.SubmitCmd
			}
			m.nextInput()
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
		}
	case errMsg:
		m.Err = msg
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *FormModel) nextInput() {
	first := 0
	if m.Editing != "" {
		first = formPassword // username locked in edit mode
	}
	m.Inputs[m.FocusIdx].Blur()
	m.Inputs[m.FocusIdx].PromptStyle = blurredStyle
	m.FocusIdx++
	if m.FocusIdx >= len(m.Inputs) {
		m.FocusIdx = first
	}
	m.Inputs[m.FocusIdx].PromptStyle = focusedStyle
	m.Inputs[m.FocusIdx].Focus()
}

func (m *FormModel) prevInput() {
	first := 0
	if m.Editing != "" {
		first = formPassword
	}
	m.Inputs[m.FocusIdx].Blur()
	m.Inputs[m.FocusIdx].PromptStyle = blurredStyle
	m.FocusIdx--
	if m.FocusIdx < first {
		m.FocusIdx = len(m.Inputs) - 1
	}
	m.Inputs[m.FocusIdx].PromptStyle = focusedStyle
	m.Inputs[m.FocusIdx].Focus()
}

func (m FormModel) SubmitCmd() tea.Msg {
	username := strings.TrimSpace(m.Inputs[formUsername].Value())
	password := m.Inputs[formPassword].Value()
	role := store.Role(strings.TrimSpace(m.Inputs[formRole].Value()))
	name := strings.TrimSpace(m.Inputs[formName].Value())
	email := strings.TrimSpace(m.Inputs[formEmail].Value())

	if role != "" && !role.Valid() {
		return errMsg(errInvalidRole)
	}

	if m.Editing != "" {
		updates := map[string]string{
			"name":  name,
			"email": email,
		}
		// an empty role field means "keep the current one"
		if role != "" {
			updates["role"] = string(role)
		}
		if password != "" {
			updates["password"] = password
		}
		ok, message := m.Deps.Store.UpdateAccount(m.Editing, updates)
		if !ok {
			return errMsg(errOutcome(message))
		}
		return formDoneMsg{Status: message}
	}

	if username == "" || password == "" {
		return errMsg(errMissingFields)
	}
	if !role.Valid() {
		return errMsg(errInvalidRole)
	}
	ok, message := m.Deps.Store.CreateAccount(username, password, role, name, email)
	if !ok {
		return errMsg(errOutcome(message))
	}
	return formDoneMsg{Status: message}
}

func (m FormModel) View() string {
	var b strings.Builder

	title := "New Account"
	if m.Editing != "" {
		title = "Edit Account - " + m.Editing
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		if i < len(m.Inputs)-1 {
			b.WriteRune('\n')
		}
	}

	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Enter on the last field submits, Esc cancels"))

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}

	return b.String()
}
