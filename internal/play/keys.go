package play

import (
	"charm.land/bubbles/v2/key"
)

// keyMap lists every binding the player uses. Bindings that make no sense
// in the current phase are disabled so they neither match nor show in help.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Pick      key.Binding
	Submit    key.Binding
	Continue  key.Binding
	Challenge key.Binding
	Exit      key.Binding
	Reset     key.Binding
	Clear     key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "answer"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter", "space", "n"),
			key.WithHelp("enter", "next"),
		),
		Challenge: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "practice challenging"),
		),
		Exit: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "exit challenge"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset session"),
		),
		Clear: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "clear saved data"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// forPhase enables the bindings that apply to p.
func (k *keyMap) forPhase(p phase, challengers, clearable bool) {
	k.Up.SetEnabled(p == phaseQuestion)
	k.Down.SetEnabled(p == phaseQuestion)
	k.Pick.SetEnabled(p == phaseQuestion)
	k.Submit.SetEnabled(p == phaseQuestion)
	k.Continue.SetEnabled(p == phaseFeedback)
	k.Challenge.SetEnabled(p == phaseSummary && challengers)
	k.Exit.SetEnabled(p == phaseChallengeDone)
	k.Reset.SetEnabled(p == phaseSummary || p == phaseChallengeDone)
	k.Clear.SetEnabled(clearable && p != phaseConfirmClear)
	k.Confirm.SetEnabled(p == phaseConfirmClear)
	k.Cancel.SetEnabled(p == phaseConfirmClear)
	k.Quit.SetEnabled(p != phaseConfirmClear)

	if p == phaseChallengeDone {
		k.Reset.SetHelp("r", "start new session")
	} else {
		k.Reset.SetHelp("r", "reset session")
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Pick, k.Submit, k.Continue,
		k.Challenge, k.Exit, k.Reset, k.Clear,
		k.Confirm, k.Cancel, k.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Pick, k.Submit, k.Continue},
		{k.Challenge, k.Exit, k.Reset, k.Clear},
		{k.Confirm, k.Cancel, k.Quit},
	}
}
