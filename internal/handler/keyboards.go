package handler

import (
	"weathercat/internal/engine"

	tele "gopkg.in/telebot.v3"
)

// markupFor builds the telebot markup of an engine keyboard. The main and
// settings menus are reply keyboards, setting prompts are inline.
func markupFor(kb engine.Keyboard) *tele.ReplyMarkup {
	switch kb {
	case engine.KeyboardRemove:
		return &tele.ReplyMarkup{RemoveKeyboard: true}
	case engine.KeyboardMain:
		menu := &tele.ReplyMarkup{ResizeKeyboard: true}
		menu.Reply(replyRows(menu, engine.Layout(kb))...)
		return menu
	case engine.KeyboardSettings:
		menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
		menu.Reply(replyRows(menu, engine.Layout(kb))...)
		return menu
	case engine.KeyboardLocation, engine.KeyboardLanguage, engine.KeyboardUnits:
		menu := &tele.ReplyMarkup{}
		menu.Inline(inlineRows(menu, engine.Layout(kb))...)
		return menu
	}
	return nil
}

func replyRows(menu *tele.ReplyMarkup, layout [][]engine.Button) []tele.Row {
	rows := make([]tele.Row, 0, len(layout))
	for _, line := range layout {
		btns := make([]tele.Btn, 0, len(line))
		for _, b := range line {
			btns = append(btns, menu.Text(b.Label))
		}
		rows = append(rows, menu.Row(btns...))
	}
	return rows
}

func inlineRows(menu *tele.ReplyMarkup, layout [][]engine.Button) []tele.Row {
	rows := make([]tele.Row, 0, len(layout))
	for _, line := range layout {
		btns := make([]tele.Btn, 0, len(line))
		for _, b := range line {
			btns = append(btns, menu.Data(b.Label, b.Unique))
		}
		rows = append(rows, menu.Row(btns...))
	}
	return rows
}

// menuCommands is the command list shown in the main menu
func menuCommands() []tele.Command {
	cmds := make([]tele.Command, 0, len(engine.MenuCommands))
	for _, mc := range engine.MenuCommands {
		cmds = append(cmds, tele.Command{Text: mc.Command, Description: mc.Description})
	}
	return cmds
}
