package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"weathercat/internal/domain"

	"go.uber.org/zap"
)

type action func(ctx context.Context, ev Event, rec domain.UserRecord) error

type transitionKey struct {
	state domain.DialogueState
	in    input
}

var allStates = []domain.DialogueState{
	domain.StateMain,
	domain.StateWelcome,
	domain.StateSettings,
	domain.StateSettingLocation,
	domain.StateSettingLanguage,
	domain.StateSettingUnits,
}

func (e *Engine) buildTransitions() {
	e.transitions = map[transitionKey]action{
		{domain.StateMain, inputCurrent}:  e.current,
		{domain.StateMain, inputTomorrow}: e.tomorrow,
		{domain.StateMain, inputForecast}: e.forecast,
		{domain.StateMain, inputSettings}: e.openSettings,

		{domain.StateSettings, inputLocation}: e.promptLocation,
		{domain.StateSettings, inputLanguage}: e.promptLanguage,
		{domain.StateSettings, inputUnits}:    e.promptUnits,
		{domain.StateSettings, inputBack}:     e.backToMain,

		{domain.StateSettingLocation, inputBack}: e.backToSettings,

		{domain.StateSettingLanguage, inputEnglish}: e.setLanguage(domain.LanguageEnglish),
		{domain.StateSettingLanguage, inputRussian}: e.setLanguage(domain.LanguageRussian),
		{domain.StateSettingLanguage, inputBack}:    e.backToSettings,

		{domain.StateSettingUnits, inputMetric}:   e.setUnits(domain.UnitsMetric),
		{domain.StateSettingUnits, inputImperial}: e.setUnits(domain.UnitsImperial),
		{domain.StateSettingUnits, inputBack}:     e.backToSettings,
	}
	for _, s := range allStates {
		e.transitions[transitionKey{s, inputStart}] = e.start
	}

	// free text the state has no transition for; the rest get a bad command answer
	e.fallbacks = map[domain.DialogueState]action{
		domain.StateWelcome:         e.welcomeText,
		domain.StateSettingLocation: e.changeLocation,
	}
}

func (e *Engine) start(ctx context.Context, ev Event, rec domain.UserRecord) error {
	from := rec.State
	rec.State = domain.StateWelcome
	if err := e.persist(ctx, ev, from, rec); err != nil {
		return err
	}

	e.setMenuCommands(false)
	e.send(ev.UserID, Message{Text: textWelcome, Keyboard: KeyboardRemove})
	e.send(ev.UserID, Message{Text: textStartPrompt})
	return nil
}

func (e *Engine) welcomeText(ctx context.Context, ev Event, rec domain.UserRecord) error {
	text := strings.ToLower(normalizeText(ev.Payload))

	if greetings[text] {
		e.reply(ev, fmt.Sprintf(textGreeting, ev.FirstName))
		return nil
	}

	if text == "" || strings.HasPrefix(text, "/") {
		e.send(ev.UserID, Message{Text: textNotFoundWelcome})
		return nil
	}

	e.typing(ev.UserID)
	if err := e.weather.CheckLocation(ctx, text); err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			e.send(ev.UserID, Message{Text: textNotFoundWelcome})
			return nil
		}
		return e.fail(ev, err)
	}

	from := rec.State
	rec.Settings.Location = e.titleCase(text)
	rec.State = domain.StateMain
	if err := e.persist(ctx, ev, from, rec); err != nil {
		return err
	}

	e.send(ev.UserID, Message{Text: fmt.Sprintf(textLocationSet, rec.Settings.Location)})
	e.showMainMenu(ev.UserID)
	return nil
}

func (e *Engine) current(ctx context.Context, ev Event, rec domain.UserRecord) error {
	e.typing(ev.UserID)
	loc, report, err := e.weather.Current(ctx, rec.Settings)
	if err != nil {
		return e.fail(ev, err)
	}
	e.send(ev.UserID, Message{Text: renderCurrent(loc, report, rec.Settings.Units), HTML: true})
	return nil
}

func (e *Engine) tomorrow(ctx context.Context, ev Event, rec domain.UserRecord) error {
	e.typing(ev.UserID)
	loc, reports, err := e.weather.Tomorrow(ctx, rec.Settings)
	if err != nil {
		return e.fail(ev, err)
	}
	if len(reports) == 0 {
		return e.fail(ev, fmt.Errorf("%w: no intervals for tomorrow", domain.ErrMalformedPayload))
	}
	e.send(ev.UserID, Message{Text: renderTomorrow(loc, reports, rec.Settings.Units), HTML: true})
	return nil
}

func (e *Engine) forecast(ctx context.Context, ev Event, rec domain.UserRecord) error {
	e.typing(ev.UserID)
	loc, reports, err := e.weather.Forecast(ctx, rec.Settings)
	if err != nil {
		return e.fail(ev, err)
	}
	e.send(ev.UserID, Message{Text: renderForecast(loc, reports, rec.Settings.Units), HTML: true})
	return nil
}

func (e *Engine) openSettings(ctx context.Context, ev Event, rec domain.UserRecord) error {
	from := rec.State
	rec.State = domain.StateSettings
	if err := e.persist(ctx, ev, from, rec); err != nil {
		return err
	}

	e.send(ev.UserID, Message{Text: settingsSummary(rec.Settings)})
	e.showSettingsMenu(ev.UserID)
	return nil
}

func (e *Engine) promptLocation(ctx context.Context, ev Event, rec domain.UserRecord) error {
	from := rec.State
	rec.State = domain.StateSettingLocation
	if err := e.persist(ctx, ev, from, rec); err != nil {
		return err
	}

	e.send(ev.UserID, Message{
		Text:     fmt.Sprintf(textLocationPrompt, rec.Settings.Location),
		Keyboard: KeyboardLocation,
	})
	return nil
}

func (e *Engine) promptLanguage(ctx context.Context, ev Event, rec domain.UserRecord) error {
	from := rec.State
	rec.State = domain.StateSettingLanguage
	if err := e.persist(ctx, ev, from, rec); err != nil {
		return err
	}

	lang := rec.Settings.Language
	e.send(ev.UserID, Message{
		Text:     fmt.Sprintf(textLanguagePrompt, lang.Flag(), lang.Title()),
		Keyboard: KeyboardLanguage,
	})
	return nil
}

func (e *Engine) promptUnits(ctx context.Context, ev Event, rec domain.UserRecord) error {
	from := rec.State
	rec.State = domain.StateSettingUnits
	if err := e.persist(ctx, ev, from, rec); err != nil {
		return err
	}

	units := rec.Settings.Units
	e.send(ev.UserID, Message{
		Text:     fmt.Sprintf(textUnitsPrompt, units.Sign(), units),
		Keyboard: KeyboardUnits,
	})
	return nil
}

func (e *Engine) backToMain(ctx context.Context, ev Event, rec domain.UserRecord) error {
	from := rec.State
	rec.State = domain.StateMain
	if err := e.persist(ctx, ev, from, rec); err != nil {
		return err
	}

	e.send(ev.UserID, Message{Text: fmt.Sprintf(textCurrentCity, rec.Settings.Location)})
	e.showMainMenu(ev.UserID)
	return nil
}

func (e *Engine) changeLocation(ctx context.Context, ev Event, rec domain.UserRecord) error {
	text := normalizeText(ev.Payload)

	e.typing(ev.UserID)
	if err := e.weather.CheckLocation(ctx, text); err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			e.send(ev.UserID, Message{Text: textNotFoundSettings, Keyboard: KeyboardLocation})
			return nil
		}
		return e.fail(ev, err)
	}

	from := rec.State
	rec.Settings.Location = e.titleCase(text)
	rec.State = domain.StateSettings
	if err := e.persist(ctx, ev, from, rec); err != nil {
		return err
	}

	e.send(ev.UserID, Message{Text: fmt.Sprintf(textLocationUpdated, rec.Settings.Location)})
	e.send(ev.UserID, Message{Text: settingsSummary(rec.Settings)})
	e.showSettingsMenu(ev.UserID)
	return nil
}

func (e *Engine) setLanguage(lang domain.Language) action {
	return func(ctx context.Context, ev Event, rec domain.UserRecord) error {
		from := rec.State
		rec.Settings.Language = lang
		rec.State = domain.StateSettings
		if err := e.persist(ctx, ev, from, rec); err != nil {
			return err
		}

		e.confirm(ev, fmt.Sprintf(textLanguageUpdated, lang.Flag(), lang.Title()))
		e.send(ev.UserID, Message{Text: settingsSummary(rec.Settings)})
		e.showSettingsMenu(ev.UserID)
		return nil
	}
}

func (e *Engine) setUnits(units domain.Units) action {
	return func(ctx context.Context, ev Event, rec domain.UserRecord) error {
		from := rec.State
		rec.Settings.Units = units
		rec.State = domain.StateSettings
		if err := e.persist(ctx, ev, from, rec); err != nil {
			return err
		}

		e.confirm(ev, fmt.Sprintf(textUnitsUpdated, units.Sign(), units))
		e.send(ev.UserID, Message{Text: settingsSummary(rec.Settings)})
		e.showSettingsMenu(ev.UserID)
		return nil
	}
}

// backToSettings leaves a setting prompt without changes
func (e *Engine) backToSettings(ctx context.Context, ev Event, rec domain.UserRecord) error {
	from := rec.State
	rec.State = domain.StateSettings
	if err := e.persist(ctx, ev, from, rec); err != nil {
		return err
	}

	if ev.Kind == KindCallback {
		e.remove(ev)
		e.answer(ev, "")
	}
	e.showSettingsMenu(ev.UserID)
	return nil
}

func (e *Engine) badCommand(ctx context.Context, ev Event, rec domain.UserRecord) error {
	e.logger.Debug("Unrecognized input",
		zap.Int64("user_id", ev.UserID),
		zap.String("state", rec.State.String()),
	)
	e.reply(ev, e.pickBadAnswer())
	return domain.ErrUnrecognizedInput
}

// confirm turns the inline prompt into the confirmation when the choice came
// from its button, otherwise sends it as a new message
func (e *Engine) confirm(ev Event, text string) {
	if ev.Kind == KindCallback {
		e.edit(ev, text)
		e.answer(ev, textCallbackUpdated)
		return
	}
	e.send(ev.UserID, Message{Text: text})
}

func (e *Engine) showMainMenu(userID int64) {
	e.setMenuCommands(true)
	e.send(userID, Message{Text: textChooseOne, Keyboard: KeyboardMain})
}

func (e *Engine) showSettingsMenu(userID int64) {
	e.setMenuCommands(false)
	e.send(userID, Message{Text: textChoosePrefs, Keyboard: KeyboardSettings})
}
