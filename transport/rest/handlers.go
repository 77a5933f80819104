package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const sessionCookie = "session_id"

type gameUseCase interface {
	Start(ctx context.Context) (*entity.Session, error)
	State(ctx context.Context, sessionID string) (*entity.Session, error)
	Dispatch(ctx context.Context, sessionID string, intent tictactoe.Intent) (*entity.Session, bool, error)
}

type sideForm struct {
	Symbol string `validate:"required,oneof=x o"`
}

type modeForm struct {
	Mode string `validate:"required,oneof=human computer"`
}

type playForm struct {
	Row int `validate:"min=0,max=2"`
	Col int `validate:"min=0,max=2"`
}

type handlers struct {
	logger   *slog.Logger
	ui       config.UI
	useCase  gameUseCase
	validate *validator.Validate
	tpl      *templates
}

func newHandlers(logger *slog.Logger, ui config.UI, useCase gameUseCase) *handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		ui:       ui,
		useCase:  useCase,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tpl:      loadTemplates(),
	}
}

func (that *handlers) index(w http.ResponseWriter, r *http.Request) {
	session, err := that.session(w, r)
	if err != nil {
		that.fail(w, "failed to load session", err)
		return
	}

	page, err := that.tpl.renderPage(newPageData(session.Game, that.ui))
	if err != nil {
		that.fail(w, "failed to render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

func (that *handlers) state(w http.ResponseWriter, r *http.Request) {
	session, err := that.session(w, r)
	if err != nil {
		that.fail(w, "failed to load session", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(session.Game); err != nil {
		that.logger.Error("failed to encode state", "error", err)
	}
}

func (that *handlers) selectSide(w http.ResponseWriter, r *http.Request) {
	form := sideForm{Symbol: r.FormValue("symbol")}
	if err := that.validate.Struct(form); err != nil {
		that.ignore(w, r, err)
		return
	}

	that.dispatch(w, r, tictactoe.SelectSide{Symbol: entity.Symbol(form.Symbol)})
}

func (that *handlers) setMode(w http.ResponseWriter, r *http.Request) {
	form := modeForm{Mode: r.FormValue("mode")}
	if err := that.validate.Struct(form); err != nil {
		that.ignore(w, r, err)
		return
	}

	that.dispatch(w, r, tictactoe.SetMode{Computer: form.Mode == string(entity.ModeComputer)})
}

func (that *handlers) play(w http.ResponseWriter, r *http.Request) {
	form, err := parsePlayForm(r)
	if err == nil {
		err = that.validate.Struct(form)
	}
	if err != nil {
		that.ignore(w, r, err)
		return
	}

	that.dispatch(w, r, tictactoe.Play{Row: form.Row, Col: form.Col})
}

func (that *handlers) requestOpponentMove(w http.ResponseWriter, r *http.Request) {
	that.dispatch(w, r, tictactoe.RequestOpponentMove{})
}

func (that *handlers) reset(w http.ResponseWriter, r *http.Request) {
	that.dispatch(w, r, tictactoe.Reset{})
}

// dispatch sends intent for the caller's session and redirects back to the board.
// A rejected intent is not an error; the page simply shows the unchanged state.
func (that *handlers) dispatch(w http.ResponseWriter, r *http.Request, intent tictactoe.Intent) {
	session, err := that.session(w, r)
	if err != nil {
		that.fail(w, "failed to load session", err)
		return
	}

	if _, _, err = that.useCase.Dispatch(r.Context(), session.ID, intent); err != nil {
		that.fail(w, "failed to dispatch intent", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// session returns the caller's session, starting a new one when the cookie is missing or stale.
func (that *handlers) session(w http.ResponseWriter, r *http.Request) (*entity.Session, error) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		session, err := that.useCase.State(r.Context(), cookie.Value)
		switch {
		case err == nil:
			return session, nil
		case errors.Is(err, apperror.ErrSessionNotFound), errors.Is(err, apperror.ErrInvalidSession):
			that.logger.Debug("starting a new session", "reason", err)
		default:
			return nil, err
		}
	}

	session, err := that.useCase.Start(r.Context())
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return session, nil
}

func (that *handlers) ignore(w http.ResponseWriter, r *http.Request, err error) {
	that.logger.Debug("ignoring request", "path", r.URL.Path, "reason", fmt.Errorf("%w: %w", apperror.ErrInvalidIntent, err))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *handlers) fail(w http.ResponseWriter, msg string, err error) {
	that.logger.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func parsePlayForm(r *http.Request) (playForm, error) {
	row, err := strconv.Atoi(r.FormValue("row"))
	if err != nil {
		return playForm{}, fmt.Errorf("row: %w", err)
	}

	col, err := strconv.Atoi(r.FormValue("col"))
	if err != nil {
		return playForm{}, fmt.Errorf("col: %w", err)
	}

	return playForm{Row: row, Col: col}, nil
}
