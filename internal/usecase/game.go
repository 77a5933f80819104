package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

type GameUseCase interface {
	Start(ctx context.Context) (*entity.Session, error)
	State(ctx context.Context, sessionID string) (*entity.Session, error)
	Dispatch(ctx context.Context, sessionID string, intent tictactoe.Intent) (*entity.Session, bool, error)
	Close(ctx context.Context, sessionID string) error
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	NextMove(board entity.Board, players entity.Players) (entity.Cell, bool)
}

type gameUseCase struct {
	logger *slog.Logger

	sessionRepo sessionRepo
	botService  botService

	// the engine expects one mutating call at a time per game
	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock lives in locks while any caller holds or waits for it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewGameUseCase(logger *slog.Logger, sessionRepo sessionRepo, botService botService) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "game_usecase"),
		sessionRepo: sessionRepo,
		botService:  botService,
		locks:       make(map[string]*sessionLock),
	}
}

func (that *gameUseCase) Start(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(uuid.NewString())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}

	that.logger.Info("session started", "session", session.ID)

	return session, nil
}

func (that *gameUseCase) State(ctx context.Context, sessionID string) (*entity.Session, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Game == nil {
		session.Game = entity.NewGame()
	}

	return session, nil
}

func (that *gameUseCase) Dispatch(ctx context.Context, sessionID string, intent tictactoe.Intent) (*entity.Session, bool, error) {
	log := that.logger.With("method", "Dispatch", "session", sessionID, "intent", intent.String())

	if err := validateSessionID(sessionID); err != nil {
		return nil, false, err
	}

	unlock := that.lock(sessionID)
	defer unlock()

	session, err := that.State(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	controller := tictactoe.NewGameController(that.logger, that.botService, session.Game)
	game, accepted := controller.Dispatch(intent)
	if !accepted {
		return session, false, nil
	}

	session.Game = game
	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, false, fmt.Errorf("failed to update session: %w", err)
	}

	if game.IsOver() {
		log.Info("game finished", "status", game.Result.Status, "winner", game.Result.Winner)
	}

	return session, true, nil
}

func (that *gameUseCase) Close(ctx context.Context, sessionID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	unlock := that.lock(sessionID)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (that *gameUseCase) lock(sessionID string) func() {
	that.mu.Lock()
	lock, ok := that.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		that.locks[sessionID] = lock
	}
	lock.refs++
	that.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		that.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(that.locks, sessionID)
		}
		that.mu.Unlock()
	}
}

func validateSessionID(sessionID string) error {
	if _, err := uuid.Parse(sessionID); err != nil {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidSession, sessionID)
	}

	return nil
}
