package app

import (
	"fmt"

	"github.com/songifi/lyricsflip-server-sub002/internal/integrations"
	lyricsRepository "github.com/songifi/lyricsflip-server-sub002/internal/lyrics/repository"
	lyricsUsecase "github.com/songifi/lyricsflip-server-sub002/internal/lyrics/usecase"
)

// LyricsRepository returns the lyrics repository based on database driver.
func (c *Container) LyricsRepository() (lyricsUsecase.LyricsRepository, error) {
	var err error
	c.lyricsRepoInit.Do(func() {
		c.lyricsRepo, err = c.initLyricsRepository()
		if err != nil {
			c.initErrors["lyricsRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["lyricsRepo"]; exists {
		return nil, storedErr
	}
	return c.lyricsRepo, nil
}

// LyricsUseCase returns the lyrics use case instance.
func (c *Container) LyricsUseCase() (lyricsUsecase.UseCase, error) {
	var err error
	c.lyricsUseCaseInit.Do(func() {
		c.lyricsUseCase, err = c.initLyricsUseCase()
		if err != nil {
			c.initErrors["lyricsUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["lyricsUseCase"]; exists {
		return nil, storedErr
	}
	return c.lyricsUseCase, nil
}

// TranslateUseCase returns the translation command handler instance.
func (c *Container) TranslateUseCase() (*lyricsUsecase.TranslateUseCase, error) {
	var err error
	c.translateUseCaseInit.Do(func() {
		c.translateUseCase, err = c.initTranslateUseCase()
		if err != nil {
			c.initErrors["translateUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["translateUseCase"]; exists {
		return nil, storedErr
	}
	return c.translateUseCase, nil
}

// initLyricsRepository creates the lyrics repository instance.
func (c *Container) initLyricsRepository() (lyricsUsecase.LyricsRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for lyrics repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return lyricsRepository.NewMySQLLyricsRepository(db), nil
	case "postgres":
		return lyricsRepository.NewPostgreSQLLyricsRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initLyricsUseCase creates the lyrics use case with all its dependencies.
func (c *Container) initLyricsUseCase() (lyricsUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for lyrics use case: %w", err)
	}

	lyricsRepo, err := c.LyricsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get lyrics repository for lyrics use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for lyrics use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for lyrics use case: %w", err)
	}

	useCase := lyricsUsecase.NewLyricsUseCase(txManager, lyricsRepo, outboxRepo)

	return lyricsUsecase.NewUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initTranslateUseCase creates the translation command handler. The translator
// collaborator is rate limited to protect the downstream provider.
func (c *Container) initTranslateUseCase() (*lyricsUsecase.TranslateUseCase, error) {
	logger := c.Logger()

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for translate use case: %w", err)
	}

	lyricsRepo, err := c.LyricsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get lyrics repository for translate use case: %w", err)
	}

	translator := integrations.NewRateLimitedTranslator(
		integrations.NewLogTranslator(logger),
		c.config.TranslationRequestsPerSec,
		c.config.TranslationBurst,
	)

	return lyricsUsecase.NewTranslateUseCase(txManager, lyricsRepo, translator, logger), nil
}
