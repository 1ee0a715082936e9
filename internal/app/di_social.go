package app

import (
	"fmt"

	socialRepository "github.com/songifi/lyricsflip-server-sub002/internal/social/repository"
	socialUsecase "github.com/songifi/lyricsflip-server-sub002/internal/social/usecase"
)

// SocialRepository returns the social repository based on database driver.
func (c *Container) SocialRepository() (socialUsecase.SocialRepository, error) {
	var err error
	c.socialRepoInit.Do(func() {
		c.socialRepo, err = c.initSocialRepository()
		if err != nil {
			c.initErrors["socialRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["socialRepo"]; exists {
		return nil, storedErr
	}
	return c.socialRepo, nil
}

// SocialUseCase returns the social use case instance.
func (c *Container) SocialUseCase() (socialUsecase.UseCase, error) {
	var err error
	c.socialUseCaseInit.Do(func() {
		c.socialUseCase, err = c.initSocialUseCase()
		if err != nil {
			c.initErrors["socialUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["socialUseCase"]; exists {
		return nil, storedErr
	}
	return c.socialUseCase, nil
}

// initSocialRepository creates the social repository instance.
func (c *Container) initSocialRepository() (socialUsecase.SocialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for social repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return socialRepository.NewMySQLSocialRepository(db), nil
	case "postgres":
		return socialRepository.NewPostgreSQLSocialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSocialUseCase creates the social use case with all its dependencies.
func (c *Container) initSocialUseCase() (socialUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for social use case: %w", err)
	}

	socialRepo, err := c.SocialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get social repository for social use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for social use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for social use case: %w", err)
	}

	useCase := socialUsecase.NewSocialUseCase(txManager, socialRepo, outboxRepo)

	return socialUsecase.NewUseCaseWithMetrics(useCase, businessMetrics), nil
}
