package app

import (
	"fmt"

	eventBus "github.com/songifi/lyricsflip-server-sub002/internal/event/bus"
	"github.com/songifi/lyricsflip-server-sub002/internal/event/handlers"
	eventSaga "github.com/songifi/lyricsflip-server-sub002/internal/event/saga"
	"github.com/songifi/lyricsflip-server-sub002/internal/integrations"
	lyricsDomain "github.com/songifi/lyricsflip-server-sub002/internal/lyrics/domain"
	lyricsUsecase "github.com/songifi/lyricsflip-server-sub002/internal/lyrics/usecase"
	socialDomain "github.com/songifi/lyricsflip-server-sub002/internal/social/domain"
)

// Bus returns the in-process event bus with all event handlers subscribed.
func (c *Container) Bus() (*eventBus.Bus, error) {
	var err error
	c.busInit.Do(func() {
		c.bus, err = c.initBus()
		if err != nil {
			c.initErrors["bus"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["bus"]; exists {
		return nil, storedErr
	}
	return c.bus, nil
}

// SagaCoordinator returns the saga coordinator with all sagas and command
// handlers registered on the bus.
func (c *Container) SagaCoordinator() (*eventSaga.Coordinator, error) {
	var err error
	c.sagaCoordinatorInit.Do(func() {
		c.sagaCoordinator, err = c.initSagaCoordinator()
		if err != nil {
			c.initErrors["sagaCoordinator"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sagaCoordinator"]; exists {
		return nil, storedErr
	}
	return c.sagaCoordinator, nil
}

// initBus creates the event bus and subscribes the event handlers. The
// collaborators behind the handlers are log-backed placeholders until real
// search, notification and analytics integrations land.
func (c *Container) initBus() (*eventBus.Bus, error) {
	logger := c.Logger()

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for event bus: %w", err)
	}

	bus := eventBus.New(logger, businessMetrics)

	indexer := integrations.NewLogSearchIndexer(logger)
	notifier := integrations.NewLogNotificationSender(logger)
	tracker := integrations.NewLogAnalyticsTracker(logger)

	indexHandler := handlers.NewLyricsIndexHandler(indexer)
	bus.Subscribe(lyricsDomain.EventLyricsCreated, indexHandler)
	bus.Subscribe(lyricsDomain.EventLyricsVerified, indexHandler)

	bus.Subscribe(lyricsDomain.EventLyricsCreated, handlers.NewAnalyticsHandler(tracker))
	bus.Subscribe(socialDomain.EventCommentCreated, handlers.NewCommentNotificationHandler(notifier, tracker, logger))
	bus.Subscribe(socialDomain.EventFollowCreated, handlers.NewFollowNotificationHandler(notifier))

	return bus, nil
}

// initSagaCoordinator creates the saga coordinator and registers the
// translation saga with its command handler.
func (c *Container) initSagaCoordinator() (*eventSaga.Coordinator, error) {
	logger := c.Logger()

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for saga coordinator: %w", err)
	}

	bus, err := c.Bus()
	if err != nil {
		return nil, fmt.Errorf("failed to get event bus for saga coordinator: %w", err)
	}

	translateUseCase, err := c.TranslateUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get translate use case for saga coordinator: %w", err)
	}

	coordinator := eventSaga.NewCoordinator(logger, businessMetrics)
	coordinator.RegisterSaga(bus, lyricsUsecase.NewTranslationSaga(c.config.TranslationTargetLanguages))
	coordinator.RegisterCommandHandler(lyricsDomain.CommandTranslateAdditionalLanguages, translateUseCase)

	return coordinator, nil
}
