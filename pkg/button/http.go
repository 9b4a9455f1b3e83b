package button

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/signboard/pkg/activity"
)

// StatusSource exposes the render loop state to the status endpoint
type StatusSource interface {
	Active() bool
	Trigger() activity.Trigger
}

type Server struct {
	Window *activity.Window
	Status StatusSource
	Clock  func() time.Time
}

func (s *Server) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(NewRequestLogger())

	app.Post("/button", s.press)
	app.Get("/status", s.status)

	return app
}

func (s *Server) press(c *fiber.Ctx) error {
	pressedAt := s.now()
	s.Window.Press(pressedAt)

	log.Info().Str("source", "http").Msg("Button pressed")

	return c.JSON(fiber.Map{
		"pressed": pressedAt,
	})
}

func (s *Server) status(c *fiber.Ctx) error {
	response := fiber.Map{
		"started":     s.Window.ProcessStart,
		"activehours": s.Window.ActiveHours,
		"grace":       s.Window.GracePeriod.String(),
	}

	if lastPress := s.Window.LastPress(); !lastPress.IsZero() {
		response["lastpress"] = lastPress
	}

	if s.Status != nil {
		response["active"] = s.Status.Active()
		response["trigger"] = s.Status.Trigger().String()
	}

	return c.JSON(response)
}

// Serve listens until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listen string) error {
	app := s.App()

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to shut down button server")
		}
	}()

	log.Info().Str("listen", listen).Msg("Starting button server")

	return app.Listen(listen)
}
