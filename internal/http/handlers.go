package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/cloud"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/dataset"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/insight"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/realtime"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/service"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
)

type Feed interface {
	State() *realtime.State
	Refresh() error
	Reconnect() error
}

type History interface {
	RecentPredictions(limit int) ([]domain.AIPrediction, error)
	LatestSnapshot() (*domain.EnhancedRealtimeData, error)
}

// PresignTTL bounds archive download links.
const PresignTTL = 15 * time.Minute

// Deps wires the handlers. History, Alerts and Archive may be nil; their
// routes then answer 503.
type Deps struct {
	Catalog *dataset.Catalog
	Feed    Feed
	Rand    sim.Rand
	History History
	Alerts  *service.AlertService
	Archive *service.Archiver
}

func fail(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func Register(app *fiber.App, d Deps) {
	if d.Rand == nil {
		d.Rand = sim.NewLocked(sim.NewRand(0))
	}
	g := app.Group("/")

	g.Get("sites", func(c *fiber.Ctx) error {
		return c.JSON(d.Catalog.Sites())
	})
	g.Get("sites/stats", func(c *fiber.Ctx) error {
		return c.JSON(d.Catalog.Statistics())
	})
	g.Get("sites/area/:area", func(c *fiber.Ctx) error {
		return c.JSON(d.Catalog.SitesByArea(c.Params("area")))
	})
	g.Get("sites/:id", func(c *fiber.Ctx) error {
		site, ok := d.Catalog.Site(c.Params("id"))
		if !ok {
			return fail(c, fiber.StatusNotFound, dataset.ErrSiteNotFound)
		}
		return c.JSON(site)
	})
	g.Get("sites/:id/realtime", func(c *fiber.Ctx) error {
		site, ok := d.Catalog.RealtimeDataForSite(d.Rand, c.Params("id"))
		if !ok {
			return fail(c, fiber.StatusNotFound, dataset.ErrSiteNotFound)
		}
		return c.JSON(site)
	})

	g.Get("snapshot", func(c *fiber.Ctx) error {
		s := d.Feed.State()
		if s.Data == nil {
			return fail(c, fiber.StatusServiceUnavailable, errors.New("no snapshot yet"))
		}
		return c.JSON(s.Data)
	})
	g.Get("events", func(c *fiber.Ctx) error {
		return c.JSON(d.Feed.State().Events)
	})
	g.Get("events/:kind", func(c *fiber.Ctx) error {
		buf, ok := d.Feed.State().Events.ByKind(c.Params("kind"))
		if !ok {
			return fail(c, fiber.StatusNotFound, errors.New("unknown event kind; one of "+strings.Join(realtime.EventKinds, ", ")))
		}
		return c.JSON(buf)
	})
	g.Get("predictions", func(c *fiber.Ctx) error {
		ps := d.Feed.State().Predictions
		module := c.Query("module")
		if module == "" {
			return c.JSON(ps)
		}
		out := []domain.AIPrediction{}
		for _, p := range ps {
			if p.Module == module {
				out = append(out, p)
			}
		}
		return c.JSON(out)
	})
	g.Get("insights", func(c *fiber.Ctx) error {
		return c.JSON(d.Feed.State().Events.Insights)
	})
	g.Get("models", func(c *fiber.Ctx) error {
		models := insight.Models()
		return c.JSON(fiber.Map{"models": models, "system_accuracy": insight.SystemAccuracy(models)})
	})
	g.Get("status", func(c *fiber.Ctx) error {
		s := d.Feed.State()
		return c.JSON(fiber.Map{"is_connected": s.Connected, "status": s.Status, "last_update": s.LastUpdate})
	})
	g.Post("refresh", func(c *fiber.Ctx) error {
		if err := d.Feed.Refresh(); err != nil {
			return fail(c, fiber.StatusConflict, err)
		}
		return c.JSON(fiber.Map{"last_update": d.Feed.State().LastUpdate})
	})
	g.Post("reconnect", func(c *fiber.Ctx) error {
		if err := d.Feed.Reconnect(); err != nil {
			return fail(c, fiber.StatusConflict, err)
		}
		return c.JSON(fiber.Map{"is_connected": d.Feed.State().Connected})
	})

	g.Get("history/predictions", func(c *fiber.Ctx) error {
		if d.History == nil {
			return fail(c, fiber.StatusServiceUnavailable, errors.New("history not enabled"))
		}
		items, err := d.History.RecentPredictions(c.QueryInt("limit", 50))
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, err)
		}
		return c.JSON(items)
	})
	g.Get("history/snapshot/latest", func(c *fiber.Ctx) error {
		if d.History == nil {
			return fail(c, fiber.StatusServiceUnavailable, errors.New("history not enabled"))
		}
		snap, err := d.History.LatestSnapshot()
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, err)
		}
		if snap == nil {
			return fail(c, fiber.StatusNotFound, errors.New("no snapshot recorded"))
		}
		return c.JSON(snap)
	})

	g.Get("archive/snapshots/latest", func(c *fiber.Ctx) error {
		day, err := archiveDay(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
		snap, err := d.Archive.LatestSnapshot(c.Context(), day)
		if err != nil {
			return fail(c, archiveStatus(err), err)
		}
		return c.JSON(snap)
	})
	g.Get("archive/:kind", func(c *fiber.Ctx) error {
		day, err := archiveDay(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
		items, err := d.Archive.List(c.Context(), c.Params("kind"), day, PresignTTL)
		if err != nil {
			return fail(c, archiveStatus(err), err)
		}
		return c.JSON(items)
	})

	g.Get("alerts", func(c *fiber.Ctx) error {
		items, err := d.Alerts.List(c.Context(), c.Query("module"), c.QueryInt("limit", 50))
		if err != nil {
			return fail(c, alertStatus(err), err)
		}
		return c.JSON(items)
	})
	g.Post("alerts/:id/ack", func(c *fiber.Ctx) error {
		if err := d.Alerts.Acknowledge(c.Context(), c.Params("id")); err != nil {
			return fail(c, alertStatus(err), err)
		}
		return c.JSON(fiber.Map{"alert_id": c.Params("id"), "acknowledged": true})
	})
}

func alertStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrAlertsDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, cloud.ErrAlertNotFound):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// archiveDay reads ?date=YYYY-MM-DD, defaulting to today in UTC.
func archiveDay(c *fiber.Ctx) (time.Time, error) {
	v := c.Query("date")
	if v == "" {
		return time.Now().UTC(), nil
	}
	day, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, errors.New("date must be YYYY-MM-DD")
	}
	return day, nil
}

func archiveStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrArchiveDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, service.ErrUnknownKind), errors.Is(err, service.ErrNotArchived):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}
